// Package derive computes second-order relationships from the extracted
// graph. Unlike the direct relationships, these rows have no counterpart
// in the source data: they are inferred by counting what pairs of nodes
// share, and only pairs above a threshold are emitted.
package derive

import (
	"sort"

	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
)

// Default thresholds. A pair must share strictly more than the threshold
// to produce a row.
const (
	DefaultSimilarityThreshold    = 2
	DefaultCollaborationThreshold = 1
)

// SimilarTo links two movies that share more genres than the threshold.
// Score is the shared genre count. Each unordered movie pair appears at
// most once, with MovieA < MovieB.
type SimilarTo struct {
	MovieA int64
	MovieB int64
	Score  int64
}

// WorkedWith links two persons who acted together in more movies than
// the threshold. Each unordered person pair appears at most once, with
// PersonA < PersonB.
type WorkedWith struct {
	PersonA    int64
	PersonB    int64
	MovieCount int64
}

// Deriver computes the inferred relationships.
type Deriver struct {
	log                    logging.Logger
	similarityThreshold    int
	collaborationThreshold int
}

// New creates a deriver with the given thresholds. Zero or negative
// thresholds emit a row for any pair sharing at least one item.
func New(log logging.Logger, similarityThreshold, collaborationThreshold int) *Deriver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Deriver{
		log:                    log.With(logging.Stage("derive")),
		similarityThreshold:    similarityThreshold,
		collaborationThreshold: collaborationThreshold,
	}
}

type pair struct {
	a, b int64
}

// orderedPair returns the pair in canonical low-high order.
func orderedPair(x, y int64) pair {
	if x < y {
		return pair{x, y}
	}
	return pair{y, x}
}

// SimilarMovies pairs every two movies categorized under a common genre
// and emits the pairs whose shared genre count exceeds the similarity
// threshold. Output is sorted ascending by (MovieA, MovieB).
func (d *Deriver) SimilarMovies(graph *extract.Graph) []SimilarTo {
	byGenre := make(map[int64][]int64)
	seen := make(map[pair]struct{})
	for _, ca := range graph.CategorizedAs {
		// The same (movie, genre) edge can occur once per source row the
		// movie appeared in; count each genre membership once.
		p := pair{ca.MovieID, ca.GenreID}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		byGenre[ca.GenreID] = append(byGenre[ca.GenreID], ca.MovieID)
	}

	shared := make(map[pair]int64)
	for _, movies := range byGenre {
		for i := 0; i < len(movies); i++ {
			for j := i + 1; j < len(movies); j++ {
				shared[orderedPair(movies[i], movies[j])]++
			}
		}
	}

	out := make([]SimilarTo, 0, len(shared))
	for p, count := range shared {
		if count > int64(d.similarityThreshold) {
			out = append(out, SimilarTo{MovieA: p.a, MovieB: p.b, Score: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovieA != out[j].MovieA {
			return out[i].MovieA < out[j].MovieA
		}
		return out[i].MovieB < out[j].MovieB
	})

	d.log.Info("similarity pass complete",
		logging.Int("candidate_pairs", len(shared)),
		logging.Int("emitted", len(out)),
		logging.Int("threshold", d.similarityThreshold),
	)
	return out
}

// Collaborations pairs every two persons who acted in a common movie and
// emits the pairs whose shared movie count exceeds the collaboration
// threshold. Only acting credits count; directing is a different kind of
// association. Output is sorted ascending by (PersonA, PersonB).
func (d *Deriver) Collaborations(graph *extract.Graph) []WorkedWith {
	byMovie := make(map[int64][]int64)
	seen := make(map[pair]struct{})
	for _, a := range graph.ActedIn {
		// A person can hold several credits in one movie; count the
		// appearance once.
		p := pair{a.MovieID, a.PersonID}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		byMovie[a.MovieID] = append(byMovie[a.MovieID], a.PersonID)
	}

	shared := make(map[pair]int64)
	for _, persons := range byMovie {
		for i := 0; i < len(persons); i++ {
			for j := i + 1; j < len(persons); j++ {
				shared[orderedPair(persons[i], persons[j])]++
			}
		}
	}

	out := make([]WorkedWith, 0, len(shared))
	for p, count := range shared {
		if count > int64(d.collaborationThreshold) {
			out = append(out, WorkedWith{PersonA: p.a, PersonB: p.b, MovieCount: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PersonA != out[j].PersonA {
			return out[i].PersonA < out[j].PersonA
		}
		return out[i].PersonB < out[j].PersonB
	})

	d.log.Info("collaboration pass complete",
		logging.Int("candidate_pairs", len(shared)),
		logging.Int("emitted", len(out)),
		logging.Int("threshold", d.collaborationThreshold),
	)
	return out
}
