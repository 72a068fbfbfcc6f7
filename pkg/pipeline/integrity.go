package pipeline

import (
	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
)

// verifyIntegrity removes relationship rows that reference a node absent
// from the graph. The extractor only emits relationships alongside their
// nodes, so drops here indicate a defect upstream; they are counted and
// logged rather than silently tolerated, and the output never contains a
// dangling reference.
func verifyIntegrity(log logging.Logger, graph *extract.Graph, similar []derive.SimilarTo, worked []derive.WorkedWith) ([]derive.SimilarTo, []derive.WorkedWith, map[string]int) {
	dropped := make(map[string]int)

	actedIn := graph.ActedIn[:0]
	for _, a := range graph.ActedIn {
		if graph.HasPerson(a.PersonID) && graph.HasMovie(a.MovieID) {
			actedIn = append(actedIn, a)
		} else {
			dropped["ACTED_IN"]++
		}
	}
	graph.ActedIn = actedIn

	directed := graph.Directed[:0]
	for _, d := range graph.Directed {
		if graph.HasPerson(d.PersonID) && graph.HasMovie(d.MovieID) {
			directed = append(directed, d)
		} else {
			dropped["DIRECTED"]++
		}
	}
	graph.Directed = directed

	produced := graph.Produced[:0]
	for _, p := range graph.Produced {
		if graph.HasCompany(p.CompanyID) && graph.HasMovie(p.MovieID) {
			produced = append(produced, p)
		} else {
			dropped["PRODUCED"]++
		}
	}
	graph.Produced = produced

	categorized := graph.CategorizedAs[:0]
	for _, c := range graph.CategorizedAs {
		if graph.HasMovie(c.MovieID) && graph.HasGenre(c.GenreID) {
			categorized = append(categorized, c)
		} else {
			dropped["CATEGORIZED_AS"]++
		}
	}
	graph.CategorizedAs = categorized

	tagged := graph.TaggedWith[:0]
	for _, tw := range graph.TaggedWith {
		if graph.HasMovie(tw.MovieID) && graph.HasKeyword(tw.KeywordID) {
			tagged = append(tagged, tw)
		} else {
			dropped["TAGGED_WITH"]++
		}
	}
	graph.TaggedWith = tagged

	keptSimilar := similar[:0]
	for _, s := range similar {
		if graph.HasMovie(s.MovieA) && graph.HasMovie(s.MovieB) {
			keptSimilar = append(keptSimilar, s)
		} else {
			dropped["SIMILAR_TO"]++
		}
	}

	keptWorked := worked[:0]
	for _, w := range worked {
		if graph.HasPerson(w.PersonA) && graph.HasPerson(w.PersonB) {
			keptWorked = append(keptWorked, w)
		} else {
			dropped["WORKED_WITH"]++
		}
	}

	for relType, n := range dropped {
		log.Warn("dangling relationships dropped",
			logging.String("type", relType),
			logging.Count(n),
		)
	}

	return keptSimilar, keptWorked, dropped
}
