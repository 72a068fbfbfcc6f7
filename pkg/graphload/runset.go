package graphload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// RunSet is a published run read back from disk, ready for import.
type RunSet struct {
	Manifest *tabio.Manifest
	Graph    *extract.Graph
	Similar  []derive.SimilarTo
	Worked   []derive.WorkedWith
}

// ReadRun loads a published output directory. The manifest names the
// table files, so compressed and uncompressed runs read the same way.
func ReadRun(dir string) (*RunSet, error) {
	manifest, err := tabio.ReadManifest(filepath.Join(dir, tabio.ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	tables := make(map[string]*tabio.Table, len(manifest.Tables))
	for _, entry := range manifest.Tables {
		name := strings.TrimSuffix(strings.TrimSuffix(entry.File, ".sz"), ".csv")
		t, err := readTableFile(filepath.Join(dir, entry.File))
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", name, err)
		}
		if t.NumRows() != entry.Rows {
			return nil, fmt.Errorf("table %s: %d rows on disk, manifest says %d", name, t.NumRows(), entry.Rows)
		}
		tables[name] = t
	}

	rs := &RunSet{Manifest: manifest, Graph: extract.NewGraph()}
	if err := rs.fill(tables); err != nil {
		return nil, err
	}
	rs.Graph.RebuildIndexes()
	return rs, nil
}

func readTableFile(path string) (*tabio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(f)
	}
	return tabio.ReadCSV(r)
}

func (rs *RunSet) fill(tables map[string]*tabio.Table) error {
	for name, load := range map[string]func(*tabio.Table) error{
		"movies":         rs.loadMovies,
		"persons":        rs.loadPersons,
		"genres":         rs.loadGenres,
		"keywords":       rs.loadKeywords,
		"companies":      rs.loadCompanies,
		"acted_in":       rs.loadActedIn,
		"directed":       rs.loadDirected,
		"produced":       rs.loadProduced,
		"categorized_as": rs.loadCategorizedAs,
		"tagged_with":    rs.loadTaggedWith,
		"similar_to":     rs.loadSimilarTo,
		"worked_with":    rs.loadWorkedWith,
	} {
		t, ok := tables[name]
		if !ok {
			return fmt.Errorf("run is missing table %s", name)
		}
		if err := load(t); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}

func cellInt(t *tabio.Table, row int, column string) (int64, error) {
	raw := t.Value(row, column)
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %s: %q is not an integer", row, column, raw)
	}
	return i, nil
}

func cellFloat(t *tabio.Table, row int, column string) (float64, error) {
	raw := t.Value(row, column)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %s: %q is not a number", row, column, raw)
	}
	return f, nil
}

func (rs *RunSet) loadMovies(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		id, err := cellInt(t, row, "id")
		if err != nil {
			return err
		}
		budget, err := cellInt(t, row, "budget")
		if err != nil {
			return err
		}
		revenue, err := cellInt(t, row, "revenue")
		if err != nil {
			return err
		}
		popularity, err := cellFloat(t, row, "popularity")
		if err != nil {
			return err
		}
		voteAverage, err := cellFloat(t, row, "vote_average")
		if err != nil {
			return err
		}
		voteCount, err := cellInt(t, row, "vote_count")
		if err != nil {
			return err
		}
		rs.Graph.Movies = append(rs.Graph.Movies, extract.Movie{
			ID:          id,
			Title:       t.Value(row, "title"),
			ReleaseDate: t.Value(row, "release_date"),
			Budget:      budget,
			Revenue:     revenue,
			Popularity:  popularity,
			VoteAverage: voteAverage,
			VoteCount:   voteCount,
			Overview:    t.Value(row, "overview"),
		})
	}
	return nil
}

func (rs *RunSet) loadPersons(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		id, err := cellInt(t, row, "id")
		if err != nil {
			return err
		}
		gender, err := cellInt(t, row, "gender")
		if err != nil {
			return err
		}
		popularity, err := cellFloat(t, row, "popularity")
		if err != nil {
			return err
		}
		rs.Graph.Persons = append(rs.Graph.Persons, extract.Person{
			ID:          id,
			Name:        t.Value(row, "name"),
			Gender:      gender,
			ProfilePath: t.Value(row, "profile_path"),
			Popularity:  popularity,
		})
	}
	return nil
}

func (rs *RunSet) loadGenres(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		id, err := cellInt(t, row, "id")
		if err != nil {
			return err
		}
		rs.Graph.Genres = append(rs.Graph.Genres, extract.Genre{ID: id, Name: t.Value(row, "name")})
	}
	return nil
}

func (rs *RunSet) loadKeywords(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		id, err := cellInt(t, row, "id")
		if err != nil {
			return err
		}
		rs.Graph.Keywords = append(rs.Graph.Keywords, extract.Keyword{ID: id, Name: t.Value(row, "name")})
	}
	return nil
}

func (rs *RunSet) loadCompanies(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		id, err := cellInt(t, row, "id")
		if err != nil {
			return err
		}
		rs.Graph.Companies = append(rs.Graph.Companies, extract.Company{
			ID:            id,
			Name:          t.Value(row, "name"),
			OriginCountry: t.Value(row, "origin_country"),
		})
	}
	return nil
}

func (rs *RunSet) loadActedIn(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		personID, err := cellInt(t, row, "person_id")
		if err != nil {
			return err
		}
		movieID, err := cellInt(t, row, "movie_id")
		if err != nil {
			return err
		}
		order, err := cellInt(t, row, "order")
		if err != nil {
			return err
		}
		rs.Graph.ActedIn = append(rs.Graph.ActedIn, extract.ActedIn{
			PersonID:  personID,
			MovieID:   movieID,
			Character: t.Value(row, "character"),
			Order:     order,
		})
	}
	return nil
}

func (rs *RunSet) loadDirected(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		personID, err := cellInt(t, row, "person_id")
		if err != nil {
			return err
		}
		movieID, err := cellInt(t, row, "movie_id")
		if err != nil {
			return err
		}
		rs.Graph.Directed = append(rs.Graph.Directed, extract.Directed{
			PersonID:   personID,
			MovieID:    movieID,
			Job:        t.Value(row, "job"),
			Department: t.Value(row, "department"),
		})
	}
	return nil
}

func (rs *RunSet) loadProduced(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		companyID, err := cellInt(t, row, "company_id")
		if err != nil {
			return err
		}
		movieID, err := cellInt(t, row, "movie_id")
		if err != nil {
			return err
		}
		rs.Graph.Produced = append(rs.Graph.Produced, extract.Produced{CompanyID: companyID, MovieID: movieID})
	}
	return nil
}

func (rs *RunSet) loadCategorizedAs(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		movieID, err := cellInt(t, row, "movie_id")
		if err != nil {
			return err
		}
		genreID, err := cellInt(t, row, "genre_id")
		if err != nil {
			return err
		}
		rs.Graph.CategorizedAs = append(rs.Graph.CategorizedAs, extract.CategorizedAs{MovieID: movieID, GenreID: genreID})
	}
	return nil
}

func (rs *RunSet) loadTaggedWith(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		movieID, err := cellInt(t, row, "movie_id")
		if err != nil {
			return err
		}
		keywordID, err := cellInt(t, row, "keyword_id")
		if err != nil {
			return err
		}
		rs.Graph.TaggedWith = append(rs.Graph.TaggedWith, extract.TaggedWith{MovieID: movieID, KeywordID: keywordID})
	}
	return nil
}

func (rs *RunSet) loadSimilarTo(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		movieA, err := cellInt(t, row, "movie_a")
		if err != nil {
			return err
		}
		movieB, err := cellInt(t, row, "movie_b")
		if err != nil {
			return err
		}
		score, err := cellInt(t, row, "score")
		if err != nil {
			return err
		}
		rs.Similar = append(rs.Similar, derive.SimilarTo{MovieA: movieA, MovieB: movieB, Score: score})
	}
	return nil
}

func (rs *RunSet) loadWorkedWith(t *tabio.Table) error {
	for row := 0; row < t.NumRows(); row++ {
		personA, err := cellInt(t, row, "person_a")
		if err != nil {
			return err
		}
		personB, err := cellInt(t, row, "person_b")
		if err != nil {
			return err
		}
		movieCount, err := cellInt(t, row, "movie_count")
		if err != nil {
			return err
		}
		rs.Worked = append(rs.Worked, derive.WorkedWith{PersonA: personA, PersonB: personB, MovieCount: movieCount})
	}
	return nil
}
