// Package extract walks the reconciled working table and builds the
// deduplicated node records and direct relationship rows. Node tables
// and direct relationships are produced in the same single forward pass;
// computed relationships are derived later, against the frozen graph.
package extract

import (
	"strconv"

	"github.com/dd0wney/cluso-moviegraph/pkg/fieldparse"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// DefaultMaxCast caps how many billed cast entries per movie become
// nodes and ACTED_IN rows. The raw exports bill entire ensembles; the
// top of the billing order is what the graph needs.
const DefaultMaxCast = 10

// directorJob is the crew job that marks a directing credit.
const directorJob = "Director"

// Stats counts the recoverable conditions encountered during
// extraction. They feed the run report; none of them stops the run.
type Stats struct {
	RowsProcessed      int
	MoviesSkipped      int            // rows with no usable movie id
	ParseFailures      map[string]int // embedded field parse failures, by column
	EntitiesSkipped    int            // entity references with no usable id
	AttributeConflicts int            // later rows disagreeing with kept attribute values
}

// NewStats creates a zeroed stats record.
func NewStats() *Stats {
	return &Stats{ParseFailures: make(map[string]int)}
}

// Extractor builds the graph from the working table.
type Extractor struct {
	log     logging.Logger
	maxCast int
}

// New creates an extractor. maxCast caps billed cast entries per movie;
// zero or negative means unlimited.
func New(log logging.Logger, maxCast int) *Extractor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Extractor{log: log.With(logging.Stage("extract")), maxCast: maxCast}
}

// Extract performs the single forward pass over the reconciled table.
func (e *Extractor) Extract(merged *tabio.Table) (*Graph, *Stats) {
	graph := NewGraph()
	stats := NewStats()

	for row := 0; row < merged.NumRows(); row++ {
		stats.RowsProcessed++

		movieID, err := strconv.ParseInt(merged.Value(row, "id"), 10, 64)
		if err != nil {
			stats.MoviesSkipped++
			e.log.Warn("row has no usable movie id, skipped",
				logging.Int("row", row),
				logging.String("raw_id", merged.Value(row, "id")),
			)
			continue
		}

		e.addMovie(graph, stats, merged, row, movieID)
		e.extractGenres(graph, stats, merged, row, movieID)
		e.extractKeywords(graph, stats, merged, row, movieID)
		e.extractCompanies(graph, stats, merged, row, movieID)
		e.extractCast(graph, stats, merged, row, movieID)
		e.extractCrew(graph, stats, merged, row, movieID)
	}

	e.log.Info("extraction complete",
		logging.Rows(stats.RowsProcessed),
		logging.Int("movies", len(graph.Movies)),
		logging.Int("persons", len(graph.Persons)),
		logging.Int("genres", len(graph.Genres)),
		logging.Int("keywords", len(graph.Keywords)),
		logging.Int("companies", len(graph.Companies)),
		logging.Int("entities_skipped", stats.EntitiesSkipped),
		logging.Int("attribute_conflicts", stats.AttributeConflicts),
	)

	return graph, stats
}

// parseField parses one embedded field and counts a failure against the
// column. Failed and absent fields both come back as an empty sequence.
func (e *Extractor) parseField(stats *Stats, merged *tabio.Table, row int, column string) []fieldparse.Record {
	res := fieldparse.Parse(merged.Value(row, column))
	if res.Outcome == fieldparse.OutcomeFailed {
		stats.ParseFailures[column]++
		e.log.Warn("embedded field unparseable, treated as empty",
			logging.Int("row", row),
			logging.Column(column),
			logging.Error(res.Err),
		)
	}
	return res.Records
}

// addMovie records the movie node for a row. The first non-empty value
// for each attribute wins; a later row that disagrees on the title is
// discarded with a diagnostic. Numeric zeros mean "unknown" in the
// source data, so they fill opportunistically.
func (e *Extractor) addMovie(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	m := Movie{
		ID:          movieID,
		Title:       merged.Value(row, "title"),
		ReleaseDate: merged.Value(row, "release_date"),
		Budget:      parseInt(merged.Value(row, "budget")),
		Revenue:     parseInt(merged.Value(row, "revenue")),
		Popularity:  parseFloat(merged.Value(row, "popularity")),
		VoteAverage: parseFloat(merged.Value(row, "vote_average")),
		VoteCount:   parseInt(merged.Value(row, "vote_count")),
		Overview:    merged.Value(row, "overview"),
	}

	i, seen := graph.movieIndex[movieID]
	if !seen {
		graph.movieIndex[movieID] = len(graph.Movies)
		graph.Movies = append(graph.Movies, m)
		return
	}

	kept := &graph.Movies[i]

	if kept.Title == "" {
		kept.Title = m.Title
	} else if m.Title != "" && m.Title != kept.Title {
		stats.AttributeConflicts++
		e.log.Warn("conflicting movie title discarded",
			logging.MovieID(movieID),
			logging.String("kept", kept.Title),
			logging.String("discarded", m.Title),
		)
	}

	if kept.ReleaseDate == "" {
		kept.ReleaseDate = m.ReleaseDate
	}
	if kept.Overview == "" {
		kept.Overview = m.Overview
	}
	if kept.Budget == 0 {
		kept.Budget = m.Budget
	}
	if kept.Revenue == 0 {
		kept.Revenue = m.Revenue
	}
	if kept.Popularity == 0 {
		kept.Popularity = m.Popularity
	}
	if kept.VoteAverage == 0 {
		kept.VoteAverage = m.VoteAverage
	}
	if kept.VoteCount == 0 {
		kept.VoteCount = m.VoteCount
	}
}

func (e *Extractor) extractGenres(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	for _, rec := range e.parseField(stats, merged, row, "genres") {
		id, ok := rec.Int64("id")
		if !ok {
			stats.EntitiesSkipped++
			e.log.Warn("genre reference without id skipped", logging.MovieID(movieID))
			continue
		}
		e.addGenre(graph, stats, Genre{ID: id, Name: rec.String("name")})
		graph.CategorizedAs = append(graph.CategorizedAs, CategorizedAs{MovieID: movieID, GenreID: id})
	}
}

func (e *Extractor) extractKeywords(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	for _, rec := range e.parseField(stats, merged, row, "keywords") {
		id, ok := rec.Int64("id")
		if !ok {
			stats.EntitiesSkipped++
			e.log.Warn("keyword reference without id skipped", logging.MovieID(movieID))
			continue
		}
		e.addKeyword(graph, stats, Keyword{ID: id, Name: rec.String("name")})
		graph.TaggedWith = append(graph.TaggedWith, TaggedWith{MovieID: movieID, KeywordID: id})
	}
}

func (e *Extractor) extractCompanies(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	for _, rec := range e.parseField(stats, merged, row, "production_companies") {
		id, ok := rec.Int64("id")
		if !ok {
			stats.EntitiesSkipped++
			e.log.Warn("company reference without id skipped", logging.MovieID(movieID))
			continue
		}
		e.addCompany(graph, stats, Company{
			ID:            id,
			Name:          rec.String("name"),
			OriginCountry: rec.String("origin_country"),
		})
		graph.Produced = append(graph.Produced, Produced{CompanyID: id, MovieID: movieID})
	}
}

func (e *Extractor) extractCast(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	records := e.parseField(stats, merged, row, "cast")
	if e.maxCast > 0 && len(records) > e.maxCast {
		records = records[:e.maxCast]
	}

	for i, rec := range records {
		id, ok := rec.Int64("id")
		if !ok {
			stats.EntitiesSkipped++
			e.log.Warn("cast reference without id skipped", logging.MovieID(movieID))
			continue
		}
		e.mergePerson(graph, stats, personFromRecord(id, rec))

		// The raw billing order wins when present; the position in the
		// list stands in for it otherwise.
		order, ok := rec.Int64("order")
		if !ok {
			order = int64(i)
		}
		graph.ActedIn = append(graph.ActedIn, ActedIn{
			PersonID:  id,
			MovieID:   movieID,
			Character: rec.String("character"),
			Order:     order,
		})
	}
}

func (e *Extractor) extractCrew(graph *Graph, stats *Stats, merged *tabio.Table, row int, movieID int64) {
	for _, rec := range e.parseField(stats, merged, row, "crew") {
		if rec.String("job") != directorJob {
			continue
		}
		id, ok := rec.Int64("id")
		if !ok {
			stats.EntitiesSkipped++
			e.log.Warn("crew reference without id skipped", logging.MovieID(movieID))
			continue
		}
		e.mergePerson(graph, stats, personFromRecord(id, rec))
		graph.Directed = append(graph.Directed, Directed{
			PersonID:   id,
			MovieID:    movieID,
			Job:        rec.String("job"),
			Department: rec.String("department"),
		})
	}
}

// personFromRecord builds a person node from a cast or crew record.
func personFromRecord(id int64, rec fieldparse.Record) Person {
	gender, _ := rec.Int64("gender")
	popularity, _ := rec.Float64("popularity")
	return Person{
		ID:          id,
		Name:        rec.String("name"),
		Gender:      gender,
		ProfilePath: rec.String("profile_path"),
		Popularity:  popularity,
	}
}

// mergePerson folds a person reference into the graph. The first
// non-empty value for each attribute wins; a later row that disagrees is
// discarded with a diagnostic, never silently overwriting data already
// accumulated. Gender zero and popularity zero mean "unknown" in the
// source data, so they fill opportunistically.
func (e *Extractor) mergePerson(graph *Graph, stats *Stats, p Person) {
	i, seen := graph.personIndex[p.ID]
	if !seen {
		graph.personIndex[p.ID] = len(graph.Persons)
		graph.Persons = append(graph.Persons, p)
		return
	}

	kept := &graph.Persons[i]

	if kept.Name == "" {
		kept.Name = p.Name
	} else if p.Name != "" && p.Name != kept.Name {
		stats.AttributeConflicts++
		e.log.Warn("conflicting person name discarded",
			logging.PersonID(p.ID),
			logging.String("kept", kept.Name),
			logging.String("discarded", p.Name),
		)
	}

	if kept.ProfilePath == "" {
		kept.ProfilePath = p.ProfilePath
	}
	if kept.Gender == 0 {
		kept.Gender = p.Gender
	}
	if kept.Popularity == 0 {
		kept.Popularity = p.Popularity
	}
}

// addGenre records a genre node, first occurrence wins.
func (e *Extractor) addGenre(graph *Graph, stats *Stats, g Genre) {
	i, seen := graph.genreIndex[g.ID]
	if !seen {
		graph.genreIndex[g.ID] = len(graph.Genres)
		graph.Genres = append(graph.Genres, g)
		return
	}
	if kept := &graph.Genres[i]; kept.Name == "" {
		kept.Name = g.Name
	} else if g.Name != "" && g.Name != kept.Name {
		stats.AttributeConflicts++
		e.log.Warn("conflicting genre name discarded",
			logging.Int64("genre_id", g.ID),
			logging.String("kept", kept.Name),
			logging.String("discarded", g.Name),
		)
	}
}

// addKeyword records a keyword node, first occurrence wins.
func (e *Extractor) addKeyword(graph *Graph, stats *Stats, k Keyword) {
	i, seen := graph.keywordIndex[k.ID]
	if !seen {
		graph.keywordIndex[k.ID] = len(graph.Keywords)
		graph.Keywords = append(graph.Keywords, k)
		return
	}
	if kept := &graph.Keywords[i]; kept.Name == "" {
		kept.Name = k.Name
	} else if k.Name != "" && k.Name != kept.Name {
		stats.AttributeConflicts++
		e.log.Warn("conflicting keyword name discarded",
			logging.Int64("keyword_id", k.ID),
			logging.String("kept", kept.Name),
			logging.String("discarded", k.Name),
		)
	}
}

// addCompany records a company node, first occurrence wins.
func (e *Extractor) addCompany(graph *Graph, stats *Stats, c Company) {
	i, seen := graph.companyIndex[c.ID]
	if !seen {
		graph.companyIndex[c.ID] = len(graph.Companies)
		graph.Companies = append(graph.Companies, c)
		return
	}
	kept := &graph.Companies[i]
	if kept.Name == "" {
		kept.Name = c.Name
	} else if c.Name != "" && c.Name != kept.Name {
		stats.AttributeConflicts++
		e.log.Warn("conflicting company name discarded",
			logging.Int64("company_id", c.ID),
			logging.String("kept", kept.Name),
			logging.String("discarded", c.Name),
		)
	}
	if kept.OriginCountry == "" {
		kept.OriginCountry = c.OriginCountry
	}
}

// parseInt reads a numeric cell tolerantly; unusable cells become zero.
func parseInt(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some exports render integers as floats ("63000000.0").
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return i
}

// parseFloat reads a numeric cell tolerantly; unusable cells become zero.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
