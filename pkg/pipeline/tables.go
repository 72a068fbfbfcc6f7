package pipeline

import (
	"strconv"

	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// Output table names, in the order they are written.
const (
	TableMovies        = "movies"
	TablePersons       = "persons"
	TableGenres        = "genres"
	TableKeywords      = "keywords"
	TableCompanies     = "companies"
	TableActedIn       = "acted_in"
	TableDirected      = "directed"
	TableProduced      = "produced"
	TableCategorizedAs = "categorized_as"
	TableTaggedWith    = "tagged_with"
	TableSimilarTo     = "similar_to"
	TableWorkedWith    = "worked_with"
)

// OutputTables lists every table a run produces, in write order.
var OutputTables = []string{
	TableMovies, TablePersons, TableGenres, TableKeywords, TableCompanies,
	TableActedIn, TableDirected, TableProduced, TableCategorizedAs,
	TableTaggedWith, TableSimilarTo, TableWorkedWith,
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// buildTables serializes the graph into the output tables. Column
// orders are fixed and rows keep the deterministic order the upstream
// stages produced, so identical inputs serialize identically.
func buildTables(graph *extract.Graph, similar []derive.SimilarTo, worked []derive.WorkedWith) map[string]*tabio.Table {
	out := make(map[string]*tabio.Table, len(OutputTables))

	movies := tabio.NewTable("id", "title", "release_date", "budget", "revenue",
		"popularity", "vote_average", "vote_count", "overview")
	for _, m := range graph.Movies {
		movies.AppendRow([]string{
			formatInt(m.ID), m.Title, m.ReleaseDate,
			formatInt(m.Budget), formatInt(m.Revenue),
			formatFloat(m.Popularity), formatFloat(m.VoteAverage),
			formatInt(m.VoteCount), m.Overview,
		})
	}
	out[TableMovies] = movies

	persons := tabio.NewTable("id", "name", "gender", "profile_path", "popularity")
	for _, p := range graph.Persons {
		persons.AppendRow([]string{
			formatInt(p.ID), p.Name, formatInt(p.Gender),
			p.ProfilePath, formatFloat(p.Popularity),
		})
	}
	out[TablePersons] = persons

	genres := tabio.NewTable("id", "name")
	for _, g := range graph.Genres {
		genres.AppendRow([]string{formatInt(g.ID), g.Name})
	}
	out[TableGenres] = genres

	keywords := tabio.NewTable("id", "name")
	for _, k := range graph.Keywords {
		keywords.AppendRow([]string{formatInt(k.ID), k.Name})
	}
	out[TableKeywords] = keywords

	companies := tabio.NewTable("id", "name", "origin_country")
	for _, c := range graph.Companies {
		companies.AppendRow([]string{formatInt(c.ID), c.Name, c.OriginCountry})
	}
	out[TableCompanies] = companies

	actedIn := tabio.NewTable("person_id", "movie_id", "character", "order")
	for _, a := range graph.ActedIn {
		actedIn.AppendRow([]string{
			formatInt(a.PersonID), formatInt(a.MovieID), a.Character, formatInt(a.Order),
		})
	}
	out[TableActedIn] = actedIn

	directed := tabio.NewTable("person_id", "movie_id", "job", "department")
	for _, d := range graph.Directed {
		directed.AppendRow([]string{
			formatInt(d.PersonID), formatInt(d.MovieID), d.Job, d.Department,
		})
	}
	out[TableDirected] = directed

	produced := tabio.NewTable("company_id", "movie_id")
	for _, p := range graph.Produced {
		produced.AppendRow([]string{formatInt(p.CompanyID), formatInt(p.MovieID)})
	}
	out[TableProduced] = produced

	categorized := tabio.NewTable("movie_id", "genre_id")
	for _, c := range graph.CategorizedAs {
		categorized.AppendRow([]string{formatInt(c.MovieID), formatInt(c.GenreID)})
	}
	out[TableCategorizedAs] = categorized

	tagged := tabio.NewTable("movie_id", "keyword_id")
	for _, t := range graph.TaggedWith {
		tagged.AppendRow([]string{formatInt(t.MovieID), formatInt(t.KeywordID)})
	}
	out[TableTaggedWith] = tagged

	similarTo := tabio.NewTable("movie_a", "movie_b", "score")
	for _, s := range similar {
		similarTo.AppendRow([]string{formatInt(s.MovieA), formatInt(s.MovieB), formatInt(s.Score)})
	}
	out[TableSimilarTo] = similarTo

	workedWith := tabio.NewTable("person_a", "person_b", "movie_count")
	for _, w := range worked {
		workedWith.AppendRow([]string{formatInt(w.PersonA), formatInt(w.PersonB), formatInt(w.MovieCount)})
	}
	out[TableWorkedWith] = workedWith

	return out
}
