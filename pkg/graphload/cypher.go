package graphload

import (
	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
)

const (
	movieCypher = `UNWIND $rows AS row
MERGE (m:Movie {id: row.id})
SET m.title = row.title, m.release_date = row.release_date,
    m.budget = row.budget, m.revenue = row.revenue,
    m.popularity = row.popularity, m.vote_average = row.vote_average,
    m.vote_count = row.vote_count, m.overview = row.overview`

	personCypher = `UNWIND $rows AS row
MERGE (p:Person {id: row.id})
SET p.name = row.name, p.gender = row.gender,
    p.profile_path = row.profile_path, p.popularity = row.popularity`

	genreCypher = `UNWIND $rows AS row
MERGE (g:Genre {id: row.id})
SET g.name = row.name`

	keywordCypher = `UNWIND $rows AS row
MERGE (k:Keyword {id: row.id})
SET k.name = row.name`

	companyCypher = `UNWIND $rows AS row
MERGE (c:Company {id: row.id})
SET c.name = row.name, c.origin_country = row.origin_country`

	actedInCypher = `UNWIND $rows AS row
MATCH (p:Person {id: row.person_id}), (m:Movie {id: row.movie_id})
MERGE (p)-[r:ACTED_IN]->(m)
SET r.character = row.character, r.order = row.order`

	directedCypher = `UNWIND $rows AS row
MATCH (p:Person {id: row.person_id}), (m:Movie {id: row.movie_id})
MERGE (p)-[r:DIRECTED]->(m)
SET r.job = row.job, r.department = row.department`

	producedCypher = `UNWIND $rows AS row
MATCH (c:Company {id: row.company_id}), (m:Movie {id: row.movie_id})
MERGE (c)-[:PRODUCED]->(m)`

	categorizedAsCypher = `UNWIND $rows AS row
MATCH (m:Movie {id: row.movie_id}), (g:Genre {id: row.genre_id})
MERGE (m)-[:CATEGORIZED_AS]->(g)`

	taggedWithCypher = `UNWIND $rows AS row
MATCH (m:Movie {id: row.movie_id}), (k:Keyword {id: row.keyword_id})
MERGE (m)-[:TAGGED_WITH]->(k)`

	similarToCypher = `UNWIND $rows AS row
MATCH (a:Movie {id: row.movie_a}), (b:Movie {id: row.movie_b})
MERGE (a)-[r:SIMILAR_TO]->(b)
SET r.score = row.score`

	workedWithCypher = `UNWIND $rows AS row
MATCH (a:Person {id: row.person_a}), (b:Person {id: row.person_b})
MERGE (a)-[r:WORKED_WITH]->(b)
SET r.movie_count = row.movie_count`
)

func movieParams(movies []extract.Movie) []map[string]any {
	rows := make([]map[string]any, len(movies))
	for i, m := range movies {
		rows[i] = map[string]any{
			"id": m.ID, "title": m.Title, "release_date": m.ReleaseDate,
			"budget": m.Budget, "revenue": m.Revenue,
			"popularity": m.Popularity, "vote_average": m.VoteAverage,
			"vote_count": m.VoteCount, "overview": m.Overview,
		}
	}
	return rows
}

func personParams(persons []extract.Person) []map[string]any {
	rows := make([]map[string]any, len(persons))
	for i, p := range persons {
		rows[i] = map[string]any{
			"id": p.ID, "name": p.Name, "gender": p.Gender,
			"profile_path": p.ProfilePath, "popularity": p.Popularity,
		}
	}
	return rows
}

func genreParams(genres []extract.Genre) []map[string]any {
	rows := make([]map[string]any, len(genres))
	for i, g := range genres {
		rows[i] = map[string]any{"id": g.ID, "name": g.Name}
	}
	return rows
}

func keywordParams(keywords []extract.Keyword) []map[string]any {
	rows := make([]map[string]any, len(keywords))
	for i, k := range keywords {
		rows[i] = map[string]any{"id": k.ID, "name": k.Name}
	}
	return rows
}

func companyParams(companies []extract.Company) []map[string]any {
	rows := make([]map[string]any, len(companies))
	for i, c := range companies {
		rows[i] = map[string]any{"id": c.ID, "name": c.Name, "origin_country": c.OriginCountry}
	}
	return rows
}

func actedInParams(credits []extract.ActedIn) []map[string]any {
	rows := make([]map[string]any, len(credits))
	for i, a := range credits {
		rows[i] = map[string]any{
			"person_id": a.PersonID, "movie_id": a.MovieID,
			"character": a.Character, "order": a.Order,
		}
	}
	return rows
}

func directedParams(credits []extract.Directed) []map[string]any {
	rows := make([]map[string]any, len(credits))
	for i, d := range credits {
		rows[i] = map[string]any{
			"person_id": d.PersonID, "movie_id": d.MovieID,
			"job": d.Job, "department": d.Department,
		}
	}
	return rows
}

func producedParams(credits []extract.Produced) []map[string]any {
	rows := make([]map[string]any, len(credits))
	for i, p := range credits {
		rows[i] = map[string]any{"company_id": p.CompanyID, "movie_id": p.MovieID}
	}
	return rows
}

func categorizedAsParams(edges []extract.CategorizedAs) []map[string]any {
	rows := make([]map[string]any, len(edges))
	for i, c := range edges {
		rows[i] = map[string]any{"movie_id": c.MovieID, "genre_id": c.GenreID}
	}
	return rows
}

func taggedWithParams(edges []extract.TaggedWith) []map[string]any {
	rows := make([]map[string]any, len(edges))
	for i, t := range edges {
		rows[i] = map[string]any{"movie_id": t.MovieID, "keyword_id": t.KeywordID}
	}
	return rows
}

func similarToParams(edges []derive.SimilarTo) []map[string]any {
	rows := make([]map[string]any, len(edges))
	for i, s := range edges {
		rows[i] = map[string]any{"movie_a": s.MovieA, "movie_b": s.MovieB, "score": s.Score}
	}
	return rows
}

func workedWithParams(edges []derive.WorkedWith) []map[string]any {
	rows := make([]map[string]any, len(edges))
	for i, w := range edges {
		rows[i] = map[string]any{"person_a": w.PersonA, "person_b": w.PersonB, "movie_count": w.MovieCount}
	}
	return rows
}
