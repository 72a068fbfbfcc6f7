package extract

// Node records, keyed by the stable external ids carried in the raw
// data. An entity with no usable id is never emitted and never gets a
// synthetic one.

// Movie is a film node.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate string
	Budget      int64
	Revenue     int64
	Popularity  float64
	VoteAverage float64
	VoteCount   int64
	Overview    string
}

// Person is a cast or crew member node.
type Person struct {
	ID          int64
	Name        string
	Gender      int64
	ProfilePath string
	Popularity  float64
}

// Genre is a genre node.
type Genre struct {
	ID   int64
	Name string
}

// Keyword is a keyword node.
type Keyword struct {
	ID   int64
	Name string
}

// Company is a production company node.
type Company struct {
	ID            int64
	Name          string
	OriginCountry string
}

// Direct relationship rows, one per source credit.

// ActedIn links a person to a movie they acted in.
type ActedIn struct {
	PersonID  int64
	MovieID   int64
	Character string
	Order     int64
}

// Directed links a person to a movie they directed.
type Directed struct {
	PersonID   int64
	MovieID    int64
	Job        string
	Department string
}

// Produced links a company to a movie it produced.
type Produced struct {
	CompanyID int64
	MovieID   int64
}

// CategorizedAs links a movie to a genre.
type CategorizedAs struct {
	MovieID int64
	GenreID int64
}

// TaggedWith links a movie to a keyword.
type TaggedWith struct {
	MovieID   int64
	KeywordID int64
}

// Graph holds the deduplicated node records and the direct relationship
// rows accumulated over one pass of the working table. Node slices keep
// first-encounter order, which makes output deterministic for a given
// input.
type Graph struct {
	Movies    []Movie
	Persons   []Person
	Genres    []Genre
	Keywords  []Keyword
	Companies []Company

	ActedIn       []ActedIn
	Directed      []Directed
	Produced      []Produced
	CategorizedAs []CategorizedAs
	TaggedWith    []TaggedWith

	movieIndex   map[int64]int
	personIndex  map[int64]int
	genreIndex   map[int64]int
	keywordIndex map[int64]int
	companyIndex map[int64]int
}

// NewGraph creates an empty graph accumulator.
func NewGraph() *Graph {
	return &Graph{
		movieIndex:   make(map[int64]int),
		personIndex:  make(map[int64]int),
		genreIndex:   make(map[int64]int),
		keywordIndex: make(map[int64]int),
		companyIndex: make(map[int64]int),
	}
}

// RebuildIndexes recomputes the id lookup maps from the node slices.
// Needed when a graph is assembled directly instead of through an
// extraction pass.
func (g *Graph) RebuildIndexes() {
	g.movieIndex = make(map[int64]int, len(g.Movies))
	for i, m := range g.Movies {
		g.movieIndex[m.ID] = i
	}
	g.personIndex = make(map[int64]int, len(g.Persons))
	for i, p := range g.Persons {
		g.personIndex[p.ID] = i
	}
	g.genreIndex = make(map[int64]int, len(g.Genres))
	for i, gn := range g.Genres {
		g.genreIndex[gn.ID] = i
	}
	g.keywordIndex = make(map[int64]int, len(g.Keywords))
	for i, k := range g.Keywords {
		g.keywordIndex[k.ID] = i
	}
	g.companyIndex = make(map[int64]int, len(g.Companies))
	for i, c := range g.Companies {
		g.companyIndex[c.ID] = i
	}
}

// HasMovie reports whether a movie node with the given id exists.
func (g *Graph) HasMovie(id int64) bool {
	_, ok := g.movieIndex[id]
	return ok
}

// HasPerson reports whether a person node with the given id exists.
func (g *Graph) HasPerson(id int64) bool {
	_, ok := g.personIndex[id]
	return ok
}

// HasGenre reports whether a genre node with the given id exists.
func (g *Graph) HasGenre(id int64) bool {
	_, ok := g.genreIndex[id]
	return ok
}

// HasKeyword reports whether a keyword node with the given id exists.
func (g *Graph) HasKeyword(id int64) bool {
	_, ok := g.keywordIndex[id]
	return ok
}

// HasCompany reports whether a company node with the given id exists.
func (g *Graph) HasCompany(id int64) bool {
	_, ok := g.companyIndex[id]
	return ok
}
