// Package graphload imports a finished run into Neo4j over Bolt. Nodes
// are merged by id and relationships by their endpoints, so re-importing
// the same run is harmless.
package graphload

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
)

// Config holds the connection settings for an import.
type Config struct {
	URI       string
	Username  string
	Password  string
	Database  string
	BatchSize int
}

// Loader wraps the Neo4j driver.
type Loader struct {
	driver    neo4j.DriverWithContext
	log       logging.Logger
	database  string
	batchSize int
}

// constraints are the uniqueness guarantees the import relies on; MERGE
// by id is only safe when the id is unique per label.
var constraints = []string{
	"CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE",
	"CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT genre_id IF NOT EXISTS FOR (g:Genre) REQUIRE g.id IS UNIQUE",
	"CREATE CONSTRAINT keyword_id IF NOT EXISTS FOR (k:Keyword) REQUIRE k.id IS UNIQUE",
	"CREATE CONSTRAINT company_id IF NOT EXISTS FOR (c:Company) REQUIRE c.id IS UNIQUE",
}

// New creates a loader connected to the given database.
func New(cfg Config, log logging.Logger) (*Loader, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &Loader{
		driver:    driver,
		log:       log.With(logging.Stage("graphload")),
		database:  cfg.Database,
		batchSize: batchSize,
	}, nil
}

// Close closes the driver connection.
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// VerifyConnectivity checks if the database is reachable.
func (l *Loader) VerifyConnectivity(ctx context.Context) error {
	return l.driver.VerifyConnectivity(ctx)
}

func (l *Loader) session(ctx context.Context) neo4j.SessionWithContext {
	return l.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: l.database,
	})
}

// EnsureConstraints creates the per-label uniqueness constraints.
func (l *Loader) EnsureConstraints(ctx context.Context) error {
	session := l.session(ctx)
	defer session.Close(ctx)

	for _, stmt := range constraints {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}
	l.log.Info("constraints ensured", logging.Count(len(constraints)))
	return nil
}

// Load imports the whole graph: all node labels first, then every
// relationship type, in batched UNWIND statements.
func (l *Loader) Load(ctx context.Context, graph *extract.Graph, similar []derive.SimilarTo, worked []derive.WorkedWith) error {
	session := l.session(ctx)
	defer session.Close(ctx)

	steps := []struct {
		name   string
		cypher string
		rows   []map[string]any
	}{
		{"Movie", movieCypher, movieParams(graph.Movies)},
		{"Person", personCypher, personParams(graph.Persons)},
		{"Genre", genreCypher, genreParams(graph.Genres)},
		{"Keyword", keywordCypher, keywordParams(graph.Keywords)},
		{"Company", companyCypher, companyParams(graph.Companies)},
		{"ACTED_IN", actedInCypher, actedInParams(graph.ActedIn)},
		{"DIRECTED", directedCypher, directedParams(graph.Directed)},
		{"PRODUCED", producedCypher, producedParams(graph.Produced)},
		{"CATEGORIZED_AS", categorizedAsCypher, categorizedAsParams(graph.CategorizedAs)},
		{"TAGGED_WITH", taggedWithCypher, taggedWithParams(graph.TaggedWith)},
		{"SIMILAR_TO", similarToCypher, similarToParams(similar)},
		{"WORKED_WITH", workedWithCypher, workedWithParams(worked)},
	}

	for _, step := range steps {
		if err := l.runBatched(ctx, session, step.cypher, step.rows); err != nil {
			return fmt.Errorf("load %s: %w", step.name, err)
		}
		l.log.Info("loaded", logging.String("step", step.name), logging.Count(len(step.rows)))
	}
	return nil
}

// runBatched feeds rows through one UNWIND statement in write
// transactions of at most batchSize rows each.
func (l *Loader) runBatched(ctx context.Context, session neo4j.SessionWithContext, cypher string, rows []map[string]any) error {
	for _, batch := range chunk(rows, l.batchSize) {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, cypher, map[string]any{"rows": batch})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// chunk splits rows into slices of at most size elements.
func chunk(rows []map[string]any, size int) [][]map[string]any {
	if len(rows) == 0 {
		return nil
	}
	var out [][]map[string]any
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
