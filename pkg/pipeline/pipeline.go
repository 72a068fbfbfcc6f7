// Package pipeline runs the full ETL: read the two raw tables,
// reconcile them into one working table, extract the graph, derive the
// computed relationships, and publish the output atomically. A run
// either publishes a complete, referentially consistent set of tables
// or leaves the previous output untouched.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-moviegraph/pkg/derive"
	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
	"github.com/dd0wney/cluso-moviegraph/pkg/metrics"
	"github.com/dd0wney/cluso-moviegraph/pkg/reconcile"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// Options configures a pipeline run.
type Options struct {
	// RunID labels the run in logs and the output manifest. Empty means
	// a fresh random id per run.
	RunID string

	MetadataFile string
	CreditsFile  string

	MaxCast                int
	SimilarityThreshold    int
	CollaborationThreshold int
}

// Report summarizes a completed run.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration

	Reconcile *reconcile.Diagnostics
	Extract   *extract.Stats

	NodeCounts         map[string]int
	RelationshipCounts map[string]int
	DroppedInvalid     map[string]int
}

// Pipeline wires the stages together.
type Pipeline struct {
	log     logging.Logger
	metrics *metrics.Registry
	source  tabio.Source
	sink    tabio.Sink
	opts    Options
}

// New creates a pipeline over the given source and sink. A nil metrics
// registry disables metric recording; a nil logger discards logs.
func New(log logging.Logger, reg *metrics.Registry, source tabio.Source, sink tabio.Sink, opts Options) *Pipeline {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Pipeline{
		log:     log.With(logging.Stage("pipeline")),
		metrics: reg,
		source:  source,
		sink:    sink,
		opts:    opts,
	}
}

// Run executes the full ETL. On any failure the sink is aborted and the
// previous output, if any, stays in place.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	runID := p.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	report := &Report{
		RunID:   runID,
		Started: time.Now(),
	}
	log := p.log.With(logging.RunID(report.RunID))
	log.Info("run starting",
		logging.String("metadata_file", p.opts.MetadataFile),
		logging.String("credits_file", p.opts.CreditsFile),
	)

	err := p.run(ctx, log, report)
	report.Duration = time.Since(report.Started)
	if err != nil {
		if abortErr := p.sink.Abort(ctx); abortErr != nil {
			log.Error("abort after failure", logging.Error(abortErr))
		}
		p.metrics.RecordRun("failure", 0)
		log.Error("run failed", logging.Error(err), logging.Duration("elapsed", report.Duration))
		return nil, err
	}

	p.metrics.RecordRun("success", report.Extract.RowsProcessed)
	log.Info("run complete",
		logging.Rows(report.Extract.RowsProcessed),
		logging.Duration("elapsed", report.Duration),
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, log logging.Logger, report *Report) error {
	metadata, err := p.readTable(ctx, p.opts.MetadataFile)
	if err != nil {
		return err
	}
	credits, err := p.readTable(ctx, p.opts.CreditsFile)
	if err != nil {
		return err
	}
	p.metrics.RowsReadTotal.WithLabelValues("metadata").Add(float64(metadata.NumRows()))
	p.metrics.RowsReadTotal.WithLabelValues("credits").Add(float64(credits.NumRows()))

	start := time.Now()
	merged, diag, err := reconcile.New(log).Merge(metadata, credits)
	if err != nil {
		return reconcileError(err)
	}
	p.metrics.RecordStage("reconcile", time.Since(start))
	p.metrics.RowsMerged.Set(float64(diag.MergedRows))
	p.metrics.RowsUnmatched.Set(float64(diag.UnmatchedRows))
	for _, column := range diag.DefaultedColumns {
		p.metrics.DefaultedCellsTotal.WithLabelValues(column).Inc()
	}
	report.Reconcile = diag

	start = time.Now()
	graph, stats := extract.New(log, p.opts.MaxCast).Extract(merged)
	p.metrics.RecordStage("extract", time.Since(start))
	p.metrics.RecordParseFailures(stats.ParseFailures)
	p.metrics.EntitiesSkippedTotal.Add(float64(stats.EntitiesSkipped))
	p.metrics.AttributeConflicts.Add(float64(stats.AttributeConflicts))
	report.Extract = stats

	start = time.Now()
	deriver := derive.New(log, p.opts.SimilarityThreshold, p.opts.CollaborationThreshold)
	similar := deriver.SimilarMovies(graph)
	worked := deriver.Collaborations(graph)
	p.metrics.RecordStage("derive", time.Since(start))

	similar, worked, dropped := verifyIntegrity(log, graph, similar, worked)
	report.DroppedInvalid = dropped
	for relType, n := range dropped {
		p.metrics.RecordDroppedRelationships(relType, n)
	}

	report.NodeCounts = map[string]int{
		"Movie":   len(graph.Movies),
		"Person":  len(graph.Persons),
		"Genre":   len(graph.Genres),
		"Keyword": len(graph.Keywords),
		"Company": len(graph.Companies),
	}
	report.RelationshipCounts = map[string]int{
		"ACTED_IN":       len(graph.ActedIn),
		"DIRECTED":       len(graph.Directed),
		"PRODUCED":       len(graph.Produced),
		"CATEGORIZED_AS": len(graph.CategorizedAs),
		"TAGGED_WITH":    len(graph.TaggedWith),
		"SIMILAR_TO":     len(similar),
		"WORKED_WITH":    len(worked),
	}
	p.metrics.SetNodeCounts(len(graph.Movies), len(graph.Persons),
		len(graph.Genres), len(graph.Keywords), len(graph.Companies))
	for relType, n := range report.RelationshipCounts {
		p.metrics.SetRelationshipCount(relType, n)
	}

	start = time.Now()
	tables := buildTables(graph, similar, worked)
	for _, name := range OutputTables {
		if err := p.sink.WriteTable(ctx, name, tables[name]); err != nil {
			return writeError(name, err)
		}
	}
	if err := p.sink.Commit(ctx); err != nil {
		return commitError(err)
	}
	p.metrics.RecordStage("write", time.Since(start))

	return nil
}

// readTable opens one raw input and parses it as CSV.
func (p *Pipeline) readTable(ctx context.Context, name string) (*tabio.Table, error) {
	rc, err := p.source.Open(ctx, name)
	if err != nil {
		return nil, readError(name, err)
	}
	defer rc.Close()

	t, err := tabio.ReadCSV(rc)
	if err != nil {
		return nil, parseError(name, err)
	}
	p.log.Debug("input table read", logging.Table(name), logging.Rows(t.NumRows()))
	return t, nil
}
