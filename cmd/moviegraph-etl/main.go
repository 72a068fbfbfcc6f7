package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-moviegraph/pkg/config"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
	"github.com/dd0wney/cluso-moviegraph/pkg/metrics"
	"github.com/dd0wney/cluso-moviegraph/pkg/pipeline"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	inputDir := flag.String("input", "", "Input directory (overrides config)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	maxCast := flag.Int("max-cast", -1, "Cast entries kept per movie, 0 for unlimited (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviegraph-etl:", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Source = config.SourceConfig{Kind: "dir", Dir: *inputDir}
	}
	if *outputDir != "" {
		cfg.Sink.Kind = "dir"
		cfg.Sink.Dir = *outputDir
	}
	if *maxCast >= 0 {
		cfg.MaxCast = *maxCast
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("etl failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger, cfg *config.Config) error {
	runID := uuid.NewString()

	source, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	sink, err := newSink(ctx, cfg, runID)
	if err != nil {
		return err
	}

	p := pipeline.New(logger, metrics.DefaultRegistry(), source, sink, pipeline.Options{
		RunID:                  runID,
		MetadataFile:           cfg.MetadataFile,
		CreditsFile:            cfg.CreditsFile,
		MaxCast:                cfg.MaxCast,
		SimilarityThreshold:    cfg.SimilarityThreshold,
		CollaborationThreshold: cfg.CollaborationThreshold,
	})

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("report",
		logging.RunID(report.RunID),
		logging.Duration("elapsed", report.Duration),
		logging.Rows(report.Extract.RowsProcessed),
		logging.Int("movies", report.NodeCounts["Movie"]),
		logging.Int("persons", report.NodeCounts["Person"]),
		logging.Int("acted_in", report.RelationshipCounts["ACTED_IN"]),
		logging.Int("similar_to", report.RelationshipCounts["SIMILAR_TO"]),
		logging.Int("worked_with", report.RelationshipCounts["WORKED_WITH"]),
	)
	return nil
}

func newSource(ctx context.Context, cfg *config.Config) (tabio.Source, error) {
	switch cfg.Source.Kind {
	case "s3":
		return tabio.NewS3Source(ctx, cfg.Source.Bucket, cfg.Source.Prefix, cfg.Source.Region)
	default:
		return tabio.NewDirSource(cfg.Source.Dir), nil
	}
}

func newSink(ctx context.Context, cfg *config.Config, runID string) (tabio.Sink, error) {
	switch cfg.Sink.Kind {
	case "postgres":
		return tabio.NewPGSink(ctx, cfg.Sink.DSN, cfg.Sink.Schema)
	default:
		return tabio.NewDirSink(cfg.Sink.Dir, runID, cfg.Sink.Compress)
	}
}
