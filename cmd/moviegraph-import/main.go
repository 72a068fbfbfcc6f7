package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-moviegraph/pkg/config"
	"github.com/dd0wney/cluso-moviegraph/pkg/graphload"
	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	dir := flag.String("dir", "", "Published output directory to import")
	uri := flag.String("uri", "", "Bolt URI (overrides config)")
	flag.Parse()

	if *dir == "" {
		fmt.Println("Usage: moviegraph-import --dir ./out [--config etl.yaml] [--uri bolt://localhost:7687]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviegraph-import:", err)
		os.Exit(1)
	}
	if *uri != "" {
		cfg.Neo4j.URI = *uri
	}
	if cfg.Neo4j.URI == "" {
		fmt.Fprintln(os.Stderr, "moviegraph-import: no Bolt URI configured")
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, *dir); err != nil {
		logger.Error("import failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger, cfg *config.Config, dir string) error {
	rs, err := graphload.ReadRun(dir)
	if err != nil {
		return err
	}
	logger.Info("run loaded from disk",
		logging.Path(dir),
		logging.RunID(rs.Manifest.RunID),
		logging.Int("movies", len(rs.Graph.Movies)),
		logging.Int("persons", len(rs.Graph.Persons)),
	)

	loader, err := graphload.New(graphload.Config{
		URI:       cfg.Neo4j.URI,
		Username:  cfg.Neo4j.Username,
		Password:  cfg.Neo4j.Password,
		Database:  cfg.Neo4j.Database,
		BatchSize: cfg.Neo4j.BatchSize,
	}, logger)
	if err != nil {
		return err
	}
	defer loader.Close(ctx)

	if err := loader.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph database unreachable: %w", err)
	}
	if err := loader.EnsureConstraints(ctx); err != nil {
		return err
	}
	return loader.Load(ctx, rs.Graph, rs.Similar, rs.Worked)
}
