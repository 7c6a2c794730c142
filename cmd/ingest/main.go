package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var (
		datasetDir = flag.String("dataset-dir", cfg.Dataset.Dir, "Directory containing people.csv, movies.csv and stars.csv")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
		batchSize  = flag.Int("batch-size", cfg.Graph.BatchSize, "Rows per UNWIND batch")
	)
	flag.Parse()

	logger := logging.New(cfg.Logging).With("component", "ingest")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tables, err := loader.ReadDirectory(ctx, *datasetDir)
	if err != nil {
		logger.Error("failed to read dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}
	if len(tables.People) == 0 {
		logger.Error("people table empty", "dir", *datasetDir)
		os.Exit(1)
	}

	graphClient, err := bootstrap.NewGraphClient(ctx, logger, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()
	if err := graphClient.VerifyConnectivity(ctx); err != nil {
		logger.Error("graph unreachable", "error", err, "uri", cfg.Graph.URI)
		os.Exit(1)
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)

	repo := repository.New(graphClient)
	ingestor := service.NewBulkIngestor(repo, *workers, *batchSize, logger)

	start := time.Now()
	logger.Info("ingesting dataset",
		"people", len(tables.People),
		"movies", len(tables.Movies),
		"stars", len(tables.Stars),
		"workers", *workers,
		"batchSize", *batchSize,
	)
	report, err := ingestor.Ingest(ctx, tables)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	people, movies, stars, err := repo.Counts(ctx)
	if err != nil {
		logger.Warn("could not read graph totals", "error", err)
	}
	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"batches", report.Batches,
		"people", report.People,
		"movies", report.Movies,
		"stars", report.Stars,
		"graphPeople", people,
		"graphMovies", movies,
		"graphStars", stars,
	)
}
