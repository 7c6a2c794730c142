package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/server"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := bootstrap.LoadDataset(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "source", cfg.Dataset.Source, "dir", cfg.Dataset.Dir)
		os.Exit(1)
	}
	defer func() {
		if err := ds.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := service.NewDegreesService(ds.Dataset, m, logger)

	checks := server.HealthChecks{server.DatasetHealthService{Dataset: ds.Dataset}}
	if ds.Graph != nil {
		checks = append(checks, server.GraphHealthService{Client: ds.Graph})
	}

	deps := server.RouterDependencies{
		Health:           checks,
		API:              server.NewAPIHandlers(logger, svc),
		Metrics:          m,
		AllowedOrigins:   server.ParseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	}
	if cfg.HTTP.MetricsEnabled {
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
}
