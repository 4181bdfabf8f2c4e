package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/aerosol-aod-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/aerosol-aod-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/aerosol-aod-etl/internal/adapter/kafka"
	"github.com/couchcryptid/aerosol-aod-etl/internal/adapter/naturalearth"
	"github.com/couchcryptid/aerosol-aod-etl/internal/adapter/postgres"
	"github.com/couchcryptid/aerosol-aod-etl/internal/config"
	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
	"github.com/couchcryptid/aerosol-aod-etl/internal/observability"
	"github.com/couchcryptid/aerosol-aod-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Region enrichment is feature-flagged via NATURAL_EARTH_PATH.
	var lookup domain.RegionLookup
	if cfg.NaturalEarthPath != "" {
		ne, err := naturalearth.NewLookup(cfg.NaturalEarthPath, logger)
		if err != nil {
			logger.Error("failed to load boundary dataset", "error", err)
			os.Exit(1)
		}
		lookup = naturalearth.NewCachedLookup(ne, cfg.RegionCacheSize, metrics)
		metrics.RegionEnabled.Set(1)
		logger.Info("region enrichment enabled", "path", cfg.NaturalEarthPath, "cache_size", cfg.RegionCacheSize)
	} else {
		logger.Info("region enrichment disabled")
	}

	db, err := postgres.Connect(cfg.DSN())
	if err != nil {
		logger.Error("failed to connect to warehouse", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var publisher pipeline.ReportPublisher
	var reportWriter *kafkaadapter.ReportWriter
	if cfg.ReportingEnabled() {
		reportWriter = kafkaadapter.NewReportWriter(cfg.KafkaBrokers, cfg.KafkaReportTopic, logger)
		publisher = reportWriter
		logger.Info("run reporting enabled", "topic", cfg.KafkaReportTopic)
	}

	reader := csvfile.NewReader(cfg.InputPath, domain.DefaultSpectral(), logger)
	transformer := pipeline.NewTransformer(domain.DefaultSpectral(), lookup, cfg.InputPath, logger)
	loader := postgres.NewLoader(db, cfg.LoadBatchSize, logger)

	p := pipeline.New(reader, transformer, loader, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("etl run failed", "error", runErr)
	} else {
		logger.Info("etl run complete")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reportWriter != nil {
		if err := reportWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}
