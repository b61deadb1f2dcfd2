package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mesowx/mesoanalysis/internal/adapter/httpapi"
	"github.com/mesowx/mesoanalysis/internal/adapter/iem"
	kafkaadapter "github.com/mesowx/mesoanalysis/internal/adapter/kafka"
	"github.com/mesowx/mesoanalysis/internal/config"
	"github.com/mesowx/mesoanalysis/internal/ingest"
	"github.com/mesowx/mesoanalysis/internal/observability"
	"github.com/mesowx/mesoanalysis/internal/scheduler"
	"github.com/mesowx/mesoanalysis/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Station display names: local FAA airport file when configured,
	// otherwise raw station IDs until the metadata fetch below fills in.
	var stationNames map[string]string
	if cfg.StationFile != "" {
		stationNames, err = iem.LoadStationNames(cfg.StationFile, logger)
		if err != nil {
			logger.Warn("station file unavailable, falling back to station API", "error", err)
		}
	}

	client := iem.NewClient(cfg.IEMBaseURL, cfg.FetchTimeout, stationNames, logger)

	if stationNames == nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		names, err := client.FetchStationNames(ctx)
		cancel()
		if err != nil {
			logger.Warn("station metadata unavailable, using raw IDs", "error", err)
		} else {
			client = iem.NewClient(cfg.IEMBaseURL, cfg.FetchTimeout, names, logger)
		}
	}

	history := store.NewHistory(cfg.SnapshotMaxItems, cfg.SnapshotRetention)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher ingest.Publisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		metrics.PublishEnabled.Set(1)
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	refresher := ingest.New(client, history, publisher, logger, metrics)

	sched := scheduler.New(refresher, cfg.RefreshInterval, cfg.FetchTimeout, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, history, refresher, refresher, cfg.RenderCacheSize, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the refresh scheduler, which runs the first fetch immediately.
	go func() {
		if err := sched.Start(); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
