package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-engine/internal/config"
	"github.com/sheikh-saqib/transactions-engine/internal/engine"
	"github.com/sheikh-saqib/transactions-engine/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/transactions-engine/internal/interfaces"
	"github.com/sheikh-saqib/transactions-engine/internal/ledger"
	"github.com/sheikh-saqib/transactions-engine/internal/logging"
	"github.com/sheikh-saqib/transactions-engine/internal/metrics"
	"github.com/sheikh-saqib/transactions-engine/internal/storage/memory"
	"github.com/sheikh-saqib/transactions-engine/internal/storage/postgres"
)

const usage = "usage: engine <transactions.csv> [accounts.csv]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("input path was not provided\n%s", usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("file at input path was not found: %w", err)
	}
	defer input.Close()

	var output io.Writer = os.Stdout
	if len(args) == 2 {
		file, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		output = file
	}

	var store interfaces.SnapshotStore = memory.NewMemorySnapshotStore()
	if cfg.Postgres.URL != "" {
		db, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		pgStore := postgres.NewPostgresSnapshotStore(db)
		if err := pgStore.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate snapshot table: %w", err)
		}
		store = pgStore
	}

	var publisher interfaces.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
	}

	provider := metrics.NewProvider(cfg.MetricsEnabled)
	defer provider.Shutdown(context.Background())

	recorder, err := metrics.NewRecorder(provider.Meter())
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	actor := ledger.StartActor(cfg.ActorBufferSize)
	defer actor.Close()

	report, err := engine.New(actor, store, publisher, recorder, logger).Run(ctx, input, output)
	if err != nil {
		logger.Error("batch failed", zap.String("run_id", report.RunID), zap.Error(err))
		return err
	}

	if cfg.MetricsEnabled {
		totals, err := provider.Totals(ctx)
		if err != nil {
			logger.Warn("failed to collect metrics", zap.Error(err))
		}
		for name, value := range totals {
			logger.Info("metric", zap.String("name", name), zap.Int64("value", value))
		}
	}
	return nil
}
