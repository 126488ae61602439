package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/openfleet/fleetlens/pkg/config"
	"github.com/openfleet/fleetlens/pkg/engine"
	"github.com/openfleet/fleetlens/pkg/logging"
	"github.com/openfleet/fleetlens/pkg/store"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to the booking workbook (xlsx, xls or csv)")
		configPath = flag.String("config", "", "path to the YAML config file (optional)")
		dbPath     = flag.String("db", "", "sqlite output path (overrides config)")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fleetlens -input booking.xlsx [-config config.yaml] [-db data/fleetlens.db]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Store.DBPath = *dbPath
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		logger.Fatal("failed to read input file", zap.String("path", *inputPath), zap.Error(err))
	}

	cache := engine.NewCache()
	res, err := cache.Analyze(data, cfg, logger)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	db, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		logger.Fatal("failed to open result store", zap.String("path", cfg.Store.DBPath), zap.Error(err))
	}
	defer db.Close()

	if err := store.SaveRun(db, res); err != nil {
		logger.Fatal("failed to persist run", zap.String("run_id", res.RunID), zap.Error(err))
	}

	logger.Info("run persisted",
		zap.String("run_id", res.RunID),
		zap.String("db", cfg.Store.DBPath),
		zap.Int("trips", res.Metrics.TotalTrips),
		zap.Float64("total_hours", res.Metrics.TotalHours),
		zap.Float64("occupancy_rate", res.Metrics.OccupancyRate),
		zap.Float64("completion_rate", res.Metrics.CompletionRate),
		zap.Float64("cancellation_rate", res.Metrics.CancellationRate),
		zap.Int("overlaps", res.Metrics.OverlapCount),
		zap.Int("schema_warnings", len(res.Quality.SchemaWarnings)),
	)
}
