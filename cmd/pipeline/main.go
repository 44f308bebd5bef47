package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"geocli/internal/config"
	"geocli/internal/infrastructure"
	"geocli/internal/services"
	"geocli/pkg/contracts"
)

func main() {
	dataDir := flag.String("data", "", "data directory with risk/energy/hardware/crypto sources (defaults to data/ next to the executable)")
	resultsDir := flag.String("out", "", "results directory (defaults to results/ next to the executable)")
	startDate := flag.String("start", "", "restrict the unified calendar, YYYY-MM-DD")
	endDate := flag.String("end", "", "restrict the unified calendar, YYYY-MM-DD")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *startDate != "" {
		cfg.Analysis.StartDate = *startDate
	}
	if *endDate != "" {
		cfg.Analysis.EndDate = *endDate
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		paths.WithDataDir(*dataDir)
	}
	if *resultsDir != "" {
		paths.WithResultsDir(*resultsDir)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = paths.GetLogPath("pipeline.log")
	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	runID := uuid.New().String()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "pipeline starting",
		slog.String("version", contracts.Version),
		slog.String("data_dir", paths.DataDir),
		slog.String("results_dir", paths.ResultsDir))

	service := services.NewPipelineService(cfg, paths, logger)
	summary, err := service.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "pipeline finished",
		slog.Int("days", summary.Days),
		slog.Int("signals", summary.Signals),
		slog.Int("correlations", summary.Correlations),
		slog.Int("undefined", summary.Undefined),
		slog.Duration("duration", summary.Duration))

	fmt.Printf("Run %s: %d days, %d signals, %d correlation records (%d undefined) in %s\n",
		summary.RunID, summary.Days, summary.Signals, summary.Correlations,
		summary.Undefined, summary.Duration.Round(time.Millisecond))
}
