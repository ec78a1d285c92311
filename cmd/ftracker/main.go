package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fit-tracker/internal/config"
	"fit-tracker/internal/logger"
	"fit-tracker/pipeline"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one batch and returns the process exit code: 0 on success,
// 1 on a pipeline failure, 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "ftracker: %v\n", err)
		return 2
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "ftracker: invalid log level %q: %v\n", cfg.LogLevel, err)
		return 2
	}
	defer logger.Log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Debug("starting batch",
		zap.Strings("inputs", cfg.Inputs),
		zap.String("out", cfg.OutDir),
		zap.String("format", cfg.Format),
	)

	result, err := pipeline.Run(ctx, pipeline.Options{
		Inputs:    cfg.Inputs,
		OutDir:    cfg.OutDir,
		Format:    cfg.Format,
		Overwrite: cfg.Overwrite,
		Athlete:   cfg.Athlete(),
		Stdout:    stdout,
	})
	if err != nil {
		logger.Log.Error("ftracker failed", zap.Error(err))
		return 1
	}

	for _, o := range result.Outcomes {
		if o.NotFound {
			logger.Log.Warn("unknown workout code",
				zap.Int("index", o.Index),
				zap.String("code", o.Sample.Code),
			)
		}
	}
	logger.Log.Info("batch complete",
		zap.String("run_id", result.RunID),
		zap.Int("resolved", result.Resolved),
		zap.Int("not_found", result.NotFound),
	)
	if result.ReportsPath != "" {
		logger.Log.Info("artifacts written",
			zap.String("reports", result.ReportsPath),
			zap.String("manifest", result.ManifestPath),
		)
	}
	return 0
}
