// Command labelsync uploads the local photo directory to S3, labels every
// image with Rekognition and writes the labels document for the gallery page.
//
// It takes no flags; see the config package for the environment variables.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		newLogger(slog.LevelInfo).Error("failed to load configuration", "error", err)
		return 1
	}

	logger := newLogger(cfg.SlogLevel())

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	syncer, err := labelsync.New(ctx, cfg, labelsync.WithLogger(logger))
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return 1
	}

	if _, err := syncer.Run(ctx); err != nil {
		return 1
	}
	return 0
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	)
}
