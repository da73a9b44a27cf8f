package labelsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/labeler"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/metrics"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/provisioner"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/scanner"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/uploader"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/writer"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// Run executes one complete synchronization.
//
// The labels document is only written when every stage succeeded. On failure
// the returned error is an *errors.Error whose Kind names the failed stage.
func (s *Syncer) Run(ctx context.Context) (*labeltypes.RunResult, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	recorder := metrics.NewRecorder()

	result, err := s.run(ctx, logger, recorder)
	if err != nil {
		kind := errors.KindOf(err)
		logger.Error("run failed", "kind", kind.String(), "error", err)
		recorder.MarkFailure(kind.String(), time.Now())
		s.exportMetrics(logger, recorder)
		return nil, err
	}

	result.RunID = runID
	result.Duration = time.Since(startTime)
	recorder.MarkSuccess(time.Now())
	s.exportMetrics(logger, recorder)

	logger.Info("done",
		"scanned", result.Scanned,
		"uploaded", result.Uploaded,
		"skipped", result.Skipped,
		"labeled", result.Labeled,
		"bytes", result.BytesUploaded,
		"output", result.OutputPath,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *Syncer) run(ctx context.Context, logger *slog.Logger, recorder *metrics.Recorder) (*labeltypes.RunResult, error) {
	cfg := s.config

	// Scanning and provisioning are independent and run side by side.
	var (
		records  []labeltypes.ImageRecord
		existing labeltypes.ObjectKeySet
	)
	stageStart := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = scanner.NewScanner(s.fs, logger).Scan(gctx, cfg.ImageDir)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = provisioner.New(s.s3Client, provisioner.Config{
			Bucket:  cfg.Bucket,
			Region:  cfg.Region,
			ACL:     cfg.ACL,
			MaxKeys: cfg.MaxKeys,
		}, logger).Ensure(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	recorder.ObserveStage(metrics.StageBootstrap, time.Since(stageStart))
	recorder.ObserveScan(len(records))

	syncResult, err := uploader.New(s.s3Client, s.fs, uploader.Config{
		Bucket:      cfg.Bucket,
		Concurrency: cfg.Concurrency,
	}, logger).Sync(ctx, records, existing)
	if err != nil {
		return nil, err
	}
	recorder.ObserveSync(syncResult)

	stageStart = time.Now()
	labeled, err := labeler.New(s.recognizer, labeler.Config{
		Bucket:        cfg.Bucket,
		MaxLabels:     cfg.MaxLabels,
		MinConfidence: cfg.MinConfidence,
		Concurrency:   cfg.Concurrency,
	}, logger).Label(ctx, records)
	if err != nil {
		return nil, err
	}
	recorder.ObserveStage(metrics.StageLabel, time.Since(stageStart))
	recorder.ObserveLabels(len(labeled))

	stageStart = time.Now()
	w := writer.New(s.fs, cfg.OutputPath, logger)
	if err := w.Write(labeled); err != nil {
		return nil, err
	}
	recorder.ObserveStage(metrics.StageWrite, time.Since(stageStart))

	return &labeltypes.RunResult{
		Scanned:       len(records),
		Uploaded:      len(syncResult.Uploaded),
		Skipped:       len(syncResult.Skipped),
		Labeled:       len(labeled),
		BytesUploaded: syncResult.BytesUploaded,
		OutputPath:    w.Path(),
	}, nil
}

// exportMetrics writes the run metrics when a textfile is configured.
// A failed export is logged and does not fail the run.
func (s *Syncer) exportMetrics(logger *slog.Logger, recorder *metrics.Recorder) {
	if s.metricsTextfile == "" {
		return
	}
	if err := recorder.WriteTextfile(s.metricsTextfile); err != nil {
		logger.Warn("failed to write metrics", "path", s.metricsTextfile, "error", err)
	}
}
