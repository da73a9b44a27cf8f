package uploader

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/pool"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// Config holds configuration for the upload stage.
type Config struct {
	// Bucket is the destination bucket
	Bucket string

	// Concurrency caps in-flight uploads; zero or negative means no limit
	Concurrency int
}

// Uploader reads local images and puts them into the bucket.
type Uploader struct {
	s3Client   s3api.S3API
	filesystem billy.Filesystem
	config     Config
	logger     *slog.Logger
}

// New creates a new Uploader.
func New(s3Client s3api.S3API, filesystem billy.Filesystem, config Config, logger *slog.Logger) *Uploader {
	return &Uploader{
		s3Client:   s3Client,
		filesystem: filesystem,
		config:     config,
		logger:     logger,
	}
}

type outcome struct {
	skipped bool
	size    int64
}

// Sync uploads every record whose ID is not in existing. Records already present
// are skipped and count as success. The result lists keys in input order.
func (u *Uploader) Sync(
	ctx context.Context,
	records []labeltypes.ImageRecord,
	existing labeltypes.ObjectKeySet,
) (*labeltypes.SyncResult, error) {
	startTime := time.Now()
	outcomes := make([]outcome, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Limit(u.config.Concurrency))

	for i, rec := range records {
		if existing.Has(rec.ID) {
			u.logger.Info("image already exists", "id", rec.ID)
			outcomes[i] = outcome{skipped: true}
			continue
		}

		g.Go(func() error {
			size, err := u.upload(gctx, rec)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{size: size}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &labeltypes.SyncResult{
		Uploaded: []string{},
		Skipped:  []string{},
	}
	for i, o := range outcomes {
		if o.skipped {
			result.Skipped = append(result.Skipped, records[i].ID)
			continue
		}
		result.Uploaded = append(result.Uploaded, records[i].ID)
		result.BytesUploaded += o.size
	}
	result.Duration = time.Since(startTime)

	return result, nil
}

// upload reads one image fully into memory and puts it under its ID.
func (u *Uploader) upload(ctx context.Context, rec labeltypes.ImageRecord) (int64, error) {
	bucket := u.config.Bucket

	if err := ctx.Err(); err != nil {
		return 0, errors.NewUploadError("putObject", bucket, rec.ID, rec.Filename, err)
	}

	if err := validation.ValidateObjectKey(rec.ID); err != nil {
		return 0, errors.NewUploadError("putObject", bucket, rec.ID, rec.Filename, err)
	}

	u.logger.Debug("reading image", "path", rec.Filename)
	data, err := util.ReadFile(u.filesystem, rec.Filename)
	if err != nil {
		u.logger.Error("failed to read image", "path", rec.Filename, "error", err)
		return 0, errors.NewUploadError("readImage", bucket, rec.ID, rec.Filename, err)
	}

	size := int64(len(data))
	u.logger.Info("read image", "path", rec.Filename, "kb", float64(size)/1024)

	_, err = u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(rec.ID),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mimetype.Detect(data).String()),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		u.logger.Error("failed to upload image", "id", rec.ID, "bucket", bucket, "error", err)
		return 0, errors.NewUploadError("putObject", bucket, rec.ID, rec.Filename, errors.FromAWS(err))
	}

	u.logger.Info("uploaded image", "id", rec.ID, "bucket", bucket, "bytes", size)
	return size, nil
}
