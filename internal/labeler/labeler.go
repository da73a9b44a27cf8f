// Package labeler requests recognition labels for images stored in the bucket.
package labeler

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/pool"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/rekognitionapi"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// Config holds configuration for the labeling stage.
type Config struct {
	Bucket        string
	MaxLabels     int32
	MinConfidence float32

	// Concurrency caps in-flight requests; zero or negative means no limit
	Concurrency int
}

// Labeler fetches labels for every image record.
type Labeler struct {
	client rekognitionapi.RekognitionAPI
	config Config
	logger *slog.Logger
}

// New creates a new Labeler. The label parameters are sent as configured.
func New(client rekognitionapi.RekognitionAPI, config Config, logger *slog.Logger) *Labeler {
	return &Labeler{client: client, config: config, logger: logger}
}

// Label detects labels for each record and returns one LabeledImage per record
// in input order. Any single failure aborts the stage and nothing is returned.
func (l *Labeler) Label(ctx context.Context, records []labeltypes.ImageRecord) ([]labeltypes.LabeledImage, error) {
	labeled := make([]labeltypes.LabeledImage, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Limit(l.config.Concurrency))

	for i, rec := range records {
		g.Go(func() error {
			names, err := l.detect(gctx, rec.ID)
			if err != nil {
				return err
			}
			labeled[i] = labeltypes.LabeledImage{
				Filename: path.Base(rec.Filename),
				ID:       rec.ID,
				Labels:   names,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labeled, nil
}

func (l *Labeler) detect(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewRecognitionError(l.config.Bucket, key, err)
	}

	out, err := l.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(l.config.Bucket),
				Name:   aws.String(key),
			},
		},
		MaxLabels:     aws.Int32(l.config.MaxLabels),
		MinConfidence: aws.Float32(l.config.MinConfidence),
	})
	if err != nil {
		l.logger.Error("failed to detect labels", "id", key, "bucket", l.config.Bucket, "error", err)
		return nil, errors.NewRecognitionError(l.config.Bucket, key, errors.FromAWS(err))
	}

	names := LabelNames(out.Labels)
	l.logger.Info("detected labels", "id", key, "labels", strings.Join(names, ", "))
	return names, nil
}

// LabelNames keeps only the label names, in the order the service returned them.
// The result is never nil so it encodes as an empty JSON array.
func LabelNames(labels []types.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, aws.ToString(label.Name))
	}
	return names
}
