//go:build integration
// +build integration

package labelsync_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/config"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/testutil"
)

// TestIntegrationRun runs the pipeline against LocalStack S3 with a mocked recognizer.
func TestIntegrationRun(t *testing.T) {
	ctx := context.Background()
	container, cleanup := testutil.SetupLocalStackTest(t)
	defer cleanup()

	s3Client, err := container.S3Client(ctx)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Bucket = testutil.GenerateTestBucketName("labelsync-it")
	cfg.Region = container.Region()

	fs := testutil.NewImageFS(t, cfg.ImageDir, "beach.jpg", "Forest.JPG")
	recognizer := testutil.NewStaticRecognizer(map[string][]string{
		"beach.jpg":  {"Sand", "Sea"},
		"forest.jpg": {"Tree"},
	})

	syncer, err := labelsync.NewWithClients(s3Client, recognizer, cfg, labelsync.WithFilesystem(fs))
	require.NoError(t, err)

	t.Run("first run creates bucket and uploads", func(t *testing.T) {
		result, err := syncer.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Uploaded)
		assert.Equal(t, 0, result.Skipped)

		out, err := s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(cfg.Bucket)})
		require.NoError(t, err)

		var keys []string
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		assert.ElementsMatch(t, []string{"beach.jpg", "forest.jpg"}, keys)

		head, err := s3Client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(cfg.Bucket),
			Key:    aws.String("beach.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", aws.ToString(head.ContentType))
	})

	t.Run("second run skips everything", func(t *testing.T) {
		result, err := syncer.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Uploaded)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, 2, result.Labeled)

		data, err := util.ReadFile(fs, cfg.OutputPath)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"filename":"Forest.JPG","id":"forest.jpg","labels":["Tree"]},
			{"filename":"beach.jpg","id":"beach.jpg","labels":["Sand","Sea"]}
		]`, string(data))
	})
}

// TestIntegrationNew checks that New wires the endpoint override into the S3 client.
func TestIntegrationNew(t *testing.T) {
	ctx := context.Background()
	container, cleanup := testutil.SetupLocalStackTest(t)
	defer cleanup()

	awsCfg, err := container.AWSConfig(ctx)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Bucket = testutil.GenerateTestBucketName("labelsync-new")
	cfg.ImageDir = t.TempDir()
	cfg.OutputPath = filepath.Join(t.TempDir(), "labels.json")

	syncer, err := labelsync.New(ctx, cfg,
		labelsync.WithAWSConfig(&awsCfg),
		labelsync.WithEndpoint(container.Endpoint()),
	)
	require.NoError(t, err)

	// An empty directory never reaches the recognition service.
	result, err := syncer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)

	s3Client, err := container.S3Client(ctx)
	require.NoError(t, err)
	_, err = s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)})
	assert.NoError(t, err)
}

// TestIntegrationExistingBucket checks that keys already in the bucket are not uploaded again.
func TestIntegrationExistingBucket(t *testing.T) {
	ctx := context.Background()
	container, cleanup := testutil.SetupLocalStackTest(t)
	defer cleanup()

	s3Client, err := container.S3Client(ctx)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Bucket = testutil.GenerateTestBucketName("labelsync-seeded")
	require.NoError(t, testutil.SeedBucket(ctx, s3Client, cfg.Bucket, "old.jpg"))

	fs := testutil.NewImageFS(t, cfg.ImageDir, "old.jpg", "new.jpg")
	syncer, err := labelsync.NewWithClients(s3Client, testutil.NewStaticRecognizer(nil), cfg,
		labelsync.WithFilesystem(fs),
	)
	require.NoError(t, err)

	result, err := syncer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Labeled)
}
