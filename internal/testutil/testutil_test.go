package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_BucketLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	out, err := store.ListBuckets(ctx, &s3.ListBucketsInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Buckets)

	_, err = store.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String("photos")})
	require.NoError(t, err)
	assert.Equal(t, 1, store.CreateBucketCalls)

	_, err = store.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String("photos")})
	assert.Error(t, err)

	_, err = store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String("photos"),
		Key:         aws.String("cat.jpg"),
		Body:        bytes.NewReader(JPEGHeader),
		ContentType: aws.String("image/jpeg"),
	})
	require.NoError(t, err)

	data, contentType, ok := store.Object("photos", "cat.jpg")
	require.True(t, ok)
	assert.Equal(t, JPEGHeader, data)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []string{"cat.jpg"}, store.PutKeys)
}

func TestMemoryStore_ListObjectsTruncates(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("photos", "c.jpg", "a.jpg", "b.jpg")

	out, err := store.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{
		Bucket:  aws.String("photos"),
		MaxKeys: aws.Int32(2),
	})
	require.NoError(t, err)
	require.Len(t, out.Contents, 2)
	assert.Equal(t, "a.jpg", aws.ToString(out.Contents[0].Key))
	assert.Equal(t, "b.jpg", aws.ToString(out.Contents[1].Key))
	assert.True(t, aws.ToBool(out.IsTruncated))
}

func TestMemoryStore_MissingBucket(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{Bucket: aws.String("nope")})
	assert.Error(t, err)

	_, err = store.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String("nope"),
		Key:    aws.String("k"),
	})
	assert.Error(t, err)
}

func TestNewStaticRecognizer(t *testing.T) {
	rec := NewStaticRecognizer(map[string][]string{"cat.jpg": {"Cat", "Pet"}})

	out, err := rec.DetectLabels(context.Background(), &rekognition.DetectLabelsInput{
		Image: &rektypes.Image{S3Object: &rektypes.S3Object{Bucket: aws.String("b"), Name: aws.String("cat.jpg")}},
	})
	require.NoError(t, err)
	require.Len(t, out.Labels, 2)
	assert.Equal(t, "Cat", aws.ToString(out.Labels[0].Name))

	out, err = rec.DetectLabels(context.Background(), &rekognition.DetectLabelsInput{
		Image: &rektypes.Image{S3Object: &rektypes.S3Object{Bucket: aws.String("b"), Name: aws.String("dog.jpg")}},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Labels)
}

func TestNewImageFS(t *testing.T) {
	fs := NewImageFS(t, "photos", "a.jpg", "b.jpg")

	entries, err := fs.ReadDir("photos")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
