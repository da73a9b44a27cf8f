// Package provisioner makes sure the image bucket exists and reports the
// object keys it already holds.
package provisioner

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// regionWithoutConstraint is the one region S3 rejects as an explicit location constraint.
const regionWithoutConstraint = "us-east-1"

// Config holds the bucket settings used by the provisioner.
type Config struct {
	// Bucket is the bucket name
	Bucket string

	// Region is the location constraint used when the bucket is created
	Region string

	// ACL is the canned ACL applied when the bucket is created
	ACL string

	// MaxKeys is the size of the single object listing page
	MaxKeys int32
}

// Provisioner ensures the bucket exists.
type Provisioner struct {
	s3Client s3api.S3API
	config   Config
	logger   *slog.Logger
}

// New creates a new Provisioner.
func New(s3Client s3api.S3API, config Config, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		s3Client: s3Client,
		config:   config,
		logger:   logger,
	}
}

// Ensure returns the object keys present in the configured bucket, creating
// the bucket first when it does not exist. A newly created bucket yields an
// empty set without being listed.
//
// Only a single listing page of at most MaxKeys objects is read. Objects beyond
// that page are not part of the returned set.
func (p *Provisioner) Ensure(ctx context.Context) (labeltypes.ObjectKeySet, error) {
	exists, err := p.bucketExists(ctx)
	if err != nil {
		return nil, err
	}

	if exists {
		p.logger.Info("bucket exists", "bucket", p.config.Bucket)
		return p.listKeys(ctx)
	}

	if err := p.createBucket(ctx); err != nil {
		return nil, err
	}
	return labeltypes.NewObjectKeySet(), nil
}

func (p *Provisioner) bucketExists(ctx context.Context) (bool, error) {
	out, err := p.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		p.logger.Error("failed to list buckets", "error", err)
		return false, errors.NewProvisionError("listBuckets", p.config.Bucket, errors.FromAWS(err))
	}

	p.logger.Info("listed buckets", "count", len(out.Buckets))
	for _, b := range out.Buckets {
		if aws.ToString(b.Name) == p.config.Bucket {
			return true, nil
		}
	}
	return false, nil
}

func (p *Provisioner) createBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(p.config.Bucket),
		ACL:    types.BucketCannedACL(p.config.ACL),
	}

	if p.config.Region != "" && p.config.Region != regionWithoutConstraint {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(p.config.Region),
		}
	}

	if _, err := p.s3Client.CreateBucket(ctx, input); err != nil {
		p.logger.Error("failed to create bucket", "bucket", p.config.Bucket, "error", err)
		return errors.NewProvisionError("createBucket", p.config.Bucket, errors.FromAWS(err))
	}

	p.logger.Info("created bucket", "bucket", p.config.Bucket, "region", p.config.Region)
	return nil
}

func (p *Provisioner) listKeys(ctx context.Context) (labeltypes.ObjectKeySet, error) {
	out, err := p.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.config.Bucket),
		MaxKeys: aws.Int32(p.config.MaxKeys),
	})
	if err != nil {
		p.logger.Error("failed to list objects", "bucket", p.config.Bucket, "error", err)
		return nil, errors.NewProvisionError("listObjects", p.config.Bucket, errors.FromAWS(err))
	}

	keys := labeltypes.NewObjectKeySet()
	for _, obj := range out.Contents {
		keys[aws.ToString(obj.Key)] = struct{}{}
	}

	if aws.ToBool(out.IsTruncated) {
		p.logger.Warn("object listing truncated; keys beyond the first page are not compared",
			"bucket", p.config.Bucket, "max_keys", p.config.MaxKeys)
	}

	p.logger.Debug("listed objects", "bucket", p.config.Bucket, "keys", keys.Len())
	return keys, nil
}
