package errors

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// AWS error code constants
const (
	codeAccessDenied          = "AccessDenied"
	codeAccessDeniedException = "AccessDeniedException"
	codeNoSuchBucket          = "NoSuchBucket"
	codeBucketAlreadyExists   = "BucketAlreadyExists"
	codeBucketAlreadyOwned    = "BucketAlreadyOwnedByYou"
	codeInvalidImageFormat    = "InvalidImageFormatException"
	codeImageTooLarge         = "ImageTooLargeException"
	codeInvalidS3Object       = "InvalidS3ObjectException"
	codeThrottling            = "ThrottlingException"
	codeThroughputExceeded    = "ProvisionedThroughputExceededException"
	codeSlowDown              = "SlowDown"
)

// FromAWS classifies an AWS SDK error. When the error maps to a known cause the
// returned error matches both the sentinel and the original error with errors.Is
// and errors.As; otherwise err is returned unchanged.
func FromAWS(err error) error {
	if err == nil {
		return nil
	}

	if sentinel := classify(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func classify(err error) error {
	var bucketAlreadyExists *types.BucketAlreadyExists
	if errors.As(err, &bucketAlreadyExists) {
		return ErrBucketAlreadyExists
	}

	var bucketAlreadyOwned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &bucketAlreadyOwned) {
		return ErrBucketAlreadyExists
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	switch apiErr.ErrorCode() {
	case codeAccessDenied, codeAccessDeniedException:
		return ErrAccessDenied
	case codeNoSuchBucket:
		return ErrBucketNotFound
	case codeBucketAlreadyExists, codeBucketAlreadyOwned:
		return ErrBucketAlreadyExists
	case codeInvalidImageFormat, codeImageTooLarge, codeInvalidS3Object:
		return ErrInvalidImage
	case codeThrottling, codeThroughputExceeded, codeSlowDown:
		return ErrThrottled
	}
	return nil
}
