package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bucket and key",
			err:  NewUploadError("putObject", "photos", "cat.jpg", "", base),
			want: "UPLOAD_ERROR: putObject photos/cat.jpg: boom",
		},
		{
			name: "bucket only",
			err:  NewProvisionError("createBucket", "photos", base),
			want: "PROVISION_ERROR: createBucket bucket photos: boom",
		},
		{
			name: "path only",
			err:  NewScanError("/srv/photos", base),
			want: "SCAN_ERROR: readDir /srv/photos: boom",
		},
		{
			name: "no context",
			err:  NewConfigError("bucket", base),
			want: "INVALID_CONFIGURATION: validate bucket: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_UnwrapAndKind(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("run: %w", NewWriteError("labels.json", base))

	assert.ErrorIs(t, err, base)
	assert.True(t, IsWriteError(err))
	assert.False(t, IsUploadError(err))
	assert.Equal(t, KindWrite, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(base))
}

func TestError_WithMessage(t *testing.T) {
	base := errors.New("bad")
	err := NewUploadError("readImage", "", "a.jpg", "/tmp/a.jpg", base).WithMessage("read failed")

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "read failed: bad")
}

func TestKindPredicates(t *testing.T) {
	base := errors.New("x")

	assert.True(t, IsScanError(NewScanError("d", base)))
	assert.True(t, IsProvisionError(NewProvisionError("listBuckets", "b", base)))
	assert.True(t, IsUploadError(NewUploadError("putObject", "b", "k", "", base)))
	assert.True(t, IsRecognitionError(NewRecognitionError("b", "k", base)))
	assert.True(t, IsWriteError(NewWriteError("p", base)))
	assert.True(t, IsConfigError(NewConfigError("f", base)))
}

func TestFromAWS(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "typed bucket already exists",
			err:      &types.BucketAlreadyExists{},
			sentinel: ErrBucketAlreadyExists,
		},
		{
			name:     "typed bucket already owned",
			err:      &types.BucketAlreadyOwnedByYou{},
			sentinel: ErrBucketAlreadyExists,
		},
		{
			name:     "typed no such bucket",
			err:      &types.NoSuchBucket{},
			sentinel: ErrBucketNotFound,
		},
		{
			name:     "access denied code",
			err:      &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"},
			sentinel: ErrAccessDenied,
		},
		{
			name:     "rekognition access denied",
			err:      &smithy.GenericAPIError{Code: "AccessDeniedException"},
			sentinel: ErrAccessDenied,
		},
		{
			name:     "invalid image format",
			err:      &smithy.GenericAPIError{Code: "InvalidImageFormatException"},
			sentinel: ErrInvalidImage,
		},
		{
			name:     "throttling",
			err:      &smithy.GenericAPIError{Code: "ThrottlingException"},
			sentinel: ErrThrottled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAWS(tt.err)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("unknown error passes through", func(t *testing.T) {
		base := errors.New("connection reset")
		assert.Same(t, base, FromAWS(base))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, FromAWS(nil))
	})

	t.Run("access denied helper", func(t *testing.T) {
		assert.True(t, IsAccessDenied(FromAWS(&smithy.GenericAPIError{Code: "AccessDenied"})))
	})
}
