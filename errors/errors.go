package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed pipeline operation with the context needed to
// diagnose it. It wraps the underlying AWS SDK or filesystem error.
type Error struct {
	// Kind is the pipeline stage that failed
	Kind Kind

	// Op is the operation that failed (e.g., "listBuckets", "putObject", "detectLabels")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Path is the local filesystem path (if applicable)
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	switch {
	case e.Bucket != "" && e.Key != "":
		return fmt.Sprintf("%s: %s %s/%s: %v", e.Kind, e.Op, e.Bucket, e.Key, e.Err)
	case e.Bucket != "":
		return fmt.Sprintf("%s: %s bucket %s: %v", e.Kind, e.Op, e.Bucket, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %s object %s: %v", e.Kind, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewScanError reports that the image directory at path could not be read.
func NewScanError(path string, err error) *Error {
	return &Error{Kind: KindScan, Op: "readDir", Path: path, Err: err}
}

// NewProvisionError reports a failed bucket-level call.
func NewProvisionError(op, bucket string, err error) *Error {
	return &Error{Kind: KindProvision, Op: op, Bucket: bucket, Err: err}
}

// NewUploadError reports a failed read or put for a single image.
func NewUploadError(op, bucket, key, path string, err error) *Error {
	return &Error{Kind: KindUpload, Op: op, Bucket: bucket, Key: key, Path: path, Err: err}
}

// NewRecognitionError reports a failed detect-labels call for a single image.
func NewRecognitionError(bucket, key string, err error) *Error {
	return &Error{Kind: KindRecognition, Op: "detectLabels", Bucket: bucket, Key: key, Err: err}
}

// NewWriteError reports that the labels document at path could not be written.
func NewWriteError(path string, err error) *Error {
	return &Error{Kind: KindWrite, Op: "writeLabels", Path: path, Err: err}
}

// NewConfigError reports an invalid configuration field.
func NewConfigError(field string, err error) *Error {
	return &Error{Kind: KindConfig, Op: "validate " + field, Err: err}
}

// Sentinel errors for common failure causes.
// These can be used with errors.Is() for error checking.
var (
	// ErrBucketNotFound indicates that the bucket does not exist
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrBucketAlreadyExists indicates that the bucket name is taken
	ErrBucketAlreadyExists = errors.New("bucket already exists")

	// ErrAccessDenied indicates that the credentials lack permission
	ErrAccessDenied = errors.New("access denied")

	// ErrThrottled indicates that the service rejected the request rate
	ErrThrottled = errors.New("request throttled")

	// ErrInvalidImage indicates the recognition service could not process the object
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("invalid object key")
)

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsScanError checks if an error originated from scanning the image directory.
func IsScanError(err error) bool {
	return KindOf(err) == KindScan
}

// IsProvisionError checks if an error originated from bucket provisioning.
func IsProvisionError(err error) bool {
	return KindOf(err) == KindProvision
}

// IsUploadError checks if an error originated from reading or uploading an image.
func IsUploadError(err error) bool {
	return KindOf(err) == KindUpload
}

// IsRecognitionError checks if an error originated from label detection.
func IsRecognitionError(err error) bool {
	return KindOf(err) == KindRecognition
}

// IsWriteError checks if an error originated from writing the labels document.
func IsWriteError(err error) bool {
	return KindOf(err) == KindWrite
}

// IsConfigError checks if an error reports an invalid configuration.
func IsConfigError(err error) bool {
	return KindOf(err) == KindConfig
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
