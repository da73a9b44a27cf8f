// Package labeltypes provides shared type definitions for the labelsync module.
package labeltypes

import (
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-git/go-billy/v5"
)

// ImageRecord identifies one entry of the local image directory.
type ImageRecord struct {
	// ID is the lower-cased base name of the file; it is also the object key.
	ID string

	// Filename is the local path of the file.
	Filename string
}

// ObjectKeySet is the set of object keys already present in the bucket.
// It is produced once per run and only read afterwards.
type ObjectKeySet map[string]struct{}

// NewObjectKeySet builds a set from a list of keys.
func NewObjectKeySet(keys ...string) ObjectKeySet {
	set := make(ObjectKeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s ObjectKeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys.
func (s ObjectKeySet) Len() int {
	return len(s)
}

// Keys returns the keys in lexical order.
func (s ObjectKeySet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LabeledImage is one element of the labels document.
type LabeledImage struct {
	Filename string   `json:"filename"`
	ID       string   `json:"id"`
	Labels   []string `json:"labels"`
}

// SyncResult contains the outcome of the upload stage.
type SyncResult struct {
	// Uploaded lists the keys that were put into the bucket, in input order
	Uploaded []string

	// Skipped lists the keys that were already present, in input order
	Skipped []string

	// BytesUploaded is the total size of all uploaded images
	BytesUploaded int64

	// Duration is how long the stage took
	Duration time.Duration
}

// RunResult summarises a complete run.
type RunResult struct {
	RunID         string
	Scanned       int
	Uploaded      int
	Skipped       int
	Labeled       int
	BytesUploaded int64
	OutputPath    string
	Duration      time.Duration
}

// ClientConfig holds the settings applied by Option values.
type ClientConfig struct {
	// Logger receives structured run events
	Logger *slog.Logger

	// Filesystem is used for scanning, reading images and writing output
	Filesystem billy.Filesystem

	// CustomAWSConfig replaces loading the default AWS configuration
	CustomAWSConfig *aws.Config

	// Endpoint overrides the service endpoints (LocalStack, S3-compatible stores)
	Endpoint string

	// Region is used for the SDK when the ambient configuration has none
	Region string

	// MaxRetries overrides the SDK retry attempts when positive
	MaxRetries int

	// MetricsTextfile is where run metrics are written; empty disables it
	MetricsTextfile string
}

// Option configures a Syncer.
type Option func(*ClientConfig)
