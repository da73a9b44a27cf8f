// Package config provides the run configuration for labelsync.
//
// Defaults describe the demo gallery layout: photos under client/photos, the
// labels document at client/labels.json and the rekognition-demo-1 bucket in
// us-west-2. Every field can be overridden through the environment or an
// optional .env file.
//
// # Basic Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests and embedders usually start from Default and adjust fields:
//
//	cfg := config.Default()
//	cfg.ImageDir = "testdata/photos"
package config

// Default values.
const (
	DefaultImageDir      = "client/photos"
	DefaultOutputPath    = "client/labels.json"
	DefaultBucket        = "rekognition-demo-1"
	DefaultRegion        = "us-west-2"
	DefaultACL           = "private"
	DefaultMaxKeys       = 1000
	DefaultMaxLabels     = 24
	DefaultMinConfidence = 60
	DefaultLogLevel      = "info"
)

// Environment variable names.
const (
	EnvImageDir        = "LABELSYNC_IMAGE_DIR"
	EnvOutputPath      = "LABELSYNC_OUTPUT_PATH"
	EnvBucket          = "LABELSYNC_BUCKET"
	EnvRegion          = "LABELSYNC_REGION"
	EnvACL             = "LABELSYNC_ACL"
	EnvMaxKeys         = "LABELSYNC_MAX_KEYS"
	EnvMaxLabels       = "LABELSYNC_MAX_LABELS"
	EnvMinConfidence   = "LABELSYNC_MIN_CONFIDENCE"
	EnvConcurrency     = "LABELSYNC_CONCURRENCY"
	EnvEndpoint        = "LABELSYNC_ENDPOINT"
	EnvMetricsTextfile = "LABELSYNC_METRICS_TEXTFILE"
	EnvLogLevel        = "LABELSYNC_LOG_LEVEL"
)

// Config is the complete configuration of one run.
type Config struct {
	// ImageDir is the directory whose top-level entries are synced
	ImageDir string

	// OutputPath is where the labels document is written
	OutputPath string

	// Bucket is the destination bucket; it is created when missing
	Bucket string

	// Region is the bucket location constraint and the fallback SDK region
	Region string

	// ACL is the canned ACL applied when the bucket is created
	ACL string

	// MaxKeys is the page size of the single existing-object listing
	MaxKeys int32

	// MaxLabels caps the labels returned per image
	MaxLabels int32

	// MinConfidence is the label confidence floor (0-100)
	MinConfidence float32

	// Concurrency caps each fan-out stage; 0 means unlimited
	Concurrency int

	// Endpoint overrides the AWS service endpoints
	Endpoint string

	// MetricsTextfile enables the Prometheus textfile export when set
	MetricsTextfile string

	// LogLevel is one of debug, info, warn, error
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ImageDir:      DefaultImageDir,
		OutputPath:    DefaultOutputPath,
		Bucket:        DefaultBucket,
		Region:        DefaultRegion,
		ACL:           DefaultACL,
		MaxKeys:       DefaultMaxKeys,
		MaxLabels:     DefaultMaxLabels,
		MinConfidence: DefaultMinConfidence,
		LogLevel:      DefaultLogLevel,
	}
}
