package labelsync

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// WithLogger sets the logger receiving run events.
// A nil logger discards all output.
func WithLogger(logger *slog.Logger) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets the filesystem used for scanning images and writing the
// labels document. Paths from the configuration are used unchanged on it.
// If not specified, the OS filesystem is used and relative paths are resolved
// against the working directory.
func WithFilesystem(filesystem billy.Filesystem) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithAWSConfig provides a custom AWS configuration instead of loading the
// default credential chain.
func WithAWSConfig(config *aws.Config) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithEndpoint sets a custom endpoint for both S3 and Rekognition.
// This is useful for local testing with LocalStack. S3 requests use path-style
// addressing when an endpoint is set.
func WithEndpoint(endpoint string) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithRegion sets the SDK region, overriding the ambient configuration.
func WithRegion(region string) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.Region = region
	}
}

// WithMaxRetries sets the maximum SDK attempts per request.
// Zero keeps the SDK default.
func WithMaxRetries(maxRetries int) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithMetricsTextfile enables writing run metrics to filename in the
// Prometheus textfile format.
func WithMetricsTextfile(filename string) labeltypes.Option {
	return func(c *labeltypes.ClientConfig) {
		c.MetricsTextfile = filename
	}
}
