package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/validation"
)

// Validate checks every field and reports all problems at once.
// Each problem is an INVALID_CONFIGURATION error naming its field.
func (c Config) Validate() error {
	var problems []error

	check := func(field string, err error) {
		if err != nil {
			problems = append(problems, errors.NewConfigError(field, err))
		}
	}

	check("ImageDir", requireValue(c.ImageDir))
	check("OutputPath", requireValue(c.OutputPath))
	check("Bucket", validation.ValidateBucketName(c.Bucket))
	check("Region", validation.ValidateRegion(c.Region))
	check("ACL", validation.ValidateACL(c.ACL))
	check("MaxKeys", validation.ValidateMaxKeys(c.MaxKeys))
	check("MaxLabels", validation.ValidateLabelParams(c.MaxLabels, DefaultMinConfidence))
	check("MinConfidence", validation.ValidateLabelParams(DefaultMaxLabels, c.MinConfidence))
	check("Concurrency", validateConcurrency(c.Concurrency))
	check("Endpoint", validateEndpoint(c.Endpoint))
	check("LogLevel", validateLogLevel(c.LogLevel))

	return stderrors.Join(problems...)
}

// SlogLevel maps LogLevel onto a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func requireValue(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: value cannot be empty", errors.ErrInvalidInput)
	}
	return nil
}

func validateConcurrency(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: concurrency cannot be negative, got %d", errors.ErrInvalidInput, n)
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: endpoint %q must use http or https", errors.ErrInvalidInput, endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: endpoint %q has no host", errors.ErrInvalidInput, endpoint)
	}
	return nil
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("%w: log level must be one of: debug, info, warn, error", errors.ErrInvalidInput)
}
