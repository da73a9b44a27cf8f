package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
)

// Load returns Default overridden by the environment.
//
// Variables from the given .env files (or ".env" when none are given) are
// added to the process environment first; a missing file is not an error and
// variables already set in the environment win. The result is not validated.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies overrides read through lookup on top of Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	setString(lookup, EnvImageDir, &cfg.ImageDir)
	setString(lookup, EnvOutputPath, &cfg.OutputPath)
	setString(lookup, EnvBucket, &cfg.Bucket)
	setString(lookup, EnvRegion, &cfg.Region)
	setString(lookup, EnvACL, &cfg.ACL)
	setString(lookup, EnvEndpoint, &cfg.Endpoint)
	setString(lookup, EnvMetricsTextfile, &cfg.MetricsTextfile)
	setString(lookup, EnvLogLevel, &cfg.LogLevel)

	if v, ok := lookup(EnvMaxKeys); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return Config{}, errors.NewConfigError(EnvMaxKeys, err)
		}
		cfg.MaxKeys = int32(n)
	}

	if v, ok := lookup(EnvMaxLabels); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return Config{}, errors.NewConfigError(EnvMaxLabels, err)
		}
		cfg.MaxLabels = int32(n)
	}

	if v, ok := lookup(EnvMinConfidence); ok && v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return Config{}, errors.NewConfigError(EnvMinConfidence, err)
		}
		cfg.MinConfidence = float32(f)
	}

	if v, ok := lookup(EnvConcurrency); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.NewConfigError(EnvConcurrency, err)
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}

func setString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok && v != "" {
		*dst = v
	}
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.NewConfigError("envFile", fmt.Errorf("stat %s: %w", f, err))
		}
		if err := godotenv.Load(f); err != nil {
			return errors.NewConfigError("envFile", fmt.Errorf("load %s: %w", f, err))
		}
	}
	return nil
}
