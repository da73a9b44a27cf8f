package labelsync

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/config"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/rekognitionapi"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// Syncer runs the upload and labeling pipeline.
type Syncer struct {
	// s3Client is the object store the images are uploaded to
	s3Client s3api.S3API

	// recognizer detects labels on stored images
	recognizer rekognitionapi.RekognitionAPI

	// config is the validated run configuration with paths resolved for fs
	config config.Config

	// fs is used for reading images and writing the labels document
	fs billy.Filesystem

	logger          *slog.Logger
	metricsTextfile string
}

// New creates a Syncer backed by real AWS clients.
// Credentials are resolved with the default AWS credential chain; when it
// yields no region, cfg.Region is used.
//
// Example:
//
//	syncer, err := labelsync.New(ctx, config.Default(),
//	    labelsync.WithEndpoint("http://localhost:4566"),
//	)
func New(ctx context.Context, cfg config.Config, opts ...labeltypes.Option) (*Syncer, error) {
	clientCfg := applyOptions(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var awsCfg aws.Config
	if clientCfg.CustomAWSConfig != nil {
		awsCfg = *clientCfg.CustomAWSConfig
	} else {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewConfigError("aws", err)
		}
	}

	if clientCfg.Region != "" {
		awsCfg.Region = clientCfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = cfg.Region
	}

	if clientCfg.MaxRetries > 0 {
		awsCfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)
	var rekOpts []func(*rekognition.Options)
	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
		rekOpts = append(rekOpts, func(o *rekognition.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return newSyncer(
		s3.NewFromConfig(awsCfg, s3Opts...),
		rekognition.NewFromConfig(awsCfg, rekOpts...),
		cfg,
		clientCfg,
	)
}

// NewWithClients creates a Syncer with caller-provided clients.
// This is primarily used for testing with mocked clients.
func NewWithClients(
	s3Client s3api.S3API,
	recognizer rekognitionapi.RekognitionAPI,
	cfg config.Config,
	opts ...labeltypes.Option,
) (*Syncer, error) {
	clientCfg := applyOptions(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSyncer(s3Client, recognizer, cfg, clientCfg)
}

// Config returns the configuration the Syncer runs with.
func (s *Syncer) Config() config.Config {
	return s.config
}

func applyOptions(cfg config.Config, opts []labeltypes.Option) *labeltypes.ClientConfig {
	clientCfg := &labeltypes.ClientConfig{
		Endpoint:        cfg.Endpoint,
		MetricsTextfile: cfg.MetricsTextfile,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}
	return clientCfg
}

func newSyncer(
	s3Client s3api.S3API,
	recognizer rekognitionapi.RekognitionAPI,
	cfg config.Config,
	clientCfg *labeltypes.ClientConfig,
) (*Syncer, error) {
	logger := clientCfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Default to the OS filesystem rooted at /, which needs absolute paths.
	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		filesystem = osfs.New("/")

		var err error
		if cfg.ImageDir, err = filepath.Abs(cfg.ImageDir); err != nil {
			return nil, errors.NewConfigError("ImageDir", err)
		}
		if cfg.OutputPath, err = filepath.Abs(cfg.OutputPath); err != nil {
			return nil, errors.NewConfigError("OutputPath", err)
		}
	}

	return &Syncer{
		s3Client:        s3Client,
		recognizer:      recognizer,
		config:          cfg,
		fs:              filesystem,
		logger:          logger,
		metricsTextfile: clientCfg.MetricsTextfile,
	}, nil
}
