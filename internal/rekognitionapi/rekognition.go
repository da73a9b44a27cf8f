// Package rekognitionapi defines the label recognition operations used by this module.
package rekognitionapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// RekognitionAPI defines the interface for Rekognition operations used by this module.
type RekognitionAPI interface {
	// DetectLabels detects labels in an image stored in S3
	DetectLabels(
		ctx context.Context,
		params *rekognition.DetectLabelsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectLabelsOutput, error)
}

var _ RekognitionAPI = (*rekognition.Client)(nil)
