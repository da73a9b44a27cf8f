package testutil

import (
	"context"
	"path"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// JPEGHeader is the start of a JFIF file; enough for content sniffing.
var JPEGHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

// PNGHeader is the PNG file signature.
var PNGHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// NewImageFS creates an in-memory filesystem with one JPEG-looking file per name
// inside dir.
func NewImageFS(t *testing.T, dir string, names ...string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		WriteImage(t, fs, path.Join(dir, name), JPEGHeader)
	}
	return fs
}

// WriteImage writes data to name in fs.
func WriteImage(t *testing.T, fs billy.Filesystem, name string, data []byte) {
	t.Helper()

	if err := util.WriteFile(fs, name, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// Label builds a recognition label.
func Label(name string, confidence float32) rektypes.Label {
	return rektypes.Label{Name: aws.String(name), Confidence: aws.Float32(confidence)}
}

// LabelsOutput builds a DetectLabels response with the given labels.
func LabelsOutput(labels ...rektypes.Label) *rekognition.DetectLabelsOutput {
	return &rekognition.DetectLabelsOutput{Labels: labels}
}

// NewStaticRecognizer returns a recognition mock answering from a key -> label
// names table. Keys missing from the table get an empty label list.
func NewStaticRecognizer(table map[string][]string) *MockRekognitionClient {
	return &MockRekognitionClient{
		DetectLabelsFunc: func(
			_ context.Context,
			params *rekognition.DetectLabelsInput,
			_ ...func(*rekognition.Options),
		) (*rekognition.DetectLabelsOutput, error) {
			out := &rekognition.DetectLabelsOutput{}
			for _, name := range table[aws.ToString(params.Image.S3Object.Name)] {
				out.Labels = append(out.Labels, Label(name, 90))
			}
			return out, nil
		},
	}
}
