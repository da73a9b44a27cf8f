// Package errors provides the error taxonomy for label synchronization runs.
// Every failure escalated by a pipeline stage carries a Kind identifying the
// stage, plus the bucket, key, or local path it concerns.
package errors

// Kind identifies the pipeline stage an error originated from.
// Kinds are string-based for debuggability and natural JSON serialization.
type Kind string

const (
	// KindScan indicates the local image directory could not be read.
	KindScan Kind = "SCAN_ERROR"

	// KindProvision indicates listing buckets, creating the bucket, or listing
	// its objects failed.
	KindProvision Kind = "PROVISION_ERROR"

	// KindUpload indicates reading a local image or putting it into the bucket failed.
	KindUpload Kind = "UPLOAD_ERROR"

	// KindRecognition indicates a detect-labels call failed for an image.
	KindRecognition Kind = "RECOGNITION_ERROR"

	// KindWrite indicates the labels document could not be written.
	KindWrite Kind = "WRITE_ERROR"

	// KindConfig indicates the run configuration is invalid.
	KindConfig Kind = "INVALID_CONFIGURATION"

	// KindUnknown is reported for errors that did not originate from this module.
	KindUnknown Kind = "UNKNOWN"
)

// String returns the kind code.
func (k Kind) String() string {
	return string(k)
}
