// Package writer persists the labels document.
//
// The document is written to a temporary file next to the destination and
// renamed into place, so readers never observe a partially written file.
package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// outputMode is the permission of the labels document; the gallery is
// usually served by another user.
const outputMode = 0o644

// Writer writes labeled images as a JSON array to a fixed path.
type Writer struct {
	filesystem billy.Filesystem
	path       string
	logger     *slog.Logger
}

// New creates a Writer targeting outputPath on filesystem.
func New(filesystem billy.Filesystem, outputPath string, logger *slog.Logger) *Writer {
	return &Writer{filesystem: filesystem, path: outputPath, logger: logger}
}

// Path returns the destination path.
func (w *Writer) Path() string {
	return w.path
}

// Write replaces the destination with the encoded document.
func (w *Writer) Write(labeled []labeltypes.LabeledImage) (err error) {
	if labeled == nil {
		labeled = []labeltypes.LabeledImage{}
	}

	data, err := json.Marshal(labeled)
	if err != nil {
		return errors.NewWriteError(w.path, fmt.Errorf("encode labels: %w", err))
	}

	dir := path.Dir(w.path)
	if err := w.filesystem.MkdirAll(dir, 0o755); err != nil {
		return errors.NewWriteError(w.path, fmt.Errorf("create directory %s: %w", dir, err))
	}

	tmp, err := w.filesystem.TempFile(dir, ".labels-*.json")
	if err != nil {
		return errors.NewWriteError(w.path, fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = w.filesystem.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.NewWriteError(w.path, fmt.Errorf("write temp file: %w", err))
	}
	if err = tmp.Close(); err != nil {
		return errors.NewWriteError(w.path, fmt.Errorf("close temp file: %w", err))
	}
	if change, ok := w.filesystem.(billy.Change); ok {
		if err = change.Chmod(tmpName, outputMode); err != nil {
			return errors.NewWriteError(w.path, fmt.Errorf("chmod temp file: %w", err))
		}
	}
	if err = w.filesystem.Rename(tmpName, w.path); err != nil {
		return errors.NewWriteError(w.path, fmt.Errorf("rename into place: %w", err))
	}

	w.logger.Info("wrote labels", "path", w.path, "images", len(labeled), "bytes", len(data))
	return nil
}
