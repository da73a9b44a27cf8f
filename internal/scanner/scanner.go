// Package scanner builds the local image inventory.
//
// Every top-level entry of the image directory becomes one record; no
// filtering by file type is applied and subdirectories are not descended.
package scanner

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

// Scanner lists image directories on a filesystem.
type Scanner struct {
	filesystem billy.Filesystem
	logger     *slog.Logger
}

// NewScanner creates a new scanner over the provided filesystem.
func NewScanner(filesystem billy.Filesystem, logger *slog.Logger) *Scanner {
	return &Scanner{
		filesystem: filesystem,
		logger:     logger,
	}
}

// Scan returns one ImageRecord per entry of dir, in lexical name order.
// The record ID is the lower-cased base name and Filename is the entry path.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]labeltypes.ImageRecord, error) {
	s.logger.Info("reading images", "dir", dir)

	if err := ctx.Err(); err != nil {
		return nil, errors.NewScanError(dir, err)
	}

	entries, err := s.filesystem.ReadDir(dir)
	if err != nil {
		s.logger.Error("failed to read image directory", "dir", dir, "error", err)
		return nil, errors.NewScanError(dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	records := make([]labeltypes.ImageRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		records = append(records, labeltypes.ImageRecord{
			ID:       RecordID(name),
			Filename: path.Join(dir, name),
		})
	}

	s.logger.Debug("scanned image directory", "dir", dir, "images", len(records))
	return records, nil
}

// RecordID derives the object key for a local file name.
func RecordID(name string) string {
	return strings.ToLower(path.Base(name))
}
