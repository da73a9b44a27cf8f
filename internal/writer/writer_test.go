package writer

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lserrors "github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readDoc(t *testing.T, fs billy.Filesystem, name string) []labeltypes.LabeledImage {
	t.Helper()

	data, err := util.ReadFile(fs, name)
	require.NoError(t, err)

	var doc []labeltypes.LabeledImage
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestWriter_Write_RoundTrip(t *testing.T) {
	fs := memfs.New()
	in := []labeltypes.LabeledImage{
		{Filename: "Cat.JPG", ID: "cat.jpg", Labels: []string{"Cat", "Pet"}},
		{Filename: "road.png", ID: "road.png", Labels: []string{"Road"}},
		{Filename: "blank.png", ID: "blank.png", Labels: []string{}},
	}

	require.NoError(t, New(fs, "client/labels.json", discardLogger()).Write(in))
	assert.Equal(t, in, readDoc(t, fs, "client/labels.json"))
}

func TestWriter_Write_Format(t *testing.T) {
	fs := memfs.New()
	in := []labeltypes.LabeledImage{{Filename: "cat.jpg", ID: "cat.jpg", Labels: []string{"Cat"}}}

	require.NoError(t, New(fs, "labels.json", discardLogger()).Write(in))

	data, err := util.ReadFile(fs, "labels.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"filename":"cat.jpg","id":"cat.jpg","labels":["Cat"]}]`, string(data))
}

func TestWriter_Write_Empty(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, New(fs, "labels.json", discardLogger()).Write(nil))

	data, err := util.ReadFile(fs, "labels.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriter_Write_Overwrites(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "out/labels.json", []byte(`[{"stale":true},{"stale":true}]`), 0o644))

	in := []labeltypes.LabeledImage{{Filename: "a.jpg", ID: "a.jpg", Labels: []string{"A"}}}
	w := New(fs, "out/labels.json", discardLogger())
	require.NoError(t, w.Write(in))

	assert.Equal(t, in, readDoc(t, fs, "out/labels.json"))
	assert.Equal(t, "out/labels.json", w.Path())

	entries, err := fs.ReadDir("out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriter_Write_ParentIsFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "client", []byte("not a directory"), 0o644))

	err := New(fs, "client/labels.json", discardLogger()).Write(nil)
	require.Error(t, err)
	assert.True(t, lserrors.IsWriteError(err))

	var we *lserrors.Error
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "client/labels.json", we.Path)
}

func TestWriter_Write_OutputIsWorldReadable(t *testing.T) {
	output := filepath.Join(t.TempDir(), "client", "labels.json")
	in := []labeltypes.LabeledImage{{Filename: "a.jpg", ID: "a.jpg", Labels: []string{"A"}}}

	require.NoError(t, New(osfs.New("/"), output, discardLogger()).Write(in))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriter_Write_ReplacesRestrictiveMode(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "labels.json")
	require.NoError(t, os.WriteFile(output, []byte("[]"), 0o600))

	require.NoError(t, New(osfs.New("/"), output, discardLogger()).Write(nil))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
