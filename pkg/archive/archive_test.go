// pkg/archive/archive_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem, zip archives built in-process
// PURPOSE: Test archive extraction, format dispatch and path traversal guard

package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/filesystem"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name    string
	content string
}

// buildZip assembles a zip archive in memory. Names ending in / become
// directory entries.
func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		if !strings.HasSuffix(e.name, "/") {
			_, err = f.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeArchive(t *testing.T, fsys types.FS, path string, data []byte) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll("/archives", 0755))
	require.NoError(t, fsys.WriteFile(path, data, 0644))
}

func TestExtract_Zip(t *testing.T) {
	fsys := filesystem.NewMemory()
	data := buildZip(t, []zipEntry{
		{name: "BetterShips/", content: ""},
		{name: "BetterShips/ships.pak", content: "pak-bytes"},
		{name: "BetterShips/docs/readme.txt", content: "hello"},
		{name: "loose.txt", content: "top-level file"},
	})
	writeArchive(t, fsys, "/archives/mod.zip", data)

	err := Extract(context.Background(), fsys, "/archives/mod.zip", "/mods/temp_extract_x")
	require.NoError(t, err)

	content, err := fsys.ReadFile("/mods/temp_extract_x/BetterShips/ships.pak")
	require.NoError(t, err)
	assert.Equal(t, "pak-bytes", string(content))

	content, err = fsys.ReadFile("/mods/temp_extract_x/BetterShips/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	content, err = fsys.ReadFile("/mods/temp_extract_x/loose.txt")
	require.NoError(t, err)
	assert.Equal(t, "top-level file", string(content))

	info, err := fsys.Stat("/mods/temp_extract_x/BetterShips")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExtract_CaseInsensitiveExtension(t *testing.T) {
	fsys := filesystem.NewMemory()
	data := buildZip(t, []zipEntry{{name: "Mod/file.pak", content: "x"}})
	writeArchive(t, fsys, "/archives/MOD.ZIP", data)

	err := Extract(context.Background(), fsys, "/archives/MOD.ZIP", "/mods/out")
	require.NoError(t, err)

	_, err = fsys.Stat("/mods/out/Mod/file.pak")
	assert.NoError(t, err)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeArchive(t, fsys, "/archives/mod.7z", []byte("whatever"))

	err := Extract(context.Background(), fsys, "/archives/mod.7z", "/mods/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))

	// Rejected before the destination is touched
	_, statErr := fsys.Stat("/mods/out")
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtract_MissingArchive(t *testing.T) {
	fsys := filesystem.NewMemory()

	err := Extract(context.Background(), fsys, "/archives/nope.zip", "/mods/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
}

func TestExtract_PathTraversal(t *testing.T) {
	fsys := filesystem.NewMemory()
	data := buildZip(t, []zipEntry{
		{name: "good.txt", content: "fine"},
		{name: "../evil.txt", content: "escape"},
	})
	writeArchive(t, fsys, "/archives/mod.zip", data)

	err := Extract(context.Background(), fsys, "/archives/mod.zip", "/mods/temp_extract_x")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtraction))

	// Nothing escaped the destination
	_, statErr := fsys.Stat("/mods/evil.txt")
	assert.True(t, os.IsNotExist(statErr))

	// Entries before the bad one stay extracted; callers remove the
	// whole temp directory on failure
	content, readErr := fsys.ReadFile("/mods/temp_extract_x/good.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "fine", string(content))
}

func TestExtract_Cancelled(t *testing.T) {
	fsys := filesystem.NewMemory()
	data := buildZip(t, []zipEntry{{name: "Mod/file.pak", content: "x"}})
	writeArchive(t, fsys, "/archives/mod.zip", data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Extract(ctx, fsys, "/archives/mod.zip", "/mods/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtraction))
}

func TestExtract_CorruptRar(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeArchive(t, fsys, "/archives/mod.rar", []byte("this is not a rar archive"))

	err := Extract(context.Background(), fsys, "/archives/mod.rar", "/mods/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtraction))
}

func TestExtract_EmptyRar(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeArchive(t, fsys, "/archives/empty.rar", nil)

	err := Extract(context.Background(), fsys, "/archives/empty.rar", "/mods/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtraction))
}
