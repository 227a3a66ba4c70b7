// pkg/filesystem/filesystem_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (temp directories and in-memory fs)
// PURPOSE: Verify both types.FS implementations behave the same way

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSImplementations(t *testing.T) {
	impls := []struct {
		name string
		fs   types.FS
		root string
	}{
		{"os", NewOS(), t.TempDir()},
		{"memory", NewMemory(), "/game"},
	}

	for _, impl := range impls {
		t.Run(impl.name, func(t *testing.T) {
			fs := impl.fs
			testFile := filepath.Join(impl.root, "test.txt")
			testContent := []byte("hello world")

			require.NoError(t, fs.MkdirAll(impl.root, 0755))

			// WriteFile / Stat / ReadFile round trip
			err := fs.WriteFile(testFile, testContent, 0644)
			require.NoError(t, err)

			info, err := fs.Stat(testFile)
			require.NoError(t, err)
			assert.Equal(t, "test.txt", info.Name())
			assert.Equal(t, int64(len(testContent)), info.Size())

			content, err := fs.ReadFile(testFile)
			require.NoError(t, err)
			assert.Equal(t, testContent, content)

			// Create streams bytes to a new file
			w, err := fs.Create(filepath.Join(impl.root, "streamed.bin"))
			require.NoError(t, err)
			_, err = w.Write([]byte("streamed"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			content, err = fs.ReadFile(filepath.Join(impl.root, "streamed.bin"))
			require.NoError(t, err)
			assert.Equal(t, []byte("streamed"), content)

			// MkdirAll / ReadDir
			subDir := filepath.Join(impl.root, "sub", "dir")
			require.NoError(t, fs.MkdirAll(subDir, 0755))

			entries, err := fs.ReadDir(impl.root)
			require.NoError(t, err)
			assert.Len(t, entries, 3) // test.txt, streamed.bin, sub/

			// Rename moves a directory tree
			moved := filepath.Join(impl.root, "moved")
			require.NoError(t, fs.Rename(filepath.Join(impl.root, "sub"), moved))
			info, err = fs.Stat(moved)
			require.NoError(t, err)
			assert.True(t, info.IsDir())

			// Remove / RemoveAll
			require.NoError(t, fs.Remove(testFile))
			_, err = fs.Stat(testFile)
			assert.True(t, os.IsNotExist(err))

			require.NoError(t, fs.RemoveAll(moved))
			_, err = fs.Stat(moved)
			assert.True(t, os.IsNotExist(err))

			// RemoveAll on a missing path is not an error
			assert.NoError(t, fs.RemoveAll(filepath.Join(impl.root, "never-existed")))
		})
	}
}

func TestAferoFS_ReadFileOnDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/game/GAMEDATA/MODS", 0755))

	_, err := fs.ReadFile("/game/GAMEDATA/MODS")
	assert.Error(t, err)
}
