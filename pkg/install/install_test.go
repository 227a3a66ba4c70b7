// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Verify archive installation analysis: new mods, case-insensitive
// conflicts, messy archives, and extraction folder cleanup

package install

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/paths"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/testutil"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// zipEntry is one archive member; a trailing slash marks a directory.
type zipEntry struct {
	name string
	body string
}

func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range entries {
		f, err := w.Create(entry.name)
		require.NoError(t, err)
		if !strings.HasSuffix(entry.name, "/") {
			_, err = f.Write([]byte(entry.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeZip(t *testing.T, fsys types.FS, path string, entries []zipEntry) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll("/archives", 0755))
	require.NoError(t, fsys.WriteFile(path, buildZip(t, entries), 0644))
}

// modsRootEntries lists the current mods root contents by name.
func modsRootEntries(t *testing.T, fsys types.FS, p paths.Paths) []string {
	t.Helper()

	entries, err := fsys.ReadDir(p.ModsRoot())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestInstallFromArchive(t *testing.T) {
	t.Run("installs_new_mods", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		writeZip(t, fsys, "/archives/mods.zip", []zipEntry{
			{name: "CoolMod/content.pak", body: "pak-data"},
			{name: "OtherMod/nested/readme.txt", body: "docs"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/mods.zip",
		})

		// Verify
		require.NoError(t, err)
		require.Len(t, analysis.Installed, 2)
		assert.Equal(t, "CoolMod", analysis.Installed[0].Name)
		assert.Equal(t, "/game/GAMEDATA/MODS/CoolMod", analysis.Installed[0].Path)
		assert.Equal(t, "OtherMod", analysis.Installed[1].Name)
		assert.Empty(t, analysis.Conflicts)
		assert.False(t, analysis.IsMessy())

		data, err := fsys.ReadFile("/game/GAMEDATA/MODS/CoolMod/content.pak")
		require.NoError(t, err)
		assert.Equal(t, "pak-data", string(data))

		// Extraction folder is gone; only the two mods remain.
		assert.ElementsMatch(t, []string{"CoolMod", "OtherMod"}, modsRootEntries(t, fsys, p))
	})

	t.Run("stages_conflicts_case_insensitively", func(t *testing.T) {
		// Setup: an installed mod whose casing differs from the archive's
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.MkdirAll("/game/GAMEDATA/MODS/coolmod", 0755))
		require.NoError(t, fsys.WriteFile("/game/GAMEDATA/MODS/coolmod/old.pak", []byte("old"), 0644))
		writeZip(t, fsys, "/archives/update.zip", []zipEntry{
			{name: "CoolMod/new.pak", body: "new"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/update.zip",
		})

		// Verify
		require.NoError(t, err)
		assert.Empty(t, analysis.Installed)
		require.Len(t, analysis.Conflicts, 1)
		assert.Equal(t, "CoolMod", analysis.Conflicts[0].Name)
		assert.Contains(t, analysis.Conflicts[0].Path, paths.TempStagingPrefix)

		// The staged candidate is intact and the installed mod untouched.
		data, err := fsys.ReadFile(analysis.Conflicts[0].Path + "/new.pak")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		data, err = fsys.ReadFile("/game/GAMEDATA/MODS/coolmod/old.pak")
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("mixed_new_and_conflicting_mods", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.MkdirAll("/game/GAMEDATA/MODS/Existing", 0755))
		writeZip(t, fsys, "/archives/mixed.zip", []zipEntry{
			{name: "Existing/update.pak", body: "v2"},
			{name: "Fresh/data.pak", body: "v1"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/mixed.zip",
		})

		// Verify
		require.NoError(t, err)
		require.Len(t, analysis.Installed, 1)
		assert.Equal(t, "Fresh", analysis.Installed[0].Name)
		require.Len(t, analysis.Conflicts, 1)
		assert.Equal(t, "Existing", analysis.Conflicts[0].Name)
	})

	t.Run("case_variants_inside_one_archive_conflict", func(t *testing.T) {
		// Setup: the archive itself carries two folders that collide
		// case-insensitively; the first one in installs, the second must
		// not overwrite it
		fsys, p := testutil.NewGameEnv(t)
		writeZip(t, fsys, "/archives/twins.zip", []zipEntry{
			{name: "MODA/one.pak", body: "1"},
			{name: "ModA/two.pak", body: "2"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/twins.zip",
		})

		// Verify: directory order is lexicographic, so MODA lands first
		require.NoError(t, err)
		require.Len(t, analysis.Installed, 1)
		assert.Equal(t, "MODA", analysis.Installed[0].Name)
		require.Len(t, analysis.Conflicts, 1)
		assert.Equal(t, "ModA", analysis.Conflicts[0].Name)
	})

	t.Run("messy_archive_left_for_finalize", func(t *testing.T) {
		// Setup: loose files, no containing folder
		fsys, p := testutil.NewGameEnv(t)
		writeZip(t, fsys, "/archives/loose.zip", []zipEntry{
			{name: "content.pak", body: "pak"},
			{name: "readme.txt", body: "docs"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/loose.zip",
		})

		// Verify
		require.NoError(t, err)
		assert.True(t, analysis.IsMessy())
		assert.Empty(t, analysis.Installed)
		assert.Empty(t, analysis.Conflicts)
		assert.Contains(t, analysis.MessyPath, paths.TempExtractPrefix)
		assert.Equal(t, "content", analysis.SuggestedName)

		// The extraction folder stays on disk for finalize.
		data, err := fsys.ReadFile(analysis.MessyPath + "/content.pak")
		require.NoError(t, err)
		assert.Equal(t, "pak", string(data))
	})

	t.Run("empty_archive_is_messy_without_suggestion", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		writeZip(t, fsys, "/archives/empty.zip", nil)

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/empty.zip",
		})

		// Verify
		require.NoError(t, err)
		assert.True(t, analysis.IsMessy())
		assert.Empty(t, analysis.SuggestedName)
	})

	t.Run("unsupported_archive_type", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.MkdirAll("/archives", 0755))
		require.NoError(t, fsys.WriteFile("/archives/mod.7z", []byte("seven"), 0644))

		// Execute
		_, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/mod.7z",
		})

		// Verify: rejected before any temp folder appears
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))
		assert.Empty(t, modsRootEntries(t, fsys, p))
	})

	t.Run("missing_archive", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)

		// Execute
		_, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/nope.zip",
		})

		// Verify
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
	})

	t.Run("requires_paths_and_archive", func(t *testing.T) {
		fsys, p := testutil.NewGameEnv(t)

		_, err := InstallFromArchive(context.Background(), InstallOptions{FileSystem: fsys, ArchivePath: "/a.zip"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

		_, err = InstallFromArchive(context.Background(), InstallOptions{FileSystem: fsys, Paths: p})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("creates_mods_root_when_absent", func(t *testing.T) {
		// Setup: a fresh install that never had a MODS folder
		fsys, p := testutil.NewBareGameEnv(t)
		writeZip(t, fsys, "/archives/mods.zip", []zipEntry{
			{name: "FirstMod/data.pak", body: "pak"},
		})

		// Execute
		analysis, err := InstallFromArchive(context.Background(), InstallOptions{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/mods.zip",
		})

		// Verify
		require.NoError(t, err)
		require.Len(t, analysis.Installed, 1)
		_, err = fsys.Stat("/game/GAMEDATA/MODS/FirstMod")
		require.NoError(t, err)
	})
}
