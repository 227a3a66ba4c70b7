// TEST TYPE: Integration Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Verify command routing and result assembly for every command type

package dispatcher

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/testutil"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

const settingsFixture = `<?xml version="1.0" encoding="utf-8"?>
<Data template="GcModSettingsInfo">
  <Property name="Data">
    <Property name="Data" value="GcModSettingsInfoElement" _index="0">
      <Property name="Name" value="BetterShips"/>
      <Property name="ModPriority" value="0"/>
    </Property>
  </Property>
</Data>`

func writeArchive(t *testing.T, fsys types.FS, path string, members map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range members {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, buf.Bytes(), 0644))
}

func TestDispatch(t *testing.T) {
	t.Run("install_routes_to_analysis", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		writeArchive(t, fsys, "/archives/mod.zip", map[string]string{
			"CoolMod/content.pak": "pak",
		})

		// Execute
		result, err := Dispatch(context.Background(), CommandInstall, Options{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/mod.zip",
		})

		// Verify
		require.NoError(t, err)
		assert.Equal(t, "install", result.Command)
		require.NotNil(t, result.Analysis)
		require.Len(t, result.Analysis.Installed, 1)
		assert.Equal(t, "installed CoolMod", result.Message)
		assert.False(t, result.Timestamp.IsZero())
	})

	t.Run("install_reports_messy_archives", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		writeArchive(t, fsys, "/archives/loose.zip", map[string]string{
			"content.pak": "pak",
		})

		// Execute
		result, err := Dispatch(context.Background(), CommandInstall, Options{
			Paths:       p,
			FileSystem:  fsys,
			ArchivePath: "/archives/loose.zip",
		})

		// Verify
		require.NoError(t, err)
		require.NotNil(t, result.Analysis)
		assert.True(t, result.Analysis.IsMessy())
		assert.Contains(t, result.Message, "finalize")
		assert.Contains(t, result.Message, "suggestion: content")
	})

	t.Run("resolve_routes_both_decisions", func(t *testing.T) {
		// Setup: two staged candidates
		fsys, p := testutil.NewGameEnv(t)
		stagingDir := p.TempStagingPath()
		for _, name := range []string{"Alpha", "Beta"} {
			require.NoError(t, fsys.MkdirAll(filepath.Join(stagingDir, name), 0755))
		}

		// Execute: replace one, discard the other
		result, err := Dispatch(context.Background(), CommandResolve, Options{
			Paths:      p,
			FileSystem: fsys,
			ModName:    "Alpha",
			StagedPath: filepath.Join(stagingDir, "Alpha"),
			Replace:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, "replaced Alpha with the staged version", result.Message)

		result, err = Dispatch(context.Background(), CommandResolve, Options{
			Paths:      p,
			FileSystem: fsys,
			ModName:    "Beta",
			StagedPath: filepath.Join(stagingDir, "Beta"),
			Replace:    false,
		})
		require.NoError(t, err)
		assert.Equal(t, "discarded the staged version of Beta", result.Message)

		// Verify: Alpha installed, staging folder gone
		_, err = fsys.Stat("/game/GAMEDATA/MODS/Alpha")
		require.NoError(t, err)
		_, statErr := fsys.Stat(stagingDir)
		assert.Error(t, statErr)
	})

	t.Run("finalize_returns_the_final_mod", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		temp := p.TempExtractPath()
		require.NoError(t, fsys.MkdirAll(temp, 0755))

		// Execute
		result, err := Dispatch(context.Background(), CommandFinalize, Options{
			FileSystem: fsys,
			TempPath:   temp,
			NewName:    "NamedMod",
		})

		// Verify
		require.NoError(t, err)
		require.NotNil(t, result.Finalized)
		assert.Equal(t, "NamedMod", result.Finalized.Name)
		assert.Equal(t, filepath.Join(p.ModsRoot(), "NamedMod"), result.Finalized.Path)
	})

	t.Run("cleanup_is_idempotent", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		temp := p.TempExtractPath()
		require.NoError(t, fsys.MkdirAll(temp, 0755))

		// Execute twice
		_, err := Dispatch(context.Background(), CommandCleanup, Options{FileSystem: fsys, TempPath: temp})
		require.NoError(t, err)
		_, err = Dispatch(context.Background(), CommandCleanup, Options{FileSystem: fsys, TempPath: temp})
		require.NoError(t, err)
	})

	t.Run("remove_carries_the_delete_result", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.MkdirAll("/game/GAMEDATA/MODS/BetterShips", 0755))
		require.NoError(t, fsys.WriteFile(p.SettingsPath(), []byte(settingsFixture), 0644))

		// Execute
		result, err := Dispatch(context.Background(), CommandRemove, Options{
			Paths:      p,
			FileSystem: fsys,
			ModName:    "BetterShips",
		})

		// Verify
		require.NoError(t, err)
		require.NotNil(t, result.Delete)
		assert.True(t, result.Delete.FolderRemoved)
		assert.Equal(t, 1, result.Delete.EntriesRemoved)
		assert.Equal(t, "removed BetterShips", result.Message)
	})

	t.Run("reset_settings_messages_differ", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.WriteFile(p.SettingsPath(), []byte(settingsFixture), 0644))

		// Execute: file present, then absent
		result, err := Dispatch(context.Background(), CommandResetSettings, Options{Paths: p, FileSystem: fsys})
		require.NoError(t, err)
		assert.Equal(t, "settings file deleted", result.Message)
		assert.True(t, result.Reset.Removed)

		result, err = Dispatch(context.Background(), CommandResetSettings, Options{Paths: p, FileSystem: fsys})
		require.NoError(t, err)
		assert.Equal(t, "settings file not found", result.Message)
		assert.False(t, result.Reset.Removed)
	})

	t.Run("list_and_where_route", func(t *testing.T) {
		// Setup
		fsys, p := testutil.NewGameEnv(t)
		require.NoError(t, fsys.MkdirAll("/game/GAMEDATA/MODS/Alpha", 0755))

		// Execute
		listResult, err := Dispatch(context.Background(), CommandList, Options{Paths: p, FileSystem: fsys})
		require.NoError(t, err)
		require.NotNil(t, listResult.List)
		require.Len(t, listResult.List.Mods, 1)

		whereResult, err := Dispatch(context.Background(), CommandWhere, Options{Paths: p, FileSystem: fsys})
		require.NoError(t, err)
		require.NotNil(t, whereResult.Where)
		assert.Equal(t, "/game", whereResult.Where.GameRoot)
	})

	t.Run("unknown_command_type", func(t *testing.T) {
		_, err := Dispatch(context.Background(), CommandType("bogus"), Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
