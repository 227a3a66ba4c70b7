// TEST TYPE: Unit Tests
// DEPENDENCIES: None (in-memory buffer)
// PURPOSE: Verify rich rendering keeps all semantic content visible
//
// Styling depends on the terminal the tests run under, so assertions
// check content rather than escape sequences.

package terminal

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

func render(t *testing.T, result *types.CommandResult) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, New(&buf).RenderResult(result))
	return buf.String()
}

func TestRenderResult(t *testing.T) {
	t.Run("analysis_keeps_names_and_paths", func(t *testing.T) {
		// Setup
		result := &types.CommandResult{
			Command: "install",
			Message: "installed CoolMod; conflicts staged: OldMod",
			Analysis: &types.InstallationAnalysis{
				Installed: []types.ModInstall{{Name: "CoolMod", Path: "/mods/CoolMod"}},
				Conflicts: []types.ModInstall{{Name: "OldMod", Path: "/mods/.temp_staging_x/OldMod"}},
			},
		}

		// Execute
		out := render(t, result)

		// Verify
		assert.Contains(t, out, "CoolMod")
		assert.Contains(t, out, "OldMod")
		assert.Contains(t, out, "/mods/CoolMod")
		assert.Contains(t, out, "staged at /mods/.temp_staging_x/OldMod")
		assert.Contains(t, out, "installed CoolMod; conflicts staged: OldMod")
	})

	t.Run("messy_analysis_shows_suggestion", func(t *testing.T) {
		// Setup
		result := &types.CommandResult{
			Command: "install",
			Analysis: &types.InstallationAnalysis{
				MessyPath:     "/mods/.temp_extract_x",
				SuggestedName: "content",
			},
		}

		// Execute
		out := render(t, result)

		// Verify
		assert.Contains(t, out, "extracted to /mods/.temp_extract_x")
		assert.Contains(t, out, "suggested name: content")
	})

	t.Run("timestamp_footer", func(t *testing.T) {
		// Setup
		stamp := time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
		result := &types.CommandResult{
			Command:   "cleanup",
			Message:   "removed temporary folder /mods/.temp_extract_x",
			Timestamp: stamp,
		}

		// Execute
		out := render(t, result)

		// Verify
		assert.Contains(t, out, "completed at 14:30:05")
	})

	t.Run("list_and_where_content", func(t *testing.T) {
		// Setup
		listResult := &types.CommandResult{
			Command: "list",
			List: &types.ListModsResult{
				Mods: []types.ModInfo{
					{Name: "Beta", Path: "/mods/Beta", Priority: 0, InSettings: true},
					{Name: "Gamma", Path: "/mods/Gamma", Priority: -1},
				},
			},
		}
		whereResult := &types.CommandResult{
			Command: "where",
			Where: &types.WhereResult{
				GameRoot:     "/game",
				ModsRoot:     "/game/GAMEDATA/MODS",
				SettingsPath: "/game/Binaries/SETTINGS/GCMODSETTINGS.MXML",
			},
		}

		// Execute
		listOut := render(t, listResult)
		whereOut := render(t, whereResult)

		// Verify
		assert.Contains(t, listOut, "Installed Mods")
		assert.Contains(t, listOut, "Beta")
		assert.Contains(t, listOut, "(not in settings)")
		assert.Contains(t, whereOut, "/game/GAMEDATA/MODS")
		assert.Contains(t, whereOut, "(missing)")
	})

	t.Run("empty_list", func(t *testing.T) {
		// Setup
		result := &types.CommandResult{
			Command: "list",
			List:    &types.ListModsResult{},
		}

		// Execute
		out := render(t, result)

		// Verify
		assert.Contains(t, out, "No mods installed.")
	})

	t.Run("delete_without_write_echoes_the_document", func(t *testing.T) {
		// Setup
		result := &types.CommandResult{
			Command: "remove",
			Delete: &types.DeleteResult{
				ModName:        "CoolMod",
				FolderRemoved:  true,
				EntriesRemoved: 1,
				Settings:       "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<Data template=\"GcModSettings\"/>\n",
			},
		}

		// Execute
		out := render(t, result)

		// Verify
		assert.Contains(t, out, "reconciled in memory only")
		assert.Contains(t, out, "<Data template=\"GcModSettings\"/>")
	})
}

func TestRenderError(t *testing.T) {
	// Setup
	var buf bytes.Buffer

	// Execute
	require.NoError(t, New(&buf).RenderError(errors.New("boom")))

	// Verify
	assert.Contains(t, buf.String(), "boom")
}
