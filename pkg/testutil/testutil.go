// Package testutil builds throwaway game installations for tests. The
// environments live in a memory filesystem, so tests stay isolated and
// need no cleanup.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/filesystem"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/paths"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// GameRoot is where the test environments mount the game installation.
const GameRoot = "/game"

// NewGameEnv builds a minimal game installation in a memory filesystem and
// resolves real paths against it.
func NewGameEnv(t *testing.T) (types.FS, paths.Paths) {
	t.Helper()

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(GameRoot+"/Binaries/SETTINGS", 0755))
	require.NoError(t, fsys.MkdirAll(GameRoot+"/GAMEDATA/MODS", 0755))

	return fsys, newPaths(t, fsys)
}

// NewBareGameEnv builds a game installation that never had a MODS folder,
// for exercising code that has to cope with a fresh install.
func NewBareGameEnv(t *testing.T) (types.FS, paths.Paths) {
	t.Helper()

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(GameRoot+"/Binaries/SETTINGS", 0755))

	return fsys, newPaths(t, fsys)
}

func newPaths(t *testing.T, fsys types.FS) paths.Paths {
	t.Helper()

	p, err := paths.NewWithFS(GameRoot, fsys)
	require.NoError(t, err)
	return p
}
