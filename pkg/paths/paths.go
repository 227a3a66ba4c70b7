package paths

import (
	"os"
	"path/filepath"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/filesystem"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/oklog/ulid/v2"
)

// Environment variable names
const (
	// EnvGameRoot is the primary environment variable for the game location
	EnvGameRoot = "NMSMM_GAME_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Game directory layout.
// IMPORTANT: These constants mirror the game's on-disk structure and are NOT
// user-configurable. They must match what the game engine reads. The only
// user-configurable path, the game root itself, lives in pkg/config.
const (
	// GamedataDir is the data directory under the game root
	GamedataDir = "GAMEDATA"

	// ModsDir is the mod directory under GAMEDATA
	ModsDir = "MODS"

	// BinariesDir is the executable directory under the game root
	BinariesDir = "Binaries"

	// SettingsDir is the settings directory under Binaries
	SettingsDir = "SETTINGS"

	// SettingsFileName is the name of the mod settings file
	SettingsFileName = "GCMODSETTINGS.MXML"

	// TempExtractPrefix prefixes archive extraction directories in the mods root
	TempExtractPrefix = "temp_extract_"

	// TempStagingPrefix prefixes conflict staging directories in the mods root
	TempStagingPrefix = "temp_staging_"
)

// Discovery targets
const (
	// SteamAppID is the game's Steam application id
	SteamAppID = "275850"

	// GOGGameDir is the game's folder name in default GOG installs
	GOGGameDir = "No Man's Sky"
)

// Game root sources reported by Paths.Source
const (
	SourceExplicit    = "explicit"
	SourceEnvironment = "environment"
	SourceSteam       = "steam"
	SourceGOG         = "gog"
)

// Paths provides centralized path management for the mod manager
type Paths interface {
	types.Pather

	// Source reports how the game root was determined: SourceExplicit,
	// SourceEnvironment, SourceSteam or SourceGOG.
	Source() string
}

type paths struct {
	// gameRoot is the root directory of the game installation
	gameRoot string

	// source records which lookup produced gameRoot
	source string
}

// New creates a new Paths instance rooted at the given game directory.
// If gameRoot is empty it is discovered from the environment, then from
// Steam libraries, then from default GOG install locations.
func New(gameRoot string) (Paths, error) {
	return NewWithFS(gameRoot, filesystem.NewOS())
}

// NewWithFS is New with an injectable filesystem, for tests.
func NewWithFS(gameRoot string, fsys types.FS) (Paths, error) {
	p := &paths{source: SourceExplicit}

	if gameRoot == "" {
		root, source, err := discoverGameRoot(fsys)
		if err != nil {
			return nil, err
		}
		p.gameRoot = root
		p.source = source
	} else {
		p.gameRoot = expandHome(gameRoot)
	}

	// Ensure the game root is absolute
	absRoot, err := filepath.Abs(p.gameRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for game root")
	}
	p.gameRoot = absRoot

	if err := validateGameRoot(fsys, p.gameRoot); err != nil {
		return nil, err
	}

	return p, nil
}

// validateGameRoot accepts a root only when its Binaries directory exists.
// This catches stale pins and arbitrary directories before any mod
// operation touches them.
func validateGameRoot(fsys types.FS, root string) error {
	info, err := fsys.Stat(filepath.Join(root, BinariesDir))
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrPathNotFound,
			"%s does not look like a game installation (missing %s directory)", root, BinariesDir)
	}
	return nil
}

// GameRoot returns the root directory of the game installation
func (p *paths) GameRoot() string {
	return p.gameRoot
}

// ModsRoot returns <game-root>/GAMEDATA/MODS
func (p *paths) ModsRoot() string {
	return filepath.Join(p.gameRoot, GamedataDir, ModsDir)
}

// SettingsPath returns <game-root>/Binaries/SETTINGS/GCMODSETTINGS.MXML
func (p *paths) SettingsPath() string {
	return filepath.Join(p.gameRoot, BinariesDir, SettingsDir, SettingsFileName)
}

// TempExtractPath returns a fresh extraction directory path under the mods
// root. ULIDs are monotonic within a process, so two calls never collide
// even in the same millisecond.
func (p *paths) TempExtractPath() string {
	return filepath.Join(p.ModsRoot(), TempExtractPrefix+ulid.Make().String())
}

// TempStagingPath returns a fresh staging directory path under the mods root
func (p *paths) TempStagingPath() string {
	return filepath.Join(p.ModsRoot(), TempStagingPrefix+ulid.Make().String())
}

// Source reports how the game root was determined
func (p *paths) Source() string {
	return p.source
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}
