package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// discoverGameRoot determines the game root using the following priority:
//  1. NMSMM_GAME_ROOT environment variable
//  2. Steam library scan (libraryfolders.vdf + the game's app manifest)
//  3. Default GOG install locations
//
// A stale environment pin fails the whole discovery instead of silently
// falling through to a different install.
func discoverGameRoot(fsys types.FS) (string, string, error) {
	logger := logging.GetLogger("paths")

	if root := os.Getenv(EnvGameRoot); root != "" {
		root = expandHome(root)
		if err := validateGameRoot(fsys, root); err != nil {
			return "", "", err
		}
		logger.Debug().Str("root", root).Msg("Game root pinned via environment")
		return root, SourceEnvironment, nil
	}

	if root, err := findSteamGameRoot(fsys, defaultSteamRoots()); err == nil {
		logger.Debug().Str("root", root).Msg("Game found in a Steam library")
		return root, SourceSteam, nil
	}

	if root, err := findGOGGameRoot(fsys, defaultGOGRoots()); err == nil {
		logger.Debug().Str("root", root).Msg("Game found in a GOG install location")
		return root, SourceGOG, nil
	}

	return "", "", errors.New(errors.ErrPathNotFound,
		"game installation not found; set "+EnvGameRoot+" or configure game_root")
}

// findSteamGameRoot scans Steam libraries for the game's app manifest.
// Each Steam root is itself a library; additional libraries come from its
// libraryfolders.vdf.
func findSteamGameRoot(fsys types.FS, steamRoots []string) (string, error) {
	for _, steamRoot := range steamRoots {
		libraries := []string{steamRoot}

		vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
		if data, err := fsys.ReadFile(vdfPath); err == nil {
			for _, library := range parseLibraryFolders(data) {
				if _, err := fsys.Stat(library); err == nil {
					libraries = append(libraries, library)
				}
			}
		}

		for _, library := range libraries {
			root, err := gameRootFromLibrary(fsys, library)
			if err != nil {
				continue
			}
			return root, nil
		}
	}

	return "", errors.New(errors.ErrPathNotFound, "no Steam library contains the game")
}

// gameRootFromLibrary resolves <library>/steamapps/common/<installdir> from
// the game's app manifest inside the library.
func gameRootFromLibrary(fsys types.FS, library string) (string, error) {
	manifest := filepath.Join(library, "steamapps", "appmanifest_"+SteamAppID+".acf")
	data, err := fsys.ReadFile(manifest)
	if err != nil {
		return "", err
	}

	installDir := parseInstallDir(data)
	if installDir == "" {
		return "", errors.Newf(errors.ErrParse, "no installdir entry in %s", manifest)
	}

	root := filepath.Join(library, "steamapps", "common", installDir)
	if err := validateGameRoot(fsys, root); err != nil {
		return "", err
	}
	return root, nil
}

// parseLibraryFolders pulls library paths out of Steam's libraryfolders.vdf.
// Both VDF generations are handled: the current format keys each library
// with "path", the pre-2021 one maps a bare index straight to the path. In
// either case the path sits in the fourth quote-delimited field, so every
// line is split on quotes and the caller filters by existence.
func parseLibraryFolders(data []byte) []string {
	var libraries []string
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Split(line, `"`)
		if len(parts) < 5 {
			continue
		}
		library := strings.ReplaceAll(parts[3], `\\`, `\`)
		if library != "" {
			libraries = append(libraries, library)
		}
	}
	return libraries
}

// parseInstallDir pulls the installdir value out of an app manifest.
func parseInstallDir(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, `"installdir"`) {
			continue
		}
		parts := strings.Split(line, `"`)
		if len(parts) >= 5 {
			return parts[3]
		}
	}
	return ""
}

// findGOGGameRoot probes default GOG install locations.
func findGOGGameRoot(fsys types.FS, gogRoots []string) (string, error) {
	for _, root := range gogRoots {
		if err := validateGameRoot(fsys, root); err == nil {
			return root, nil
		}
	}
	return "", errors.New(errors.ErrPathNotFound, "game not present in any default GOG location")
}

// defaultSteamRoots returns the well-known Steam install locations for the
// current platform.
func defaultSteamRoots() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files (x86)\Steam`,
			`C:\Program Files\Steam`,
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		}
	}
}

// defaultGOGRoots returns the default GOG Galaxy install locations. GOG
// ships the game for Windows only.
func defaultGOGRoots() []string {
	if runtime.GOOS != "windows" {
		return nil
	}
	return []string{
		filepath.Join(`C:\Program Files (x86)\GOG Galaxy\Games`, GOGGameDir),
		filepath.Join(`C:\GOG Games`, GOGGameDir),
	}
}
