// Package paths provides centralized path handling for the mod manager.
//
// It owns the game's on-disk layout and the discovery of the game root,
// and provides a consistent API for every path the manager touches:
//
//   - Game root discovery (environment pin, Steam libraries, GOG defaults)
//   - The mods root under GAMEDATA/MODS
//   - The settings file under Binaries/SETTINGS
//   - Temporary extraction and staging directory naming
//
// # Environment Variables
//
// The package respects the following environment variable:
//
//   - NMSMM_GAME_ROOT: Explicit game installation root. When set, discovery
//     is skipped entirely; a pin that fails validation is an error rather
//     than a fallthrough.
//
// # Discovery
//
// When no root is pinned, Steam libraries are scanned first: each known
// Steam install location is a library, and its libraryfolders.vdf may name
// more. A library contains the game when it holds the game's app manifest;
// the manifest's installdir names the folder under steamapps/common. GOG
// default install locations are probed last. Any candidate is accepted
// only if its Binaries directory exists.
//
// # Usage
//
//	import "github.com/Syzzle07/NMS-Mod-Manager/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("") // Auto-detect the game root
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	mods := p.ModsRoot()        // <game>/GAMEDATA/MODS
//	settings := p.SettingsPath() // <game>/Binaries/SETTINGS/GCMODSETTINGS.MXML
//	tmp := p.TempExtractPath()  // <game>/GAMEDATA/MODS/temp_extract_<ulid>
package paths
