package install

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/paths"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/settings"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// ListOptions defines the options for the ListMods command.
type ListOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
}

// ListMods reports the mod folders under the mods root, enriched with each
// mod's priority from the settings file when it has an entry there. Temp
// folders from unfinished installations are skipped. Mods with a settings
// entry come first in priority order, the rest follow alphabetically.
//
// A missing or unreadable settings file degrades the listing, it does not
// fail it: the mods root alone decides what is installed.
func ListMods(opts ListOptions) (*types.ListModsResult, error) {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return nil, errors.New(errors.ErrInvalidInput, "game paths are required")
	}

	modsRoot := opts.Paths.ModsRoot()
	result := &types.ListModsResult{Mods: []types.ModInfo{}}

	entries, err := fsys.ReadDir(modsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}

	priorities := make(map[string]int)
	inSettings := make(map[string]bool)
	if doc, err := settings.Load(fsys, opts.Paths.SettingsPath()); err != nil {
		logger.Debug().Err(err).Msg("Settings file unavailable, listing from disk only")
	} else {
		for _, m := range doc.Mods() {
			key := strings.ToLower(m.Name)
			priorities[key] = m.Priority
			inSettings[key] = true
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, paths.TempExtractPrefix) || strings.HasPrefix(name, paths.TempStagingPrefix) {
			continue
		}

		key := strings.ToLower(name)
		priority, ok := priorities[key]
		if !ok {
			priority = -1
		}
		result.Mods = append(result.Mods, types.ModInfo{
			Name:       name,
			Path:       filepath.Join(modsRoot, name),
			Priority:   priority,
			InSettings: inSettings[key],
		})
	}

	sort.Slice(result.Mods, func(i, j int) bool {
		a, b := result.Mods[i], result.Mods[j]
		if a.InSettings != b.InSettings {
			return a.InSettings
		}
		if a.InSettings && a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Name < b.Name
	})

	return result, nil
}

// WhereOptions defines the options for the Where command.
type WhereOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
}

// Where reports the resolved game locations and whether the settings file
// currently exists.
func Where(opts WhereOptions) (*types.WhereResult, error) {
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return nil, errors.New(errors.ErrInvalidInput, "game paths are required")
	}

	settingsPath := opts.Paths.SettingsPath()
	_, err := fsys.Stat(settingsPath)

	return &types.WhereResult{
		GameRoot:       opts.Paths.GameRoot(),
		ModsRoot:       opts.Paths.ModsRoot(),
		SettingsPath:   settingsPath,
		SettingsExists: err == nil,
	}, nil
}
