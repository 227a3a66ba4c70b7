package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/settings"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// DeleteOptions defines the options for the DeleteMod command.
type DeleteOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
	// ModName is the mod to remove, matched case-insensitively
	ModName string
	// Write persists the reconciled settings document back to disk.
	// Without it the canonical text is only carried in the result.
	Write bool
}

// DeleteMod removes a mod: its folder under the mods root (every
// case-variant of the name, if a stray duplicate exists) and its entries in
// GCMODSETTINGS.MXML, renumbering the surviving entries. The folder delete
// happens first and is not undone when the settings step fails.
func DeleteMod(opts DeleteOptions) (*types.DeleteResult, error) {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return nil, errors.New(errors.ErrInvalidInput, "game paths are required")
	}
	if opts.ModName == "" {
		return nil, errors.New(errors.ErrInvalidInput, "mod name is required")
	}

	result := &types.DeleteResult{ModName: opts.ModName}
	modsRoot := opts.Paths.ModsRoot()

	entries, err := fsys.ReadDir(modsRoot)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}
	for _, entry := range entries {
		if !strings.EqualFold(entry.Name(), opts.ModName) {
			continue
		}
		if err := fsys.RemoveAll(filepath.Join(modsRoot, entry.Name())); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to delete mod folder for %q", opts.ModName)
		}
		result.FolderRemoved = true
	}

	settingsPath := opts.Paths.SettingsPath()
	doc, err := settings.Load(fsys, settingsPath)
	if err != nil {
		return nil, err
	}

	result.EntriesRemoved = doc.RemoveMod(opts.ModName)

	text, err := doc.Canonical()
	if err != nil {
		return nil, err
	}
	result.Settings = text

	if opts.Write {
		if err := fsys.WriteFile(settingsPath, []byte(text), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to write settings file %s", settingsPath)
		}
		result.SettingsWritten = true
	}

	logger.Info().
		Str("mod", opts.ModName).
		Bool("folderRemoved", result.FolderRemoved).
		Int("entriesRemoved", result.EntriesRemoved).
		Bool("settingsWritten", result.SettingsWritten).
		Msg("Mod deleted")

	return result, nil
}

// ResetOptions defines the options for the ResetSettings command.
type ResetOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
}

// ResetSettings deletes GCMODSETTINGS.MXML so the game rebuilds it on the
// next launch. Reports whether a file was actually removed.
func ResetSettings(opts ResetOptions) (*types.ResetSettingsResult, error) {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return nil, errors.New(errors.ErrInvalidInput, "game paths are required")
	}

	path := opts.Paths.SettingsPath()
	result := &types.ResetSettingsResult{Path: path}

	if _, err := fsys.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to inspect settings file %s", path)
	}

	if err := fsys.Remove(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to delete settings file %s", path)
	}

	result.Removed = true
	logger.Info().Str("path", path).Msg("Settings file deleted")
	return result, nil
}
