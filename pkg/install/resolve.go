package install

import (
	"path/filepath"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// ResolveOptions defines the options for the ResolveConflict command.
type ResolveOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
	// ModName is the conflicting mod as reported by the installation analysis
	ModName string
	// StagedPath is where the candidate waits, as reported by the analysis
	StagedPath string
	// Replace installs the staged candidate over the existing mod;
	// otherwise the candidate is discarded
	Replace bool
}

// ResolveConflict applies the user's decision for one staged mod. With
// Replace the existing folder is deleted and the staged candidate moves
// into the mods root under its own casing; the on-disk lookup is
// case-insensitive. Without Replace the staged candidate is deleted.
// Either way the staging folder itself is removed once it has no
// candidates left.
func ResolveConflict(opts ResolveOptions) error {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return errors.New(errors.ErrInvalidInput, "game paths are required")
	}
	if opts.ModName == "" || opts.StagedPath == "" {
		return errors.New(errors.ErrInvalidInput, "mod name and staged path are required")
	}

	modsRoot := opts.Paths.ModsRoot()

	if opts.Replace {
		existing, err := existingNames(fsys, modsRoot)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
		}
		if onDisk, ok := existing[strings.ToLower(opts.ModName)]; ok {
			if err := fsys.RemoveAll(filepath.Join(modsRoot, onDisk)); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to remove old mod %s", onDisk)
			}
		}
		dest := filepath.Join(modsRoot, opts.ModName)
		if err := fsys.Rename(opts.StagedPath, dest); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to move new mod %s into place", opts.ModName)
		}
		logger.Info().Str("mod", opts.ModName).Str("path", dest).Msg("Conflict resolved, mod replaced")
	} else {
		if err := fsys.RemoveAll(opts.StagedPath); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to remove staged mod %s", opts.StagedPath)
		}
		logger.Info().Str("mod", opts.ModName).Msg("Conflict resolved, update discarded")
	}

	removeDirIfEmpty(fsys, filepath.Dir(opts.StagedPath), modsRoot)
	return nil
}

// FinalizeOptions defines the options for the FinalizeMessy command.
type FinalizeOptions struct {
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
	// TempPath is the extraction folder reported as messy by the analysis
	TempPath string
	// NewName is the mod folder name chosen by the user
	NewName string
}

// FinalizeMessy turns a messy extraction folder into a proper mod folder by
// renaming it to NewName next to where it sits. The temp folder must still
// exist and the chosen name must not. Returns the final mod folder path.
func FinalizeMessy(opts FinalizeOptions) (string, error) {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.TempPath == "" || opts.NewName == "" {
		return "", errors.New(errors.ErrInvalidInput, "temp path and new name are required")
	}
	if base := filepath.Base(opts.NewName); base != opts.NewName || base == "." || base == ".." || strings.ContainsAny(opts.NewName, `/\`) {
		return "", errors.Newf(errors.ErrInvalidInput, "mod name %q must be a plain folder name", opts.NewName)
	}

	if _, err := fsys.Stat(opts.TempPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "temporary installation folder %s not found", opts.TempPath)
	}

	dest := filepath.Join(filepath.Dir(opts.TempPath), opts.NewName)
	if _, err := fsys.Stat(dest); err == nil {
		return "", errors.Newf(errors.ErrAlreadyExists, "a mod folder named %q already exists", opts.NewName)
	}

	if err := fsys.Rename(opts.TempPath, dest); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to move %s into place", opts.NewName)
	}

	logger.Info().Str("mod", opts.NewName).Str("path", dest).Msg("Messy installation finalized")
	return dest, nil
}

// CleanupTemp removes a temporary folder left behind by an abandoned
// installation. Removing a path that no longer exists is a no-op, so the
// command can be retried freely.
func CleanupTemp(fsys types.FS, path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path is required")
	}
	if err := resolveFS(fsys).RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove temporary folder %s", path)
	}
	return nil
}

// removeDirIfEmpty removes dir when nothing is left inside it. Best-effort;
// the mods root itself is never removed.
func removeDirIfEmpty(fsys types.FS, dir, modsRoot string) {
	if filepath.Clean(dir) == filepath.Clean(modsRoot) {
		return
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	_ = fsys.Remove(dir)
}
