// Package install drives the mod installation lifecycle: extracting an
// archive into a temporary folder inside the mods root, classifying its
// top-level directories as new mods or conflicts, staging conflicts for a
// later decision, and finalizing or cleaning up what remains. It also owns
// mod removal, which pairs the on-disk delete with settings reconciliation.
//
// Moves are plain renames and nothing is rolled back: when a multi-step
// operation fails midway, completed moves stay in place and the error
// reports what stopped. Every comparison of mod names is case-insensitive
// while the on-disk casing is preserved.
package install

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/archive"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/filesystem"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// Fallbacks for when the caller leaves the cleanup knobs zero. The config
// package ships the same values as defaults.
const (
	defaultCleanupRetries = 5
	defaultCleanupBackoff = 100 * time.Millisecond
)

// InstallOptions defines the options for the InstallFromArchive command.
type InstallOptions struct {
	// Paths resolves the game's on-disk layout
	Paths types.Pather
	// FileSystem is the filesystem to operate on. Defaults to the OS filesystem
	FileSystem types.FS
	// ArchivePath is the zip or rar archive to install from
	ArchivePath string
	// CleanupRetries bounds the removal attempts for the extraction folder
	CleanupRetries int
	// CleanupBackoff is the initial delay between removal attempts; it
	// doubles after every failure
	CleanupBackoff time.Duration
}

// InstallFromArchive extracts the archive into a temporary folder inside
// the mods root and classifies every top-level directory found there:
// directories whose name matches an existing mod (case-insensitively) move
// into a staging area and are reported as conflicts, the rest move straight
// into the mods root. An archive with no top-level directories is reported
// as messy; its extraction folder is left in place for FinalizeMessy.
//
// The extraction folder is removed afterwards with bounded-backoff retries.
// Removal failure is logged, never returned: a leftover temp folder cannot
// corrupt the mods root.
func InstallFromArchive(ctx context.Context, opts InstallOptions) (*types.InstallationAnalysis, error) {
	logger := logging.GetLogger("install")
	fsys := resolveFS(opts.FileSystem)

	if opts.Paths == nil {
		return nil, errors.New(errors.ErrInvalidInput, "game paths are required")
	}
	if opts.ArchivePath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "archive path is required")
	}

	modsRoot := opts.Paths.ModsRoot()
	if err := fsys.MkdirAll(modsRoot, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create mods folder %s", modsRoot)
	}

	extractDir := opts.Paths.TempExtractPath()
	logger.Info().
		Str("archive", opts.ArchivePath).
		Str("extractDir", extractDir).
		Msg("Installing mods from archive")

	if err := archive.Extract(ctx, fsys, opts.ArchivePath, extractDir); err != nil {
		return nil, err
	}

	entries, err := fsys.ReadDir(extractDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read extraction folder %s", extractDir)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			candidates = append(candidates, entry.Name())
		}
	}

	// No containing folder means the archive dumps loose files. Leave the
	// extraction folder for the user to name via finalize.
	if len(candidates) == 0 {
		suggested := SuggestModName(fsys, extractDir)
		logger.Info().
			Str("path", extractDir).
			Str("suggestedName", suggested).
			Msg("Archive has no mod folders, awaiting finalize")
		return &types.InstallationAnalysis{
			MessyPath:     extractDir,
			SuggestedName: suggested,
		}, nil
	}

	existing, err := existingNames(fsys, modsRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}

	analysis := &types.InstallationAnalysis{}
	stagingDir := ""

	for _, name := range candidates {
		src := filepath.Join(extractDir, name)

		if _, clash := existing[strings.ToLower(name)]; clash {
			if stagingDir == "" {
				stagingDir = opts.Paths.TempStagingPath()
				if err := fsys.MkdirAll(stagingDir, 0755); err != nil {
					return nil, errors.Wrapf(err, errors.ErrIO, "failed to create staging folder %s", stagingDir)
				}
			}
			staged := filepath.Join(stagingDir, name)
			if err := fsys.Rename(src, staged); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIO, "failed to stage conflicting mod %s", name)
			}
			analysis.Conflicts = append(analysis.Conflicts, types.ModInstall{Name: name, Path: staged})
			continue
		}

		dest := filepath.Join(modsRoot, name)
		if err := fsys.Rename(src, dest); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to move mod %s into the mods folder", name)
		}
		analysis.Installed = append(analysis.Installed, types.ModInstall{Name: name, Path: dest})

		// Later candidates that differ only in case must conflict with
		// this one, not overwrite it.
		existing[strings.ToLower(name)] = name
	}

	removeWithRetry(fsys, extractDir, opts.retries(), opts.backoff(), logger)

	logger.Info().
		Int("installed", len(analysis.Installed)).
		Int("conflicts", len(analysis.Conflicts)).
		Msg("Archive installation analyzed")

	return analysis, nil
}

func (o InstallOptions) retries() int {
	if o.CleanupRetries > 0 {
		return o.CleanupRetries
	}
	return defaultCleanupRetries
}

func (o InstallOptions) backoff() time.Duration {
	if o.CleanupBackoff > 0 {
		return o.CleanupBackoff
	}
	return defaultCleanupBackoff
}

// existingNames maps lowercased mods-root entries to their on-disk names.
// The raw filesystem error is returned so callers can distinguish a missing
// mods root.
func existingNames(fsys types.FS, modsRoot string) (map[string]string, error) {
	entries, err := fsys.ReadDir(modsRoot)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(entries))
	for _, entry := range entries {
		names[strings.ToLower(entry.Name())] = entry.Name()
	}
	return names, nil
}

// removeWithRetry removes path, retrying with a doubling backoff to ride
// out transient file handles still held on freshly extracted content.
func removeWithRetry(fsys types.FS, path string, retries int, backoff time.Duration, logger zerolog.Logger) {
	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		if err = fsys.RemoveAll(path); err == nil {
			return
		}
		if attempt < retries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	logger.Warn().Err(err).Str("path", path).Msg("Could not remove extraction folder")
}

func resolveFS(fsys types.FS) types.FS {
	if fsys == nil {
		return filesystem.NewOS()
	}
	return fsys
}
