// Package archive extracts mod archives into a destination directory.
//
// Dispatch is by file extension, case-insensitive: .zip and .rar are
// supported, anything else is rejected before the destination is touched.
// Entry paths are confined to the destination directory; an entry that
// climbs out of it fails the extraction.
package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// Extract unpacks the archive at archivePath into destDir, creating it if
// needed. The context is checked between entries, so callers can bound the
// whole extraction with a timeout.
func Extract(ctx context.Context, fsys types.FS, archivePath, destDir string) error {
	logger := logging.GetLogger("archive")

	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip", ".rar":
	default:
		return errors.Newf(errors.ErrUnsupportedFormat, "unsupported archive format: %q", ext)
	}

	if _, err := fsys.Stat(archivePath); err != nil {
		return errors.Wrapf(err, errors.ErrPathNotFound, "archive not found: %s", archivePath)
	}

	if err := fsys.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create extraction directory %s", destDir)
	}

	done := logging.LogOperationStart(logger.With().Str("archive", archivePath).Logger(), "extract")
	defer done()

	if ext == ".zip" {
		return extractZip(ctx, fsys, archivePath, destDir)
	}
	return extractRar(ctx, fsys, archivePath, destDir)
}

// extractEntry writes a single archive entry below destDir. Directory
// entries only create the directory; open is never called for them.
func extractEntry(fsys types.FS, destDir, name string, isDir bool, open func() (io.ReadCloser, error)) error {
	destFile := filepath.Join(destDir, name)

	// Reject entries that escape the destination
	if !strings.HasPrefix(destFile, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return errors.Newf(errors.ErrExtraction, "entry escapes destination: %s", name)
	}

	if isDir {
		return fsys.MkdirAll(destFile, 0755)
	}

	if err := fsys.MkdirAll(filepath.Dir(destFile), 0755); err != nil {
		return err
	}

	rc, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	out, err := fsys.Create(destFile)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, rc)
	return err
}
