package archive

import (
	"archive/zip"
	"bytes"
	"context"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

func extractZip(ctx context.Context, fsys types.FS, archivePath, destDir string) error {
	data, err := fsys.ReadFile(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read archive %s", archivePath)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtraction, "failed to open zip archive %s", archivePath)
	}

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrExtraction, "extraction cancelled")
		}

		err := extractEntry(fsys, destDir, file.Name, file.FileInfo().IsDir(), file.Open)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtraction, "failed to extract %s", file.Name)
		}
	}

	return nil
}
