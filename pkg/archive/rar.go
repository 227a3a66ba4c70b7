package archive

import (
	"bytes"
	"context"
	"io"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/nwaples/rardecode/v2"
)

func extractRar(ctx context.Context, fsys types.FS, archivePath, destDir string) error {
	data, err := fsys.ReadFile(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read archive %s", archivePath)
	}

	reader, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtraction, "failed to open rar archive %s", archivePath)
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrExtraction, "extraction cancelled")
		}

		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtraction, "failed to read rar header in %s", archivePath)
		}

		// The reader is positioned at this entry's body and Next skips
		// whatever is left unread. Directory headers carry no body, so
		// extractEntry must not read from the reader for them.
		err = extractEntry(fsys, destDir, header.Name, header.IsDir, func() (io.ReadCloser, error) {
			return io.NopCloser(reader), nil
		})
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtraction, "failed to extract %s", header.Name)
		}
	}
}
