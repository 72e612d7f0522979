package audit

import (
	"io"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"cvri18n/internal/errors"
)

// writeBackup stores data gzip-compressed at backup. The original file name
// is recorded in the gzip header.
func writeBackup(fs afero.Fs, backup string, original string, data []byte) error {
	f, err := fs.Create(backup)
	if err != nil {
		return errors.New(errors.WriteFailed, backup, "Failed to create backup "+backup, err)
	}

	zw := gzip.NewWriter(f)
	zw.Name = filepath.Base(original)
	if _, err := zw.Write(data); err != nil {
		_ = f.Close()
		return errors.New(errors.WriteFailed, backup, "Failed to write backup "+backup, err)
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return errors.New(errors.WriteFailed, backup, "Failed to write backup "+backup, err)
	}
	if err := f.Close(); err != nil {
		return errors.New(errors.WriteFailed, backup, "Failed to close backup "+backup, err)
	}
	return nil
}

// ReadBackup returns the uncompressed contents of a backup written by Sort.
func ReadBackup(fs afero.Fs, backup string) ([]byte, error) {
	f, err := fs.Open(backup)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, backup, "Failed to open backup "+backup, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, backup, "Failed to read backup "+backup, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, backup, "Failed to read backup "+backup, err)
	}
	return data, nil
}
