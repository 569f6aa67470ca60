package utils

import (
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic streams the document into a temp file next to path and
// renames it into place, so a failed run never leaves a partial file
// behind.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".deckpress-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
