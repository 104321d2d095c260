package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// createNew writes a new file at path through fn.  The data goes to a
// temporary file in the same directory which is linked into place only
// after fn succeeds, so path is never overwritten and never left half
// written.
func createNew(path string, fn func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Link(tmpName, path); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}
