package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// readFile reads the file at path; a missing file yields (nil, nil).
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
// Missing parent directories are created.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory %s", dir)
	}

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "could not create temp file for %s", path)
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "could not write %s", tmp)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "could not chmod %s", tmp)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "could not sync %s", tmp)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "could not swap %s into %s", tmp, path)
	}
	return nil
}
