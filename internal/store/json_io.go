package store

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// readJSON reads path into out and reports whether the file existed.
func readJSON(path string, out any) (bool, error) {
	b, err := readFile(path)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, errors.Wrapf(err, "could not decode %s", path)
	}
	return true, nil
}

// writeJSON writes v as indented JSON via writeFile.
func writeJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "could not encode %s", path)
	}
	return writeFile(path, b, mode)
}
