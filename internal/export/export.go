package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"registrar/internal/domain"
)

// ErrUnknownFormat is returned for an export format other than csv or xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// Header is the first row of every export.
var Header = []string{"Student ID", "Name", "Age", "Grade", "Subjects", "Created At"}

// SubjectSeparator joins subjects into one cell.
const SubjectSeparator = ", "

// Row flattens r into export columns.
func Row(r domain.Record) []string {
	return []string{
		r.ID,
		r.Name,
		strconv.Itoa(r.Age),
		r.Grade,
		strings.Join(r.Subjects, SubjectSeparator),
		r.CreatedAt,
	}
}

// WriteFile renders records in format and writes them to path, creating the
// parent directory if it does not exist.
func WriteFile(path string, format domain.ExportFormat, records []domain.Record) error {
	var buf bytes.Buffer
	switch format {
	case domain.FormatCSV:
		if err := WriteCSV(&buf, records); err != nil {
			return err
		}
	case domain.FormatXLSX:
		if err := WriteXLSX(&buf, records); err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "could not create export directory %s", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "could not write export %s", path)
	}
	return nil
}

// FormatForPath picks xlsx for a .xlsx extension and csv otherwise.
func FormatForPath(path string) domain.ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return domain.FormatXLSX
	}
	return domain.FormatCSV
}
