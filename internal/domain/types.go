package domain

import "strings"

// Fields is the structured form of a Record as stored on disk.
type Fields map[string]any

// Patch lists the fields an update should overwrite. Absent fields are left
// untouched; present fields are applied even when they hold a zero value.
type Patch struct {
	Name     Optional[string]
	Age      Optional[int]
	Grade    Optional[string]
	Subjects Optional[[]string]
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Name.Present() && !p.Age.Present() && !p.Grade.Present() && !p.Subjects.Present()
}

// ApplyTo overwrites the present fields of r. ID and CreatedAt never change.
func (p Patch) ApplyTo(r *Record) {
	if v, ok := p.Name.Get(); ok {
		r.Name = v
	}
	if v, ok := p.Age.Get(); ok {
		r.Age = v
	}
	if v, ok := p.Grade.Get(); ok {
		r.Grade = v
	}
	if v, ok := p.Subjects.Get(); ok {
		r.Subjects = NormalizeSubjects(v)
	}
}

// User-facing outcome messages.
const (
	MsgAdded     = "Student added successfully"
	MsgDuplicate = "Student with this ID already exists"
	MsgUpdated   = "Student updated successfully"
	MsgDeleted   = "Student deleted successfully"
	MsgNotFound  = "Student not found"
	MsgExported  = "Student data exported to %s"
)

// Status is the outcome of a store operation that can fail for an expected
// business reason. Err is one of the package sentinels when OK is false.
type Status struct {
	OK      bool
	Message string
	Err     error
}

// Succeeded returns an OK status.
func Succeeded(msg string) Status { return Status{OK: true, Message: msg} }

// Failed returns a failed status caused by err.
func Failed(err error, msg string) Status { return Status{Message: msg, Err: err} }

// ExportFormat selects the export file layout.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat accepts "csv" or "xlsx" in any case.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, true
	default:
		return "", false
	}
}
