package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"registrar/internal/domain"
	"registrar/internal/menu"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output %q (must be table, json or yaml)", format)
	}
}

func renderRecords(w io.Writer, format string, records []domain.Record) error {
	switch format {
	case outputJSON, outputYAML:
		fields := make([]domain.Fields, 0, len(records))
		for _, r := range records {
			fields = append(fields, r.Serialize())
		}
		return encode(w, format, fields)
	default:
		return menu.WriteTable(w, records)
	}
}

func renderRecord(w io.Writer, format string, r domain.Record) error {
	switch format {
	case outputJSON, outputYAML:
		return encode(w, format, r.Serialize())
	default:
		return menu.WriteDetails(w, r)
	}
}

func encode(w io.Writer, format string, v any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "could not encode yaml")
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return errors.Wrap(enc.Encode(v), "could not encode json")
}

// statusError turns a business failure into a command error, keeping the
// user-facing message as its text.
type statusError struct {
	st domain.Status
}

func (e *statusError) Error() string { return e.st.Message }
func (e *statusError) Unwrap() error { return e.st.Err }

// report prints a successful status, or returns the failure as an error.
func report(w io.Writer, st domain.Status) error {
	if !st.OK {
		return &statusError{st: st}
	}
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("#39FF14"))
	_, err := fmt.Fprintln(w, style.Render(st.Message))
	return err
}
