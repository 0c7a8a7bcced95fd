package menu

import (
	"fmt"
	"io"
	"strings"

	"registrar/internal/domain"
)

const ruleWidth = 60

// WriteTable prints records as fixed-width rows under a header.
func WriteTable(w io.Writer, records []domain.Record) error {
	if _, err := fmt.Fprintf(w, "%-12s %-20s %-5s %-10s %s\n", "ID", "Name", "Age", "Grade", "Subjects"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", ruleWidth)); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%-12s %-20s %-5d %-10s %s\n",
			r.ID, r.Name, r.Age, r.Grade, strings.Join(r.Subjects, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetails prints every field of r on its own line.
func WriteDetails(w io.Writer, r domain.Record) error {
	_, err := fmt.Fprintf(w, "ID: %s\nName: %s\nAge: %d\nGrade: %s\nSubjects: %s\nCreated At: %s\n",
		r.ID, r.Name, r.Age, r.Grade, strings.Join(r.Subjects, ", "), r.CreatedAt)
	return err
}
