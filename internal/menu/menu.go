package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"registrar/internal/domain"
)

// DefaultExportPath is where action 8 writes unless configured otherwise.
const DefaultExportPath = "exports/students.csv"

// errInputClosed ends the session when the input runs out mid-action.
var errInputClosed = errors.New("input closed")

type action struct {
	key, label string
}

var actions = []action{
	{"1", "Add Student"},
	{"2", "View Student"},
	{"3", "Update Student"},
	{"4", "Delete Student"},
	{"5", "List All Students"},
	{"6", "Search Students"},
	{"7", "Exit"},
	{"8", "Export to CSV"},
}

// Menu drives a domain.RecordStore from line-oriented input.
type Menu struct {
	store        domain.RecordStore
	in           *bufio.Scanner
	out          io.Writer
	exportPath   string
	exportFormat domain.ExportFormat

	title  lipgloss.Style
	key    lipgloss.Style
	header lipgloss.Style
	fail   lipgloss.Style
}

// Option configures a Menu.
type Option func(*Menu)

// WithExport sets the destination and format used by the export action.
func WithExport(path string, format domain.ExportFormat) Option {
	return func(m *Menu) {
		if path != "" {
			m.exportPath = path
		}
		if format != "" {
			m.exportFormat = format
		}
	}
}

// New returns a menu reading from in and writing to out. Styling is only
// applied when out is a colour-capable terminal.
func New(store domain.RecordStore, in io.Reader, out io.Writer, opts ...Option) *Menu {
	r := lipgloss.NewRenderer(out)
	m := &Menu{
		store:        store,
		in:           bufio.NewScanner(in),
		out:          out,
		exportPath:   DefaultExportPath,
		exportFormat: domain.FormatCSV,
		title:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D4AA")),
		key:          r.NewStyle().Bold(true),
		header:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#39FF14")),
		fail:         r.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loops until the user exits or the input is closed. Only fatal store
// errors are returned.
func (m *Menu) Run() error {
	for {
		m.printActions()
		choice, err := m.ask("Enter your choice (1-8): ")
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		var done bool
		switch strings.TrimSpace(choice) {
		case "1":
			err = m.add()
		case "2":
			err = m.view()
		case "3":
			err = m.update()
		case "4":
			err = m.remove()
		case "5":
			err = m.list()
		case "6":
			err = m.search()
		case "7":
			m.println("Thank you for using Student Management System!")
			done = true
		case "8":
			err = m.export()
		default:
			m.println(m.fail.Render("Invalid choice. Please enter a number between 1 and 8."))
		}
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil || done {
			return err
		}
	}
}

func (m *Menu) printActions() {
	m.println("")
	m.println(m.title.Render("Student Management System"))
	for _, a := range actions {
		m.println(m.key.Render(a.key+".") + " " + a.label)
	}
}

func (m *Menu) add() error {
	id, err := m.ask("Enter Student ID: ")
	if err != nil {
		return err
	}
	name, err := m.ask("Enter Student Name: ")
	if err != nil {
		return err
	}
	rawAge, err := m.ask("Enter Student Age: ")
	if err != nil {
		return err
	}
	age, ok := m.parseAge(rawAge)
	if !ok {
		return nil
	}
	grade, err := m.ask("Enter Student Grade: ")
	if err != nil {
		return err
	}
	subjects, err := m.ask("Enter Subjects (comma separated, optional): ")
	if err != nil {
		return err
	}

	st, err := m.store.Add(id, name, age, grade, domain.ParseSubjects(subjects))
	if err != nil {
		return err
	}
	m.status(st)
	return nil
}

func (m *Menu) view() error {
	id, err := m.ask("Enter Student ID to view: ")
	if err != nil {
		return err
	}
	rec, ok := m.store.Get(id)
	if !ok {
		m.println(m.fail.Render(domain.MsgNotFound))
		return nil
	}
	m.println("")
	m.println(m.header.Render("Student Details:"))
	return WriteDetails(m.out, rec)
}

// update treats a blank answer as "leave unchanged".
func (m *Menu) update() error {
	id, err := m.ask("Enter Student ID to update: ")
	if err != nil {
		return err
	}
	name, err := m.ask("New Name (leave blank to skip): ")
	if err != nil {
		return err
	}
	rawAge, err := m.ask("New Age (leave blank to skip): ")
	if err != nil {
		return err
	}
	grade, err := m.ask("New Grade (leave blank to skip): ")
	if err != nil {
		return err
	}
	subjects, err := m.ask("New Subjects (comma separated, leave blank to skip): ")
	if err != nil {
		return err
	}

	var p domain.Patch
	if name != "" {
		p.Name = domain.Some(name)
	}
	if strings.TrimSpace(rawAge) != "" {
		age, ok := m.parseAge(rawAge)
		if !ok {
			return nil
		}
		p.Age = domain.Some(age)
	}
	if grade != "" {
		p.Grade = domain.Some(grade)
	}
	if subjects != "" {
		p.Subjects = domain.Some(domain.ParseSubjects(subjects))
	}

	st, err := m.store.Update(id, p)
	if err != nil {
		return err
	}
	m.status(st)
	return nil
}

func (m *Menu) remove() error {
	id, err := m.ask("Enter Student ID to delete: ")
	if err != nil {
		return err
	}
	confirm, err := m.ask(fmt.Sprintf("Are you sure you want to delete student %s? (y/n): ", id))
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(confirm), "y") {
		return nil
	}
	st, err := m.store.Delete(id)
	if err != nil {
		return err
	}
	m.status(st)
	return nil
}

func (m *Menu) list() error {
	records := m.store.List()
	if len(records) == 0 {
		m.println("No students found.")
		return nil
	}
	m.println("")
	m.println(m.header.Render("All Students:"))
	return WriteTable(m.out, records)
}

func (m *Menu) search() error {
	term, err := m.ask("Enter search term (name, ID, or grade): ")
	if err != nil {
		return err
	}
	results := m.store.Search(term)
	if len(results) == 0 {
		m.println("No matching students found.")
		return nil
	}
	m.println("")
	m.println(m.header.Render(fmt.Sprintf("Search Results for '%s':", term)))
	return WriteTable(m.out, results)
}

func (m *Menu) export() error {
	st, err := m.store.Export(m.exportPath, m.exportFormat)
	if err != nil {
		return err
	}
	m.status(st)
	return nil
}

func (m *Menu) parseAge(raw string) (int, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		m.println(m.fail.Render(fmt.Sprintf("Invalid age %q: enter a whole number.", raw)))
		return 0, false
	}
	return age, true
}

func (m *Menu) status(st domain.Status) {
	if st.OK {
		m.println(st.Message)
		return
	}
	m.println(m.fail.Render(st.Message))
}

// ask prints label and returns the next line without its line ending.
func (m *Menu) ask(label string) (string, error) {
	if _, err := io.WriteString(m.out, label); err != nil {
		return "", err
	}
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", errors.Wrap(err, "could not read input")
		}
		m.println("")
		return "", errInputClosed
	}
	return strings.TrimRight(m.in.Text(), "\r"), nil
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
