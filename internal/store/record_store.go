package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"registrar/internal/domain"
	"registrar/internal/export"
)

// DefaultRecordsFile is the records file used when none is configured.
const DefaultRecordsFile = "students.json"

// RecordFileStore keeps every student record in memory and rewrites the whole
// records file after each mutation.
type RecordFileStore struct {
	path string
	mu   sync.Mutex

	records *recordMap
	// digest of the bytes last read from or written to path.
	digest uint64

	now func() time.Time
	log *slog.Logger
}

// Option configures a RecordFileStore.
type Option func(*RecordFileStore)

// WithClock replaces time.Now for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *RecordFileStore) { s.now = now }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(s *RecordFileStore) { s.log = l }
}

// NewRecordFileStore opens the records file at path and loads it. A missing
// file yields an empty store; malformed content is an error.
func NewRecordFileStore(path string, opts ...Option) (*RecordFileStore, error) {
	if path == "" {
		path = DefaultRecordsFile
	}
	s := &RecordFileStore{
		path:    path,
		records: newRecordMap(),
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the records file location.
func (s *RecordFileStore) Path() string { return s.path }

// Load replaces the resident mapping with the file contents. On error the
// resident mapping is left as it was.
func (s *RecordFileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := readFile(s.path)
	if err != nil {
		return err
	}
	if data == nil {
		s.records = newRecordMap()
		s.digest = 0
		s.log.Debug("records file absent, starting empty", "path", s.path)
		return nil
	}

	records, err := decodeRecords(data, s.now())
	if err != nil {
		return errors.Wrapf(err, "could not load %s", s.path)
	}
	s.records = records
	s.digest = xxhash.Sum64(data)
	s.log.Debug("records loaded", "path", s.path, "count", records.Len(), "digest", fmt.Sprintf("%016x", s.digest))
	return nil
}

// Save rewrites the records file from the resident mapping.
func (s *RecordFileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.records)
}

// Add inserts a new record. An existing id is reported through the status and
// leaves the store untouched.
func (s *RecordFileStore) Add(id, name string, age int, grade string, subjects []string) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records.Get(id); exists {
		return domain.Failed(domain.ErrDuplicateID, domain.MsgDuplicate), nil
	}

	next := s.cloneRecords()
	next.Set(id, domain.NewRecordAt(s.now(), id, name, age, grade, subjects...))
	if err := s.commit(next); err != nil {
		return domain.Status{}, err
	}
	return domain.Succeeded(domain.MsgAdded), nil
}

// Get returns a copy of the record stored under id.
func (s *RecordFileStore) Get(id string) (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records.Get(id)
	if !ok {
		return domain.Record{}, false
	}
	return rec.Clone(), true
}

// Update applies the present fields of p to the record under id and persists
// the mapping, even when p is empty.
func (s *RecordFileStore) Update(id string, p domain.Patch) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records.Get(id)
	if !ok {
		return domain.Failed(domain.ErrNotFound, domain.MsgNotFound), nil
	}

	updated := rec.Clone()
	p.ApplyTo(&updated)

	next := s.cloneRecords()
	next.Set(id, updated)
	if err := s.commit(next); err != nil {
		return domain.Status{}, err
	}
	return domain.Succeeded(domain.MsgUpdated), nil
}

// Delete removes the record under id and persists the mapping.
func (s *RecordFileStore) Delete(id string) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records.Get(id); !ok {
		return domain.Failed(domain.ErrNotFound, domain.MsgNotFound), nil
	}

	next := s.cloneRecords()
	next.Delete(id)
	if err := s.commit(next); err != nil {
		return domain.Status{}, err
	}
	return domain.Succeeded(domain.MsgDeleted), nil
}

// List returns copies of all records in insertion order.
func (s *RecordFileStore) List() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(domain.Record) bool { return true })
}

// Search returns the records whose id, name or grade contains term,
// ignoring case.
func (s *RecordFileStore) Search(term string) []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(r domain.Record) bool { return r.Matches(term) })
}

// ExportToCSV writes every record to a CSV file at path.
func (s *RecordFileStore) ExportToCSV(path string) (domain.Status, error) {
	return s.Export(path, domain.FormatCSV)
}

// Export writes every record to path in the given format, creating the
// parent directory when needed.
func (s *RecordFileStore) Export(path string, format domain.ExportFormat) (domain.Status, error) {
	records := s.List()
	if err := export.WriteFile(path, format, records); err != nil {
		return domain.Status{}, err
	}
	s.log.Debug("records exported", "path", path, "format", string(format), "count", len(records))
	return domain.Succeeded(fmt.Sprintf(domain.MsgExported, path)), nil
}

func (s *RecordFileStore) collect(keep func(domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0, s.records.Len())
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		if keep(pair.Value) {
			out = append(out, pair.Value.Clone())
		}
	}
	return out
}

func (s *RecordFileStore) cloneRecords() *recordMap {
	next := newRecordMap()
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		next.Set(pair.Key, pair.Value)
	}
	return next
}

// commit persists next and makes it the resident mapping. If the write
// fails the resident mapping is unchanged.
func (s *RecordFileStore) commit(next *recordMap) error {
	if err := s.write(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

func (s *RecordFileStore) write(records *recordMap) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	// Last writer wins, but say so when someone else got there first.
	if current, err := readFile(s.path); err == nil && current != nil && xxhash.Sum64(current) != s.digest {
		s.log.Warn("records file changed on disk since it was last read; overwriting", "path", s.path)
	}

	if err := writeFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "could not save records to %s", s.path)
	}
	s.digest = xxhash.Sum64(data)
	s.log.Debug("records saved", "path", s.path, "count", records.Len(), "digest", fmt.Sprintf("%016x", s.digest))
	return nil
}

// Compile-time assertion that RecordFileStore implements domain.RecordStore.
var _ domain.RecordStore = (*RecordFileStore)(nil)
