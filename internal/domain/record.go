package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// TimeLayout is the CreatedAt format: YYYY-MM-DD HH:MM:SS in local time.
const TimeLayout = "2006-01-02 15:04:05"

// Serialized field names. They match the records file written by earlier
// versions of the tool, so existing files keep loading.
const (
	FieldID        = "student_id"
	FieldName      = "name"
	FieldAge       = "age"
	FieldGrade     = "grade"
	FieldSubjects  = "subjects"
	FieldCreatedAt = "created_at"
)

// Record is one student.
type Record struct {
	ID        string
	Name      string
	Age       int
	Grade     string
	Subjects  []string
	CreatedAt string
}

// NewRecord builds a record stamped with the current local time.
func NewRecord(id, name string, age int, grade string, subjects ...string) Record {
	return NewRecordAt(time.Now(), id, name, age, grade, subjects...)
}

// NewRecordAt builds a record stamped with now.
func NewRecordAt(now time.Time, id, name string, age int, grade string, subjects ...string) Record {
	return Record{
		ID:        id,
		Name:      name,
		Age:       age,
		Grade:     grade,
		Subjects:  NormalizeSubjects(subjects),
		CreatedAt: now.Format(TimeLayout),
	}
}

// Serialize returns the record as a structured mapping holding all six fields.
func (r Record) Serialize() Fields {
	subjects := make([]string, len(r.Subjects))
	copy(subjects, r.Subjects)
	return Fields{
		FieldID:        r.ID,
		FieldName:      r.Name,
		FieldAge:       r.Age,
		FieldGrade:     r.Grade,
		FieldSubjects:  subjects,
		FieldCreatedAt: r.CreatedAt,
	}
}

// Deserialize rebuilds a record from f. A missing created_at is stamped with
// the current time.
func Deserialize(f Fields) (Record, error) {
	return DeserializeAt(f, time.Now())
}

// DeserializeAt is Deserialize with an explicit fallback time for created_at.
func DeserializeAt(f Fields, now time.Time) (Record, error) {
	var r Record
	var err error

	if r.ID, err = requiredString(f, FieldID); err != nil {
		return Record{}, err
	}
	if r.Name, err = requiredString(f, FieldName); err != nil {
		return Record{}, err
	}
	raw, ok := f[FieldAge]
	if !ok {
		return Record{}, &MissingFieldError{Field: FieldAge}
	}
	if r.Age, err = toInt(raw); err != nil {
		return Record{}, errors.Wrapf(err, "field %q", FieldAge)
	}
	if r.Grade, err = requiredString(f, FieldGrade); err != nil {
		return Record{}, err
	}

	r.Subjects = []string{}
	if raw, ok := f[FieldSubjects]; ok && raw != nil {
		if r.Subjects, err = toStrings(raw); err != nil {
			return Record{}, errors.Wrapf(err, "field %q", FieldSubjects)
		}
	}

	r.CreatedAt = now.Format(TimeLayout)
	if raw, ok := f[FieldCreatedAt]; ok {
		s, isStr := raw.(string)
		if !isStr {
			return Record{}, errors.Wrapf(ErrMalformedStorage, "field %q is %T, want string", FieldCreatedAt, raw)
		}
		r.CreatedAt = s
	}

	return r, nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	var out Record
	if err := copier.CopyWithOption(&out, &r, copier.Option{DeepCopy: true}); err != nil {
		panic("could not copy record: " + err.Error())
	}
	if out.Subjects == nil {
		out.Subjects = []string{}
	}
	return out
}

// Matches reports whether term is a case-insensitive substring of the id,
// name or grade.
func (r Record) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.ID), term) ||
		strings.Contains(strings.ToLower(r.Grade), term)
}

// NormalizeSubjects trims every entry and drops blank ones. Order and
// duplicates are kept. The result is never nil.
func NormalizeSubjects(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseSubjects splits a comma separated list into normalized subjects.
func ParseSubjects(s string) []string {
	return NormalizeSubjects(strings.Split(s, ","))
}

func requiredString(f Fields, key string) (string, error) {
	raw, ok := f[key]
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.Wrapf(ErrMalformedStorage, "field %q is %T, want string", key, raw)
	}
	return s, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.Wrapf(ErrMalformedStorage, "%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		// 20.0 or 2e1 still name an integer.
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, errors.Wrapf(ErrMalformedStorage, "%s is not an integer in range", n)
		}
		return int(f), nil
	default:
		return 0, errors.Wrapf(ErrMalformedStorage, "%T is not a number", v)
	}
}

func toStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Wrapf(ErrMalformedStorage, "subject %v is %T, want string", item, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrMalformedStorage, "%T is not a list", v)
	}
}
