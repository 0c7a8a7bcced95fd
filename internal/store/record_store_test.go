package store_test

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"registrar/internal/domain"
	"registrar/internal/store"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

func clock() time.Time { return fixedNow }

type recordStoreSuite struct {
	suite.Suite
	path string
	s    *store.RecordFileStore
}

func TestRecordFileStore(t *testing.T) {
	suite.Run(t, &recordStoreSuite{})
}

func (rs *recordStoreSuite) SetupTest() {
	rs.path = filepath.Join(rs.T().TempDir(), "students.json")
	rs.s = rs.reopen()
}

func (rs *recordStoreSuite) reopen() *store.RecordFileStore {
	s, err := store.NewRecordFileStore(rs.path, store.WithClock(clock))
	rs.Require().NoError(err)
	return s
}

func (rs *recordStoreSuite) add(id, name string, age int, grade string, subjects ...string) {
	st, err := rs.s.Add(id, name, age, grade, subjects)
	rs.Require().NoError(err)
	rs.Require().True(st.OK, st.Message)
}

func (rs *recordStoreSuite) TestAddAndGet() {
	st, err := rs.s.Add("S001", "Kavya", 20, "Male", []string{"Python", "DBMS"})
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.Equal("Student added successfully", st.Message)

	rec, ok := rs.s.Get("S001")
	rs.Require().True(ok)
	rs.Equal(domain.Record{
		ID:        "S001",
		Name:      "Kavya",
		Age:       20,
		Grade:     "Male",
		Subjects:  []string{"Python", "DBMS"},
		CreatedAt: "2024-05-06 07:08:09",
	}, rec)
	rs.FileExists(rs.path)
}

func (rs *recordStoreSuite) TestAddDuplicateDoesNotMutate() {
	rs.add("S002", "Riya", 21, "Female", "Java")
	before, err := os.ReadFile(rs.path)
	rs.Require().NoError(err)

	st, err := rs.s.Add("S002", "Someone Else", 99, "X", nil)
	rs.Require().NoError(err)
	rs.False(st.OK)
	rs.Equal("Student with this ID already exists", st.Message)
	rs.ErrorIs(st.Err, domain.ErrDuplicateID)

	rec, _ := rs.s.Get("S002")
	rs.Equal("Riya", rec.Name)
	after, err := os.ReadFile(rs.path)
	rs.Require().NoError(err)
	rs.Equal(before, after)
}

func (rs *recordStoreSuite) TestGetMissing() {
	rec, ok := rs.s.Get("nope")
	rs.False(ok)
	rs.Equal(domain.Record{}, rec)
}

func (rs *recordStoreSuite) TestGetReturnsCopy() {
	rs.add("S001", "Kavya", 20, "Male", "Python")
	rec, _ := rs.s.Get("S001")
	rec.Subjects[0] = "mutated"
	rec.Name = "mutated"

	again, _ := rs.s.Get("S001")
	rs.Equal("Kavya", again.Name)
	rs.Equal([]string{"Python"}, again.Subjects)
}

func (rs *recordStoreSuite) TestUpdatePartial() {
	rs.add("S004", "Neha", 19, "Female", "Python")

	st, err := rs.s.Update("S004", domain.Patch{
		Name: domain.Some("Neha Sharma"),
		Age:  domain.Some(20),
	})
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.Equal("Student updated successfully", st.Message)

	rec, _ := rs.s.Get("S004")
	rs.Equal("Neha Sharma", rec.Name)
	rs.Equal(20, rec.Age)
	rs.Equal("Female", rec.Grade)
	rs.Equal([]string{"Python"}, rec.Subjects)
	rs.Equal("2024-05-06 07:08:09", rec.CreatedAt)
}

func (rs *recordStoreSuite) TestUpdateExplicitZeroValuesApply() {
	rs.add("S003", "Aman", 22, "Male", "C++")

	st, err := rs.s.Update("S003", domain.Patch{
		Age:      domain.Some(0),
		Grade:    domain.Some(""),
		Subjects: domain.Some([]string{}),
	})
	rs.Require().NoError(err)
	rs.True(st.OK)

	rec, _ := rs.s.Get("S003")
	rs.Equal(0, rec.Age)
	rs.Equal("", rec.Grade)
	rs.Empty(rec.Subjects)
	rs.Equal("Aman", rec.Name)
}

func (rs *recordStoreSuite) TestUpdateTrimsSubjects() {
	rs.add("S003", "Aman", 22, "Male")
	_, err := rs.s.Update("S003", domain.Patch{Subjects: domain.Some([]string{" Go ", "", "  ", "Go"})})
	rs.Require().NoError(err)

	rec, _ := rs.s.Get("S003")
	rs.Equal([]string{"Go", "Go"}, rec.Subjects)
}

func (rs *recordStoreSuite) TestUpdateEmptyPatchStillPersists() {
	rs.add("S005", "Rohan", 23, "Male", "PHP")
	require.NoError(rs.T(), os.Remove(rs.path))

	st, err := rs.s.Update("S005", domain.Patch{})
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.FileExists(rs.path)

	rec, _ := rs.reopen().Get("S005")
	rs.Equal("Rohan", rec.Name)
}

func (rs *recordStoreSuite) TestUpdateNotFound() {
	st, err := rs.s.Update("BU999", domain.Patch{Name: domain.Some("Ghost")})
	rs.Require().NoError(err)
	rs.False(st.OK)
	rs.Equal("Student not found", st.Message)
	rs.ErrorIs(st.Err, domain.ErrNotFound)
	rs.Empty(rs.s.List())
	rs.NoFileExists(rs.path)
}

func (rs *recordStoreSuite) TestDelete() {
	rs.add("S005", "Rohan", 23, "Male", "PHP")

	st, err := rs.s.Delete("S005")
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.Equal("Student deleted successfully", st.Message)

	_, ok := rs.s.Get("S005")
	rs.False(ok)
	_, ok = rs.reopen().Get("S005")
	rs.False(ok)
}

func (rs *recordStoreSuite) TestDeleteNotFound() {
	rs.add("S001", "Kavya", 20, "Male")
	st, err := rs.s.Delete("BU888")
	rs.Require().NoError(err)
	rs.False(st.OK)
	rs.Equal("Student not found", st.Message)
	rs.ErrorIs(st.Err, domain.ErrNotFound)
	rs.Len(rs.s.List(), 1)
}

func (rs *recordStoreSuite) TestListKeepsInsertionOrder() {
	rs.add("S3", "C", 1, "A")
	rs.add("S1", "A", 1, "A")
	rs.add("S2", "B", 1, "A")
	_, err := rs.s.Update("S3", domain.Patch{Name: domain.Some("CC")})
	rs.Require().NoError(err)

	ids := func(recs []domain.Record) []string {
		out := make([]string, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}
	rs.Equal([]string{"S3", "S1", "S2"}, ids(rs.s.List()))
	rs.Equal([]string{"S3", "S1", "S2"}, ids(rs.reopen().List()))
}

func (rs *recordStoreSuite) TestSearch() {
	rs.add("BU005", "Priya", 20, "Female", "Java")
	rs.add("BU006", "Rohan", 23, "Male", "Python")
	rs.add("X100", "Ann", 30, "A+")

	byName := rs.s.Search("priya")
	rs.Require().Len(byName, 1)
	rs.Equal("Priya", byName[0].Name)

	byGrade := rs.s.Search("MALE")
	rs.Len(byGrade, 2, "male is a substring of Female too")

	byID := rs.s.Search("bu00")
	rs.Len(byID, 2)

	rs.Empty(rs.s.Search("zzz"))
	rs.Len(rs.s.Search(""), 3)
}

func (rs *recordStoreSuite) TestPersistenceFidelity() {
	rs.add("A", "Alpha", 1, "G1", "x", "y")
	rs.add("B", "Beta", 2, "G2")
	rs.add("C", "Gamma", 3, "G3", "z")
	_, err := rs.s.Update("B", domain.Patch{Subjects: domain.Some([]string{"m"}), Age: domain.Some(0)})
	rs.Require().NoError(err)
	_, err = rs.s.Delete("A")
	rs.Require().NoError(err)

	rs.Equal(rs.s.List(), rs.reopen().List())
}

func (rs *recordStoreSuite) TestLargeAgesSurviveReload() {
	rs.add("A", "Alpha", 1<<53+1, "G1")
	rs.add("B", "Beta", math.MaxInt64, "G2")
	rs.add("C", "Gamma", math.MinInt64, "G3")

	s := rs.reopen()
	for id, want := range map[string]int{"A": 1<<53 + 1, "B": math.MaxInt64, "C": math.MinInt64} {
		rec, ok := s.Get(id)
		rs.Require().True(ok, id)
		rs.Equal(want, rec.Age, id)
	}
}

func (rs *recordStoreSuite) TestNamesAreNotHTMLEscaped() {
	rs.add("S001", "A<b>&c", 20, "x>y")
	b, err := os.ReadFile(rs.path)
	rs.Require().NoError(err)
	rs.Contains(string(b), `"name": "A<b>&c"`)
	rs.Contains(string(b), `"grade": "x>y"`)

	rec, ok := rs.reopen().Get("S001")
	rs.Require().True(ok)
	rs.Equal("A<b>&c", rec.Name)
}

func (rs *recordStoreSuite) TestFileLayout() {
	rs.add("S001", "Kavya", 20, "Male", "Python", "DBMS")
	b, err := os.ReadFile(rs.path)
	rs.Require().NoError(err)

	want := `{
    "S001": {
        "age": 20,
        "created_at": "2024-05-06 07:08:09",
        "grade": "Male",
        "name": "Kavya",
        "student_id": "S001",
        "subjects": [
            "Python",
            "DBMS"
        ]
    }
}`
	rs.Equal(want, string(b))
}

func (rs *recordStoreSuite) TestExportToCSV() {
	rs.add("S001", "Kavya", 20, "Male", "Python", "DBMS")
	out := filepath.Join(rs.T().TempDir(), "exports", "students.csv")

	st, err := rs.s.ExportToCSV(out)
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.Equal("Student data exported to "+out, st.Message)

	b, err := os.ReadFile(out)
	rs.Require().NoError(err)
	rs.Equal("Student ID,Name,Age,Grade,Subjects,Created At\r\n"+
		"S001,Kavya,20,Male,\"Python, DBMS\",2024-05-06 07:08:09\r\n", string(b))
}

func (rs *recordStoreSuite) TestExportXLSX() {
	rs.add("S001", "Kavya", 20, "Male")
	out := filepath.Join(rs.T().TempDir(), "students.xlsx")

	st, err := rs.s.Export(out, domain.FormatXLSX)
	rs.Require().NoError(err)
	rs.True(st.OK)
	rs.FileExists(out)
}

func (rs *recordStoreSuite) TestExportFailureIsFatal() {
	blocker := filepath.Join(rs.T().TempDir(), "file")
	rs.Require().NoError(os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := rs.s.ExportToCSV(filepath.Join(blocker, "students.csv"))
	rs.Error(err)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := store.NewRecordFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestLoad_ReadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	legacy := `{
    "S010": {"student_id": "S010", "name": "Zed", "age": 30, "grade": "B", "subjects": ["Art"], "created_at": "2023-01-01 00:00:00"},
    "S002": {"student_id": "S002", "name": "Amy", "age": 18, "grade": "A"}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s, err := store.NewRecordFileStore(path, store.WithClock(clock))
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "S010", list[0].ID)
	assert.Equal(t, []string{"Art"}, list[0].Subjects)
	assert.Equal(t, "S002", list[1].ID)
	assert.Equal(t, []string{}, list[1].Subjects)
	assert.Equal(t, "2024-05-06 07:08:09", list[1].CreatedAt)
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `{"S1": `,
		"empty file":       ``,
		"top-level array":  `[]`,
		"entry not object": `{"S1": 5}`,
		"age not integer":  `{"S1": {"student_id": "S1", "name": "n", "age": "ten", "grade": "g"}}`,
		"fractional age":   `{"S1": {"student_id": "S1", "name": "n", "age": 1.5, "grade": "g"}}`,
		"bad subjects":     `{"S1": {"student_id": "S1", "name": "n", "age": 1, "grade": "g", "subjects": [1]}}`,
		"key mismatch":     `{"S1": {"student_id": "S2", "name": "n", "age": 1, "grade": "g"}}`,
		"age out of range": `{"S1": {"student_id": "S1", "name": "n", "age": 9223372036854775808, "grade": "g"}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "students.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := store.NewRecordFileStore(path)
			assert.ErrorIs(t, err, domain.ErrMalformedStorage)
		})
	}
}

func TestLoad_MissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"S1": {"student_id": "S1", "age": 1, "grade": "g"}}`), 0o644))

	_, err := store.NewRecordFileStore(path)
	require.ErrorIs(t, err, domain.ErrMissingField)

	var mf *domain.MissingFieldError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, "name", mf.Field)
}

func TestLoad_FailureKeepsResidentMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	s, err := store.NewRecordFileStore(path)
	require.NoError(t, err)
	_, err = s.Add("S1", "A", 1, "g", nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	assert.Error(t, s.Load())
	assert.Len(t, s.List(), 1)
}

func TestSave_WarnsOnExternalChange(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	path := filepath.Join(t.TempDir(), "students.json")
	s, err := store.NewRecordFileStore(path, store.WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Add("S1", "A", 1, "g", nil)
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	_, err = s.Add("S2", "B", 2, "g", nil)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "changed on disk")

	again, err := store.NewRecordFileStore(path)
	require.NoError(t, err)
	assert.Len(t, again.List(), 2)
}

func TestSave_FailureLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.json")
	s, err := store.NewRecordFileStore(path)
	require.NoError(t, err)

	// A directory squatting on the target makes the rename fail.
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	_, err = s.Add("S1", "A", 1, "g", nil)
	require.Error(t, err)
	_, ok := s.Get("S1")
	assert.False(t, ok)
}
