package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/app"
	"registrar/internal/domain"
)

// isolate points every config search path at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())
	return xdg
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := app.LoadConfig(app.NewViper())
	require.NoError(t, err)

	assert.Equal(t, "students.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join("exports", "students.csv"), cfg.Export.Path)
	assert.Equal(t, domain.FormatCSV, cfg.ExportFormat())
	assert.Equal(t, 3, cfg.Auth.MaxAttempts)
	assert.True(t, strings.HasSuffix(cfg.Home, ".registrar"))
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	xdg := isolate(t)
	dir := filepath.Join(xdg, "registrar")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yaml := "data_file: /tmp/records.json\nexport:\n  path: out/all.xlsx\n  format: XLSX\nauth:\n  max_attempts: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("REGISTRAR_LOG_LEVEL", "debug")

	cfg, err := app.LoadConfig(app.NewViper())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/records.json", cfg.DataFile)
	assert.Equal(t, "out/all.xlsx", cfg.Export.Path)
	assert.Equal(t, domain.FormatXLSX, cfg.ExportFormat())
	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*app.Config)
		want   string
	}{
		{"format", func(c *app.Config) { c.Export.Format = "pdf" }, "export.format"},
		{"level", func(c *app.Config) { c.LogLevel = "loud" }, "log_level"},
		{"attempts", func(c *app.Config) { c.Auth.MaxAttempts = 0 }, "max_attempts"},
		{"data file", func(c *app.Config) { c.DataFile = "" }, "data_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := app.DefaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("REGISTRAR_EXPORT_FORMAT", "pdf")
	_, err := app.LoadConfig(app.NewViper())
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "warning", "error"} {
		_, err := app.ParseLevel(s)
		assert.NoError(t, err, s)
	}
	_, err := app.ParseLevel("trace")
	assert.Error(t, err)
}

type answers []string

func (a *answers) ReadSecret(string) (string, error) {
	next := (*a)[0]
	*a = (*a)[1:]
	return next, nil
}

func TestWireAndLogin(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.DataFile = filepath.Join(t.TempDir(), "students.json")
	cfg.Auth.MaxAttempts = 2

	w, err := app.NewWire(*cfg, nil)
	require.NoError(t, err)
	a := app.New(cfg, w)

	enroll := answers{"Str0ng-Pass", "Str0ng-Pass"}
	require.NoError(t, a.Login(&enroll))

	wrong := answers{"nope", "still-nope"}
	assert.ErrorIs(t, a.Login(&wrong), domain.ErrBadCredentials)

	right := answers{"nope", "Str0ng-Pass"}
	require.NoError(t, a.Login(&right))

	var out bytes.Buffer
	require.NoError(t, a.Menu(strings.NewReader("5\n7\n"), &out).Run())
	assert.Contains(t, out.String(), "No students found.")
}

func TestNewWire_MalformedRecords(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.DataFile = filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("{not json"), 0o644))

	_, err := app.NewWire(*cfg, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedStorage)
}
