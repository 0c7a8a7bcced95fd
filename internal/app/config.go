package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"registrar/internal/domain"
	"registrar/internal/services/auth"
	"registrar/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string       `yaml:"home" mapstructure:"home"`           // credential directory, e.g. $HOME/.registrar
	DataFile string       `yaml:"data_file" mapstructure:"data_file"` // records file, e.g. students.json
	LogLevel string       `yaml:"log_level" mapstructure:"log_level"`
	Export   ExportConfig `yaml:"export" mapstructure:"export"`
	Auth     AuthConfig   `yaml:"auth" mapstructure:"auth"`
}

type ExportConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"`
}

type AuthConfig struct {
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	Passphrase  string `yaml:"passphrase" mapstructure:"passphrase"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Home:     defaultHome(),
		DataFile: store.DefaultRecordsFile,
		LogLevel: "warn",
		Export: ExportConfig{
			Path:   filepath.Join("exports", "students.csv"),
			Format: string(domain.FormatCSV),
		},
		Auth: AuthConfig{MaxAttempts: auth.DefaultMaxAttempts},
	}
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".registrar"
	}
	return filepath.Join(home, ".registrar")
}

// NewViper returns a viper instance with defaults, config file search paths
// and REGISTRAR_ environment variables set up.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("home", d.Home)
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("export.path", d.Export.Path)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("auth.max_attempts", d.Auth.MaxAttempts)
	v.SetDefault("auth.passphrase", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Search paths
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "registrar"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "registrar"))
	}

	// Environment variables
	v.SetEnvPrefix("REGISTRAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the config file (if any) into v and returns the validated
// result. A missing config file is not an error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "could not read config")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}
	cfg.Export.Format = strings.ToLower(cfg.Export.Format)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("config: home is required")
	}
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	if _, ok := domain.ParseExportFormat(c.Export.Format); !ok {
		return fmt.Errorf("config: export.format %q is invalid (must be csv or xlsx)", c.Export.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %v", err)
	}
	if c.Auth.MaxAttempts < 1 {
		return fmt.Errorf("config: auth.max_attempts must be at least 1, got %d", c.Auth.MaxAttempts)
	}
	return nil
}

// ExportFormat returns the configured export format.
func (c *Config) ExportFormat() domain.ExportFormat {
	f, _ := domain.ParseExportFormat(c.Export.Format)
	return f
}
