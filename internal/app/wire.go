package app

import (
	"log/slog"

	"registrar/internal/domain"
	"registrar/internal/services/auth"
	"registrar/internal/store"
)

// Wire bundles the stores and services used by the CLI.
type Wire struct {
	Records     domain.RecordStore
	Credentials domain.CredentialStore
	Auth        *auth.Service
	Log         *slog.Logger
}

// NewWire constructs the dependency graph from cfg. The records file is read
// here, so a malformed file fails before any command runs.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.Default()
	}

	// File-based stores
	records, err := store.NewRecordFileStore(cfg.DataFile, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	credentials := store.NewCredentialFileStore(cfg.Home)

	// High-level services
	authSvc := auth.New(credentials,
		auth.WithMaxAttempts(cfg.Auth.MaxAttempts),
		auth.WithLogger(log),
	)

	return &Wire{
		Records:     records,
		Credentials: credentials,
		Auth:        authSvc,
		Log:         log,
	}, nil
}
