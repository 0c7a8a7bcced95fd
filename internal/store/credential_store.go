package store

import (
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"registrar/internal/domain"
)

const (
	credentialsFilename = "credentials.json"

	// The current supported version of the verifier format stored on disk.
	verifierFormatVersion = 1
)

// CredentialFileStore persists the login verifier to disk.
type CredentialFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCredentialFileStore returns a CredentialFileStore rooted at dir.
func NewCredentialFileStore(dir string) *CredentialFileStore {
	return &CredentialFileStore{dir: dir}
}

// SaveVerifier writes v, readable by the owner only.
func (s *CredentialFileStore) SaveVerifier(v domain.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.V == 0 {
		v.V = verifierFormatVersion
	}
	return writeJSON(filepath.Join(s.dir, credentialsFilename), v, 0o600)
}

// LoadVerifier reads the verifier; ok is false when none was saved yet.
func (s *CredentialFileStore) LoadVerifier() (domain.Verifier, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v domain.Verifier
	found, err := readJSON(filepath.Join(s.dir, credentialsFilename), &v)
	if err != nil || !found {
		return domain.Verifier{}, false, err
	}
	if v.V > verifierFormatVersion {
		return domain.Verifier{}, false, errors.Errorf("unsupported verifier version %d", v.V)
	}
	if len(v.Salt) == 0 || len(v.Hash) == 0 {
		return domain.Verifier{}, false, errors.New("credentials file has no salt or hash")
	}
	return v, true, nil
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
