package auth

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/pkg/errors"

	"registrar/internal/crypto"
	"registrar/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 8

	// DefaultMaxAttempts is how many wrong passphrases Login tolerates.
	DefaultMaxAttempts = 3
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrPassphraseMismatch is returned when the confirmation differs.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
	// ErrNotEnrolled is returned by Verify before any passphrase was set.
	ErrNotEnrolled = errors.New("no passphrase has been set")
)

// Service verifies the local passphrase using a backing credential store.
type Service struct {
	store       domain.CredentialStore
	params      crypto.ScryptParams
	maxAttempts int
	log         *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithScryptParams sets the cost used for newly enrolled passphrases.
func WithScryptParams(p crypto.ScryptParams) Option {
	return func(s *Service) { s.params = p }
}

// WithMaxAttempts bounds the number of passphrase prompts in Login.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns an auth service backed by the given store.
func New(cs domain.CredentialStore, opts ...Option) *Service {
	s := &Service{
		store:       cs,
		params:      crypto.DefaultScryptParams(),
		maxAttempts: DefaultMaxAttempts,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrolled reports whether a passphrase has been set.
func (s *Service) Enrolled() (bool, error) {
	_, ok, err := s.store.LoadVerifier()
	return ok, err
}

// Enroll sets (or replaces) the passphrase.
func (s *Service) Enroll(passphrase string) error {
	if !isSecurePassphrase(passphrase) {
		return ErrWeakPassphrase
	}
	salt, err := crypto.NewSalt()
	if err != nil {
		return err
	}
	hash, err := crypto.DeriveKey(passphrase, salt, s.params)
	if err != nil {
		return err
	}
	v := domain.Verifier{
		Salt: salt,
		N:    s.params.N,
		R:    s.params.R,
		P:    s.params.P,
		Hash: hash,
	}
	if err := s.store.SaveVerifier(v); err != nil {
		return errors.Wrap(err, "could not save passphrase verifier")
	}
	s.log.Info("passphrase enrolled")
	return nil
}

// Verify checks passphrase against the stored verifier.
func (s *Service) Verify(passphrase string) (bool, error) {
	v, ok, err := s.store.LoadVerifier()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotEnrolled
	}
	key, err := crypto.DeriveKey(passphrase, v.Salt, crypto.ScryptParams{N: v.N, R: v.R, P: v.P})
	if err != nil {
		return false, err
	}
	defer crypto.Wipe(key)
	return crypto.Equal(key, v.Hash), nil
}

// Fingerprint returns a short display digest of the stored verifier.
func (s *Service) Fingerprint() (string, error) {
	v, ok, err := s.store.LoadVerifier()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotEnrolled
	}
	return crypto.Fingerprint(v.Salt, v.Hash), nil
}

// Login runs the gate. Without an enrolled passphrase it asks for a new one
// (twice) and enrolls it; otherwise it allows up to the configured number of
// attempts. It returns false when every attempt was wrong.
func (s *Service) Login(p domain.Prompter) (bool, error) {
	enrolled, err := s.Enrolled()
	if err != nil {
		return false, err
	}
	if !enrolled {
		return s.enroll(p)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		pass, err := p.ReadSecret("Passphrase: ")
		if err != nil {
			return false, errors.Wrap(err, "could not read passphrase")
		}
		ok, err := s.Verify(pass)
		if err != nil {
			return false, err
		}
		if ok {
			s.log.Debug("login succeeded", "attempt", attempt)
			return true, nil
		}
		s.log.Warn("wrong passphrase", "attempt", attempt, "max", s.maxAttempts)
	}
	return false, nil
}

func (s *Service) enroll(p domain.Prompter) (bool, error) {
	pass, err := p.ReadSecret("Choose a passphrase: ")
	if err != nil {
		return false, errors.Wrap(err, "could not read passphrase")
	}
	confirm, err := p.ReadSecret("Repeat passphrase: ")
	if err != nil {
		return false, errors.Wrap(err, "could not read passphrase")
	}
	if pass != confirm {
		return false, ErrPassphraseMismatch
	}
	if err := s.Enroll(pass); err != nil {
		return false, err
	}
	return true, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len([]rune(passphrase)) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
