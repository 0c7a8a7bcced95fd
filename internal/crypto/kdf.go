package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	SaltBytes = 16
	KeyBytes  = 32
)

// ScryptParams are the scrypt cost parameters.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams returns the parameters used for new verifiers.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// NewSalt returns SaltBytes random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "could not generate salt")
	}
	return salt, nil
}

// DeriveKey stretches passphrase with scrypt into KeyBytes bytes.
func DeriveKey(passphrase string, salt []byte, p ScryptParams) ([]byte, error) {
	pw := []byte(passphrase)
	defer Wipe(pw)

	key, err := scrypt.Key(pw, salt, p.N, p.R, p.P, KeyBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "scrypt N=%d r=%d p=%d", p.N, p.R, p.P)
	}
	return key, nil
}

// Equal compares two derived keys in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
