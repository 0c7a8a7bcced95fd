// Package auth implements the login gate in front of the record store.
//
// The first login enrolls a passphrase (subject to a strength policy) and
// stores an scrypt verifier via domain.CredentialStore. Later logins allow a
// bounded number of attempts.
package auth
