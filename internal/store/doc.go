// Package store provides file-based persistence for registrar.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. Every write goes to a temp file in the
// target directory and is renamed into place, so readers never observe a
// partially written file.
//
// The package includes:
//   - Student records (RecordFileStore), one pretty-printed JSON object
//     keyed by student id, rewritten in full after every mutation
//   - The login verifier (CredentialFileStore)
package store
