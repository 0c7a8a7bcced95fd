// Package crypto exposes the minimal primitives behind the login gate.
//
// Contents
//
//   - scrypt passphrase hashing with explicit, stored parameters (DeriveKey,
//     ScryptParams, NewSalt)
//   - Constant-time comparison of derived keys (Equal)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints for display (Fingerprint)
//
// # Notes
//
// Parameters are stored next to each verifier so they can be raised later
// without invalidating existing passphrases.
package crypto
