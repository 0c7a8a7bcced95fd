package crypto

import "runtime"

// Wipe zeroes b. Best-effort: it keeps b live past the clear so the write
// is not elided.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(&b)
}
