package crypto

import (
	cryptorand "crypto/rand"
	"io"
)

// Rand is the source of every salt, nonce and key generated by this package.
// It is a variable so tests can substitute a deterministic reader, in the
// same way other packages expose their filesystem and prompt entry points
// for mocking.
var Rand io.Reader = cryptorand.Reader

// RandomBytes draws n bytes from Rand. A short or failed read is a
// RandomnessError; there is no fallback source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Rand, b); err != nil {
		return nil, &RandomnessError{Err: err}
	}
	return b, nil
}
