package crypto

import "fmt"

// AuthError is returned whenever an AEAD tag fails to verify. A wrong
// passphrase and a corrupted envelope are indistinguishable by construction:
// both present as a failed tag check, and the message never says which
// decryption step failed.
type AuthError struct{}

func (AuthError) Error() string {
	return "incorrect passphrase or corrupted vault"
}

// RandomnessError means the platform CSPRNG could not be read. It is fatal
// to the operation that hit it; no operation substitutes a weaker source.
type RandomnessError struct {
	Err error
}

func (e *RandomnessError) Error() string {
	return fmt.Sprintf("random source unavailable: %v", e.Err)
}

func (e *RandomnessError) Unwrap() error {
	return e.Err
}
