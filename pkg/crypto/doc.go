/*
Package crypto holds the primitives the envelope protocol is built from: a
CSPRNG random source, PBKDF2 key derivation driven by a stored descriptor,
and AES-256-GCM authenticated encryption.

Keys are plain byte slices at this layer. Callers that need to hold key
material across more than one call should seal it in a memguard enclave and
destroy the working buffer when done:

	buf := memguard.NewBufferFromBytes(dek) // wipes dek
	defer buf.Destroy()

	plaintext, err := crypto.Decrypt(buf.Bytes(), nonce, ciphertext)

Nothing in this package caches derived keys. Every unlock recomputes the KEK
from the passphrase and the envelope's stored salt and iteration count, so
the exposure window of key material is the span of a single operation.

The random source is the package variable Rand so tests can substitute a
deterministic reader. Production code must leave it alone: if the platform
CSPRNG fails, operations abort with RandomnessError rather than degrade.
*/
package crypto
