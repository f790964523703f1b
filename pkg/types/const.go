package types

const (
	// KDFNamePBKDF2 is the only key derivation function written by this
	// version. The name is stored in the envelope so the work factor and
	// algorithm can be raised later without breaking old envelopes.
	KDFNamePBKDF2 = "PBKDF2"

	// KDFHashSHA256 is the PRF hash recorded in the KDF descriptor.
	KDFHashSHA256 = "SHA-256"

	// DefaultIterations is the PBKDF2 work factor for newly created and
	// rotated envelopes. Envelopes store their own iteration count, so this
	// constant only applies at creation time.
	DefaultIterations = 600000

	// KeySize is the byte length of both the KEK and the DEK (AES-256).
	KeySize = 32

	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12

	// TagSize is the GCM authentication tag length appended to ciphertexts.
	TagSize = 16

	// SaltSize is the length of freshly drawn KDF salts. Older envelopes are
	// accepted down to MinSaltSize.
	SaltSize = 32

	MinSaltSize = 16

	// WrappedKeySize is the length of the AEAD-wrapped DEK: the raw key plus
	// the authentication tag.
	WrappedKeySize = KeySize + TagSize
)
