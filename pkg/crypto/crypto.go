/*
 *   Copyright 2024 Still Fourth <code@stillfourth.dev>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/stillfourth/envault/pkg/types"
)

// DeriveKEK stretches a passphrase into a 256-bit key encryption key using
// the parameters recorded in the envelope's KDF descriptor. Derivation is
// deterministic: the same passphrase, salt, iteration count and hash always
// produce the same key, which is what makes a stateless unlock possible.
//
// The descriptor is validated before any work is done so that an envelope
// written by a newer format revision is rejected as unsupported rather than
// failing later with a spurious authentication error.
func DeriveKEK(passphrase []byte, kdf types.KDFInfo) ([]byte, error) {
	if err := kdf.Validate(); err != nil {
		return nil, err
	}
	switch kdf.Name {
	case types.KDFNamePBKDF2:
		return pbkdf2.Key(passphrase, kdf.Salt, kdf.Iterations, types.KeySize, sha256.New), nil
	default:
		return nil, types.UnsupportedKDFError{Name: kdf.Name}
	}
}

// GenerateDEK draws a fresh random 256-bit data encryption key. The DEK is
// never derived from the passphrase and is generated exactly once in an
// envelope's life; rotations re-wrap it, they never replace it.
func GenerateDEK() ([]byte, error) {
	return RandomBytes(types.KeySize)
}

// Encrypt seals plaintext under key with AES-256-GCM and a fresh random
// 96-bit nonce. The returned ciphertext has the 16 byte authentication tag
// appended. Nonces are never reused: each call draws a new one, and each key
// in this protocol seals at most a handful of messages, so the birthday
// bound on 96 random bits is negligible.
func Encrypt(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	var aead cipher.AEAD
	if aead, err = newGCM(key); err != nil {
		return nil, nil, err
	}
	if nonce, err = RandomBytes(aead.NonceSize()); err != nil {
		return nil, nil, err
	}
	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return nonce, ciphertext, nil
}

// Decrypt opens an AES-256-GCM ciphertext. Tag verification is atomic with
// decryption: no plaintext is produced unless the whole message
// authenticates. Every failure, including a malformed nonce or truncated
// ciphertext, is reported as the same AuthError.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() || len(ciphertext) < aead.Overhead() {
		return nil, AuthError{}
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, AuthError{}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
