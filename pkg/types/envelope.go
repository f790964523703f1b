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
package types

import (
	"encoding/base64"
	"encoding/json"
)

var b64enc = base64.StdEncoding.Strict()

// KDFInfo records exactly how the key encryption key was derived for an
// envelope. The parameters are data, not code constants: unlock reads them
// back from storage so the work factor can be raised on rotation without
// breaking envelopes written under the old settings.
type KDFInfo struct {
	Name       string
	Salt       []byte
	Iterations int
	Hash       string
}

// Envelope is the persisted unit of the vault. The payload is sealed under a
// random data encryption key (DEK) and the DEK travels alongside it, wrapped
// under the passphrase-derived KEK. Both ciphertexts carry their GCM
// authentication tag appended, per the Go AEAD convention.
//
// The wire format is a JSON object:
//
//	{
//	  "vaultCiphertext": base64,
//	  "vaultNonce":      base64 (12 bytes),
//	  "encDek":          base64 (48 bytes: 32 byte key + 16 byte tag),
//	  "dekNonce":        base64 (12 bytes),
//	  "kdf":             {"name": "PBKDF2", "salt": base64, "iterations": int, "hash": "SHA-256"},
//	  "version":         int
//	}
//
// All base64 is strict, padded, standard alphabet. Version increments on
// every passphrase rotation and never otherwise.
type Envelope struct {
	VaultCiphertext []byte
	VaultNonce      []byte
	EncDEK          []byte
	DEKNonce        []byte
	KDF             KDFInfo
	Version         int
}

type kdfJSON struct {
	Name       string `json:"name"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	Hash       string `json:"hash"`
}

type envelopeJSON struct {
	VaultCiphertext string  `json:"vaultCiphertext"`
	VaultNonce      string  `json:"vaultNonce"`
	EncDek          string  `json:"encDek"`
	DekNonce        string  `json:"dekNonce"`
	KDF             kdfJSON `json:"kdf"`
	Version         int     `json:"version"`
}

// Clone returns a deep copy. Rotation and reseal build their result from a
// copy so a failure part way through never leaves the caller's envelope
// half-updated.
func (e *Envelope) Clone() *Envelope {
	c := &Envelope{
		VaultCiphertext: append([]byte(nil), e.VaultCiphertext...),
		VaultNonce:      append([]byte(nil), e.VaultNonce...),
		EncDEK:          append([]byte(nil), e.EncDEK...),
		DEKNonce:        append([]byte(nil), e.DEKNonce...),
		KDF: KDFInfo{
			Name:       e.KDF.Name,
			Salt:       append([]byte(nil), e.KDF.Salt...),
			Iterations: e.KDF.Iterations,
			Hash:       e.KDF.Hash,
		},
		Version: e.Version,
	}
	return c
}

// Validate checks the structural invariants of an envelope. It is called on
// every unmarshal so malformed input is rejected at the parse boundary and
// never reaches the cryptographic routines.
func (e *Envelope) Validate() error {
	switch {
	case len(e.VaultCiphertext) == 0:
		return MissingFieldError{Field: "vaultCiphertext"}
	case len(e.EncDEK) == 0:
		return MissingFieldError{Field: "encDek"}
	case len(e.VaultNonce) == 0:
		return MissingFieldError{Field: "vaultNonce"}
	case len(e.DEKNonce) == 0:
		return MissingFieldError{Field: "dekNonce"}
	}

	if len(e.VaultNonce) != NonceSize {
		return LengthError{Field: "vaultNonce", Want: NonceSize, Got: len(e.VaultNonce)}
	}
	if len(e.DEKNonce) != NonceSize {
		return LengthError{Field: "dekNonce", Want: NonceSize, Got: len(e.DEKNonce)}
	}
	if len(e.EncDEK) != WrappedKeySize {
		return LengthError{Field: "encDek", Want: WrappedKeySize, Got: len(e.EncDEK)}
	}

	// A vault ciphertext is at least an authentication tag.
	if len(e.VaultCiphertext) < TagSize {
		return InvalidFieldError{Field: "vaultCiphertext", Reason: "shorter than a GCM tag"}
	}

	if e.Version < 1 {
		return InvalidFieldError{Field: "version", Reason: "must be >= 1"}
	}

	return e.KDF.Validate()
}

// Validate checks the KDF descriptor. Unknown names and hashes are reported
// as unsupported rather than as a wrong passphrase: a future format revision
// must not be mistaken for an authentication failure.
func (k *KDFInfo) Validate() error {
	if k.Name == "" {
		return MissingFieldError{Field: "kdf.name"}
	}
	if k.Name != KDFNamePBKDF2 {
		return UnsupportedKDFError{Name: k.Name}
	}
	if k.Hash != KDFHashSHA256 {
		return UnsupportedHashError{Hash: k.Hash}
	}
	if len(k.Salt) < MinSaltSize {
		return InvalidFieldError{Field: "kdf.salt", Reason: "too short"}
	}
	if k.Iterations < 1 {
		return InvalidFieldError{Field: "kdf.iterations", Reason: "must be >= 1"}
	}
	return nil
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		VaultCiphertext: b64enc.EncodeToString(e.VaultCiphertext),
		VaultNonce:      b64enc.EncodeToString(e.VaultNonce),
		EncDek:          b64enc.EncodeToString(e.EncDEK),
		DekNonce:        b64enc.EncodeToString(e.DEKNonce),
		KDF: kdfJSON{
			Name:       e.KDF.Name,
			Salt:       b64enc.EncodeToString(e.KDF.Salt),
			Iterations: e.KDF.Iterations,
			Hash:       e.KDF.Hash,
		},
		Version: e.Version,
	})
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var (
		wire envelopeJSON
		err  error
	)
	if err = json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if e.VaultCiphertext, err = b64field("vaultCiphertext", wire.VaultCiphertext); err != nil {
		return err
	}
	if e.VaultNonce, err = b64field("vaultNonce", wire.VaultNonce); err != nil {
		return err
	}
	if e.EncDEK, err = b64field("encDek", wire.EncDek); err != nil {
		return err
	}
	if e.DEKNonce, err = b64field("dekNonce", wire.DekNonce); err != nil {
		return err
	}
	if e.KDF.Salt, err = b64field("kdf.salt", wire.KDF.Salt); err != nil {
		return err
	}
	e.KDF.Name = wire.KDF.Name
	e.KDF.Iterations = wire.KDF.Iterations
	e.KDF.Hash = wire.KDF.Hash
	e.Version = wire.Version

	return e.Validate()
}

func b64field(field, src string) ([]byte, error) {
	if src == "" {
		return nil, nil
	}
	dst, err := b64enc.DecodeString(src)
	if err != nil {
		return nil, EncodingError{Field: field, Err: err}
	}
	return dst, nil
}
