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
package envelope

import (
	"encoding/json"
	"errors"

	"github.com/awnumar/memguard"

	"github.com/stillfourth/envault/pkg/crypto"
	"github.com/stillfourth/envault/pkg/types"
)

var ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

// Create provisions a brand new envelope: fresh salt, fresh DEK, payload
// sealed under the DEK, DEK wrapped under the passphrase-derived KEK,
// version 1. The iteration count is recorded in the envelope so unlock
// never depends on it; types.DefaultIterations is the sensible choice.
func Create(passphrase string, payload *types.VaultData, iterations int) (*types.Envelope, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	salt, err := crypto.RandomBytes(types.SaltSize)
	if err != nil {
		return nil, err
	}

	kdf := types.KDFInfo{
		Name:       types.KDFNamePBKDF2,
		Salt:       salt,
		Iterations: iterations,
		Hash:       types.KDFHashSHA256,
	}

	kek, err := crypto.DeriveKEK([]byte(passphrase), kdf)
	if err != nil {
		return nil, err
	}
	kekBuf := memguard.NewBufferFromBytes(kek)
	defer kekBuf.Destroy()

	dek, err := crypto.GenerateDEK()
	if err != nil {
		return nil, err
	}
	dekBuf := memguard.NewBufferFromBytes(dek)
	defer dekBuf.Destroy()

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	vaultNonce, vaultCiphertext, err := crypto.Encrypt(dekBuf.Bytes(), plaintext)
	if err != nil {
		return nil, err
	}

	dekNonce, encDek, err := crypto.Encrypt(kekBuf.Bytes(), dekBuf.Bytes())
	if err != nil {
		return nil, err
	}

	return &types.Envelope{
		VaultCiphertext: vaultCiphertext,
		VaultNonce:      vaultNonce,
		EncDEK:          encDek,
		DEKNonce:        dekNonce,
		KDF:             kdf,
		Version:         1,
	}, nil
}

// Unlock recovers the plaintext payload. Both tag checks stand between the
// caller and the payload: the DEK unwrap under the recomputed KEK, then the
// payload itself under the DEK. A failure at either step reports the same
// crypto.AuthError, so callers cannot tell a wrong passphrase from a
// corrupted vault.
func Unlock(env *types.Envelope, passphrase string) (*types.VaultData, error) {
	dekBuf, err := unwrapDEK(env, passphrase)
	if err != nil {
		return nil, err
	}
	defer dekBuf.Destroy()

	plaintext, err := crypto.Decrypt(dekBuf.Bytes(), env.VaultNonce, env.VaultCiphertext)
	if err != nil {
		return nil, err
	}

	var payload types.VaultData
	if err = json.Unmarshal(plaintext, &payload); err != nil {
		return nil, &PayloadError{Err: err}
	}
	return &payload, nil
}

// Rotate replaces the passphrase. The DEK is unwrapped with the old
// passphrase, then re-wrapped under a KEK derived from the new passphrase
// and a fresh salt. The sealed payload is carried over byte for byte and the
// version increments, which is the whole point of the envelope design:
// rotation cost does not depend on payload size.
func Rotate(env *types.Envelope, oldPassphrase, newPassphrase string, iterations int) (*types.Envelope, error) {
	if newPassphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	dekBuf, err := unwrapDEK(env, oldPassphrase)
	if err != nil {
		return nil, err
	}
	defer dekBuf.Destroy()

	salt, err := crypto.RandomBytes(types.SaltSize)
	if err != nil {
		return nil, err
	}

	kdf := types.KDFInfo{
		Name:       types.KDFNamePBKDF2,
		Salt:       salt,
		Iterations: iterations,
		Hash:       types.KDFHashSHA256,
	}

	kek, err := crypto.DeriveKEK([]byte(newPassphrase), kdf)
	if err != nil {
		return nil, err
	}
	kekBuf := memguard.NewBufferFromBytes(kek)
	defer kekBuf.Destroy()

	dekNonce, encDek, err := crypto.Encrypt(kekBuf.Bytes(), dekBuf.Bytes())
	if err != nil {
		return nil, err
	}

	next := env.Clone()
	next.KDF = kdf
	next.EncDEK = encDek
	next.DEKNonce = dekNonce
	next.Version = env.Version + 1
	return next, nil
}

// Reseal writes a new payload into an existing envelope: the DEK is
// unwrapped with the passphrase and the payload sealed under it with a fresh
// nonce. Wrapping, KDF descriptor and version are unchanged, so a reseal is
// invisible to rotation history.
func Reseal(env *types.Envelope, passphrase string, payload *types.VaultData) (*types.Envelope, error) {
	dekBuf, err := unwrapDEK(env, passphrase)
	if err != nil {
		return nil, err
	}
	defer dekBuf.Destroy()

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	vaultNonce, vaultCiphertext, err := crypto.Encrypt(dekBuf.Bytes(), plaintext)
	if err != nil {
		return nil, err
	}

	next := env.Clone()
	next.VaultCiphertext = vaultCiphertext
	next.VaultNonce = vaultNonce
	return next, nil
}

// unwrapDEK validates the envelope, re-derives the KEK and opens the
// wrapped DEK into a locked buffer. The caller owns the buffer and must
// destroy it before returning.
func unwrapDEK(env *types.Envelope, passphrase string) (*memguard.LockedBuffer, error) {
	if env == nil {
		return nil, errors.New("nil envelope")
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	kek, err := crypto.DeriveKEK([]byte(passphrase), env.KDF)
	if err != nil {
		return nil, err
	}
	kekBuf := memguard.NewBufferFromBytes(kek)
	defer kekBuf.Destroy()

	dek, err := crypto.Decrypt(kekBuf.Bytes(), env.DEKNonce, env.EncDEK)
	if err != nil {
		return nil, err
	}
	return memguard.NewBufferFromBytes(dek), nil
}
