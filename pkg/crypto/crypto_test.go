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
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stillfourth/envault/pkg/types"
)

func testSalt() []byte {
	salt := make([]byte, types.SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}
	return salt
}

func testKDF(iterations int) types.KDFInfo {
	return types.KDFInfo{
		Name:       types.KDFNamePBKDF2,
		Salt:       testSalt(),
		Iterations: iterations,
		Hash:       types.KDFHashSHA256,
	}
}

func TestDeriveKEKPBKDF2(t *testing.T) {
	tests := []struct {
		passphrase string
		iterations int
		expected   string
	}{
		{"password", 1000, "zuMdnpWDmoMxzhuM8rOO9cJnKdlqDABN2KHkufczVmQ="},
		{"password", 2000, "G8M3n3ZU4db6iIuCGYKjIRZubFL5N6bkuwHF2nZ88e4="},
		{"correct horse battery staple pepper", 1000, "xH/VpBvdChJmuTa3n2UOu20S2CnYikkeQ8fHUkdD/Ro="},
	}

	for _, tt := range tests {
		key, err := DeriveKEK([]byte(tt.passphrase), testKDF(tt.iterations))
		if err != nil {
			t.Fatalf("Expected nil error but got %v", err)
		}
		if k := base64.StdEncoding.EncodeToString(key); k != tt.expected {
			t.Errorf("Expected key %q for %d iterations but got %q", tt.expected, tt.iterations, k)
		}
	}
}

func TestDeriveKEKSaltChangesKey(t *testing.T) {
	kdf := testKDF(1000)
	k1, err := DeriveKEK([]byte("password"), kdf)
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}

	kdf.Salt = append([]byte{0xff}, kdf.Salt[1:]...)
	k2, err := DeriveKEK([]byte("password"), kdf)
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Error("Expected different keys for different salts")
	}
}

func TestDeriveKEKUnsupportedKDF(t *testing.T) {
	kdf := testKDF(1000)
	kdf.Name = "scrypt"

	key, err := DeriveKEK([]byte("password"), kdf)
	if key != nil {
		t.Errorf("Expected nil key but got %v", key)
	}

	var unsupported types.UnsupportedKDFError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedKDFError but got %v", err)
	}
	if unsupported.Name != "scrypt" {
		t.Errorf("Expected KDF name %q but got %q", "scrypt", unsupported.Name)
	}
}

func TestDeriveKEKUnsupportedHash(t *testing.T) {
	kdf := testKDF(1000)
	kdf.Hash = "SHA-512"

	if _, err := DeriveKEK([]byte("password"), kdf); err == nil {
		t.Fatal("Expected error but got nil")
	} else if !errors.As(err, &types.UnsupportedHashError{}) {
		t.Errorf("Expected UnsupportedHashError but got %v", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateDEK()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	plaintext := []byte(`{"entries":[{"name":"example","password":"hunter2"}]}`)
	nonce, ciphertext, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(nonce) != types.NonceSize {
		t.Errorf("Expected %d byte nonce but got %d", types.NonceSize, len(nonce))
	}
	if len(ciphertext) != len(plaintext)+types.TagSize {
		t.Errorf("Expected %d byte ciphertext but got %d", len(plaintext)+types.TagSize, len(ciphertext))
	}

	decrypted, err := Decrypt(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Expected plaintext %q but got %q", plaintext, decrypted)
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	key, _ := GenerateDEK()
	nonce, ciphertext, err := Encrypt(key, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := range ciphertext {
		tampered := append([]byte(nil), ciphertext...)
		tampered[i] ^= 0x01
		if _, err := Decrypt(key, nonce, tampered); !errors.Is(err, AuthError{}) {
			t.Fatalf("Expected AuthError for flipped byte %d but got %v", i, err)
		}
	}

	for i := range nonce {
		tampered := append([]byte(nil), nonce...)
		tampered[i] ^= 0x01
		if _, err := Decrypt(key, tampered, ciphertext); !errors.Is(err, AuthError{}) {
			t.Fatalf("Expected AuthError for flipped nonce byte %d but got %v", i, err)
		}
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	key, _ := GenerateDEK()
	nonce, ciphertext, _ := Encrypt(key, []byte("attack at dawn"))

	tests := []struct {
		name  string
		nonce []byte
		ct    []byte
	}{
		{"short nonce", nonce[:8], ciphertext},
		{"long nonce", append(nonce, 0x00), ciphertext},
		{"truncated ciphertext", nonce, ciphertext[:types.TagSize-1]},
		{"empty ciphertext", nonce, nil},
	}
	for _, tt := range tests {
		if _, err := Decrypt(key, tt.nonce, tt.ct); !errors.Is(err, AuthError{}) {
			t.Errorf("%s: expected AuthError but got %v", tt.name, err)
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	key, _ := GenerateDEK()
	other, _ := GenerateDEK()
	nonce, ciphertext, _ := Encrypt(key, []byte("attack at dawn"))

	if _, err := Decrypt(other, nonce, ciphertext); !errors.Is(err, AuthError{}) {
		t.Errorf("Expected AuthError but got %v", err)
	}
}

func TestEncryptNonceUniqueness(t *testing.T) {
	key, _ := GenerateDEK()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		nonce, _, err := Encrypt(key, []byte("x"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := seen[string(nonce)]; ok {
			t.Fatalf("Nonce repeated after %d encryptions", i)
		}
		seen[string(nonce)] = struct{}{}
	}
}

func TestRandomBytesDeterministicSource(t *testing.T) {
	orig := Rand
	defer func() { Rand = orig }()

	Rand = &SequenceReader{}
	b, err := RandomBytes(4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(b, []byte{0, 1, 2, 3}) {
		t.Errorf("Expected sequence bytes but got %v", b)
	}
}

func TestRandomBytesFailureIsFatal(t *testing.T) {
	orig := Rand
	defer func() { Rand = orig }()

	Rand = FailingReader{}
	var rerr *RandomnessError

	if _, err := RandomBytes(32); !errors.As(err, &rerr) {
		t.Fatalf("Expected RandomnessError but got %v", err)
	}

	if _, _, err := Encrypt(make([]byte, types.KeySize), []byte("x")); !errors.As(err, &rerr) {
		t.Errorf("Expected RandomnessError from Encrypt but got %v", err)
	}

	if _, err := GenerateDEK(); !errors.As(err, &rerr) {
		t.Errorf("Expected RandomnessError from GenerateDEK but got %v", err)
	}
}
