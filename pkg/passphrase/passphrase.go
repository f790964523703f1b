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

// Package passphrase generates human-memorable recovery passphrases from a
// fixed word list. The result is a credential in its own right; whether it
// is also fed to key derivation is the caller's choice.
package passphrase

import (
	"encoding/binary"
	"strings"

	"github.com/stillfourth/envault/pkg/crypto"
)

// DefaultWordCount gives 72 bits of entropy against the 256-word list.
const DefaultWordCount = 9

// Generate returns wordCount space-separated words drawn independently and
// uniformly from the word list. Zero or negative counts fall back to the
// default.
func Generate(wordCount int) (string, error) {
	if wordCount <= 0 {
		wordCount = DefaultWordCount
	}

	picks := make([]string, wordCount)
	for i := range picks {
		n, err := index(len(words))
		if err != nil {
			return "", err
		}
		picks[i] = words[n]
	}
	return strings.Join(picks, " "), nil
}

// index returns a uniform random integer in [0, n). Draws are rejected above
// the largest multiple of n so there is no modulo bias regardless of list
// length; with the current power-of-two list the rejection branch never
// fires.
func index(n int) (int, error) {
	limit := (1 << 16) - (1<<16)%n
	for {
		b, err := crypto.RandomBytes(2)
		if err != nil {
			return 0, err
		}
		v := int(binary.BigEndian.Uint16(b))
		if v < limit {
			return v % n, nil
		}
	}
}
