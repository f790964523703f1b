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

import "errors"

// SequenceReader is a deterministic stand-in for Rand in tests. It emits an
// incrementing byte stream, so repeated draws are distinct but reproducible.
// Never use outside tests.
type SequenceReader struct {
	next byte
}

func (r *SequenceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

// FailingReader simulates a dead CSPRNG.
type FailingReader struct{}

func (FailingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy pool unavailable")
}
