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
	"time"

	"github.com/google/uuid"
)

// Entry is a single credential stored in the vault. Entries only ever exist
// in the clear inside an unlocked VaultData; at rest they are part of the
// envelope's sealed payload.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username,omitempty"`
	Password string    `json:"password,omitempty"`
	URI      string    `json:"uri,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// VaultData is the plaintext payload of an envelope.
type VaultData struct {
	Entries []Entry `json:"entries"`
}

// Find returns the first entry with the given name.
func (v *VaultData) Find(name string) (*Entry, bool) {
	for i := range v.Entries {
		if v.Entries[i].Name == name {
			return &v.Entries[i], true
		}
	}
	return nil, false
}

// Upsert replaces the entry with the same name or appends a new one. New
// entries are assigned a random ID and creation time here so callers only
// fill in the credential fields.
func (v *VaultData) Upsert(e Entry) {
	now := time.Now().UTC()
	for i := range v.Entries {
		if v.Entries[i].Name == e.Name {
			e.ID = v.Entries[i].ID
			e.Created = v.Entries[i].Created
			e.Updated = now
			v.Entries[i] = e
			return
		}
	}
	e.ID = uuid.New()
	e.Created = now
	e.Updated = now
	v.Entries = append(v.Entries, e)
}

// Remove deletes the named entry, reporting whether it was present.
func (v *VaultData) Remove(name string) bool {
	for i := range v.Entries {
		if v.Entries[i].Name == name {
			v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// LoginResponse is the token grant returned by the identity endpoint.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
