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
package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillfourth/envault/pkg/transport"
	"github.com/stillfourth/envault/pkg/types"
)

const wireEnvelope = `{
	"vaultCiphertext": "QEFCQ0RFRkdISUpLTE1OT1BRUlNUVVZX",
	"vaultNonce": "AAECAwQFBgcICQoL",
	"encDek": "ZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXp7fH1+f4CBgoOEhYaHiImKi4yNjo+QkZKT",
	"dekNonce": "DA0ODxAREhMUFRYX",
	"kdf": {
		"name": "PBKDF2",
		"salt": "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=",
		"iterations": 600000,
		"hash": "SHA-256"
	},
	"version": 3
}`

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

type failingTokens struct{}

func (failingTokens) Token(ctx context.Context) (string, error) {
	return "", errors.New("identity unavailable")
}

func TestFetchDecodesEnvelope(t *testing.T) {
	mock := &transport.MockHttpClient{Responses: []transport.MockHttpResponse{
		{Code: 200, Body: []byte(wireEnvelope)},
	}}
	c := New(mock, "https://api.example", staticTokens("tok"))

	env, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, env.Version)
	assert.Equal(t, types.KDFNamePBKDF2, env.KDF.Name)
	assert.Len(t, env.EncDEK, types.WrappedKeySize)
}

func TestFetchNoVault(t *testing.T) {
	mock := &transport.MockHttpClient{Responses: []transport.MockHttpResponse{
		{Code: 404, Body: []byte(`{"message":"not found"}`)},
	}}
	c := New(mock, "https://api.example", staticTokens("tok"))

	env, err := c.Fetch(context.Background())
	assert.Nil(t, env)
	assert.ErrorIs(t, err, ErrNoVault)
}

func TestFetchRejectsMalformedEnvelope(t *testing.T) {
	mock := &transport.MockHttpClient{Responses: []transport.MockHttpResponse{
		{Code: 200, Body: []byte(`{"version": 1}`)},
	}}
	c := New(mock, "https://api.example", staticTokens("tok"))

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, types.MissingFieldError{Field: "vaultCiphertext"})
}

func TestFetchTokenFailure(t *testing.T) {
	mock := &transport.MockHttpClient{}
	c := New(mock, "https://api.example", failingTokens{})

	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
	assert.Empty(t, mock.Sent)
}

func TestSaveSendsWholeEnvelope(t *testing.T) {
	mock := &transport.MockHttpClient{Responses: []transport.MockHttpResponse{
		{Code: 204},
	}}
	c := New(mock, "https://api.example", staticTokens("tok"))

	var env types.Envelope
	require.NoError(t, env.UnmarshalJSON([]byte(wireEnvelope)))
	require.NoError(t, c.Save(context.Background(), &env))

	require.Len(t, mock.Sent, 1)
	sent, ok := mock.Sent[0].(*types.Envelope)
	require.True(t, ok)
	assert.Equal(t, env.Version, sent.Version)
}

func TestSaveValidatesBeforeWriting(t *testing.T) {
	mock := &transport.MockHttpClient{}
	c := New(mock, "https://api.example", staticTokens("tok"))

	err := c.Save(context.Background(), &types.Envelope{Version: 1})
	assert.Error(t, err)
	assert.Empty(t, mock.Sent, "invalid envelope must never reach the wire")
}

func TestSaveConflictPropagates(t *testing.T) {
	mock := &transport.MockHttpClient{Responses: []transport.MockHttpResponse{
		{Code: 409, Body: []byte(`{"message":"version conflict"}`)},
	}}
	c := New(mock, "https://api.example", staticTokens("tok"))

	var env types.Envelope
	require.NoError(t, env.UnmarshalJSON([]byte(wireEnvelope)))

	err := c.Save(context.Background(), &env)
	var conflict *transport.ErrConflict
	assert.True(t, errors.As(err, &conflict), "expected ErrConflict, got %v", err)
}
