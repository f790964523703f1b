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

// Package store is the client for the remote envelope store: one opaque
// slot per authenticated principal, read and replaced as a whole. Writes
// are never partial, so the envelope's ciphertexts, nonces, KDF descriptor
// and version can only ever change together.
package store

import (
	"context"
	"errors"

	"github.com/stillfourth/envault/pkg/transport"
	"github.com/stillfourth/envault/pkg/types"
)

const envelopePath = "/vault/envelope"

// ErrNoVault means the principal has not provisioned a vault yet.
var ErrNoVault = errors.New("no envelope stored for this account")

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	http   transport.HttpClient
	base   string
	tokens TokenSource
}

func New(httpClient transport.HttpClient, baseURL string, tokens TokenSource) *Client {
	return &Client{
		http:   httpClient,
		base:   baseURL,
		tokens: tokens,
	}
}

// Fetch retrieves the current envelope for the authenticated principal.
func (c *Client) Fetch(ctx context.Context) (*types.Envelope, error) {
	ctx, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var env types.Envelope
	if err = c.http.Get(ctx, c.base+envelopePath, &env); err != nil {
		var notFound *transport.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, ErrNoVault
		}
		return nil, err
	}
	return &env, nil
}

// Save replaces the stored envelope. The envelope is validated first so a
// half-built value can never reach the wire, and the write is a single PUT
// of the whole document. A conflict from the server's read-modify-write
// precondition comes back as transport.ErrConflict; the caller re-fetches
// and reapplies rather than this client retrying blindly.
func (c *Client) Save(ctx context.Context, env *types.Envelope) error {
	if env == nil {
		return errors.New("nil envelope")
	}
	if err := env.Validate(); err != nil {
		return err
	}

	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	return c.http.Put(ctx, c.base+envelopePath, nil, env)
}

func (c *Client) authed(ctx context.Context) (context.Context, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, transport.AuthToken{}, token), nil
}
