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

// Package auth acquires the bearer credential used against the envelope
// store. The cryptographic core never sees tokens; it is handed an
// authenticated transport by its caller.
package auth

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stillfourth/envault/pkg/transport"
	"github.com/stillfourth/envault/pkg/types"
)

// refreshSkew refreshes tokens slightly early so a token does not expire in
// flight between acquisition and the store call.
const refreshSkew = 30 * time.Second

type Credentials struct {
	ClientID     string
	ClientSecret string

	// DeviceID is the persisted device identifier from the client config.
	// When absent or unparseable a fresh one is generated for the session.
	DeviceID string
}

// TokenSource exchanges client credentials for a bearer token and caches it
// until shortly before expiry. The transport retries the grant with backoff,
// which covers sessions that are still establishing server-side.
type TokenSource struct {
	http     transport.HttpClient
	identity string
	creds    Credentials
	deviceID uuid.UUID

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenSource(httpClient transport.HttpClient, identityURL string, creds Credentials) *TokenSource {
	deviceID, err := uuid.Parse(creds.DeviceID)
	if err != nil {
		deviceID = uuid.New()
	}
	return &TokenSource{
		http:     httpClient,
		identity: identityURL,
		creds:    creds,
		deviceID: deviceID,
	}
}

// Token returns a valid bearer credential, logging in again only when the
// cached one is missing or about to expire.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiry.Add(-refreshSkew)) {
		return t.token, nil
	}

	login := urlValues(
		"grant_type", "client_credentials",
		"scope", "vault",
		"client_id", t.creds.ClientID,
		"client_secret", t.creds.ClientSecret,
		"deviceIdentifier", t.deviceID.String(),
	)

	var lr types.LoginResponse
	if err := t.http.Post(ctx, t.identity+"/connect/token", &lr, login); err != nil {
		return "", err
	}
	if lr.AccessToken == "" {
		return "", errors.New("identity endpoint returned no access token")
	}

	t.token = lr.AccessToken
	t.expiry = tokenExpiry(lr)
	return t.token, nil
}

func urlValues(pairs ...string) url.Values {
	if len(pairs)%2 != 0 {
		panic("pairs must be of even length")
	}
	vals := make(url.Values)
	for i := 0; i < len(pairs); i += 2 {
		vals.Set(pairs[i], pairs[i+1])
	}
	return vals
}

// tokenExpiry prefers the token's own exp claim over the grant's relative
// expires_in. The claim is read without signature verification: the server
// is the authority on the token, the client only schedules its refresh.
func tokenExpiry(lr types.LoginResponse) time.Time {
	if exp, err := parseExpiry(lr.AccessToken); err == nil {
		return exp
	}
	return time.Now().Add(time.Duration(lr.ExpiresIn) * time.Second)
}

func parseExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}
