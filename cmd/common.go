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
package cmd

import (
	"context"
	"log"

	"github.com/stillfourth/envault/pkg/auth"
	"github.com/stillfourth/envault/pkg/config"
	"github.com/stillfourth/envault/pkg/envelope"
	"github.com/stillfourth/envault/pkg/store"
	"github.com/stillfourth/envault/pkg/tools"
	"github.com/stillfourth/envault/pkg/transport"
	"github.com/stillfourth/envault/pkg/types"
)

var (
	serverOverride   string
	identityOverride string
	nonInteractive   bool
)

// These are referenced as variables to enable them to be mocked in tests
var (
	fatal func(format string, v ...interface{}) = func(format string, v ...interface{}) {
		log.Fatalf(format, v...)
	}
	getPassphrase func(description string) ([]byte, error) = func(description string) ([]byte, error) {
		return tools.GetPassword("envault", description, "Passphrase: ")
	}
)

// loadConfig loads the client config, applies command line overrides and
// checks both endpoints are known.
func loadConfig() (*config.Config, error) {
	c := config.New()
	if err := c.Load(); err != nil {
		return nil, err
	}
	if serverOverride != "" {
		c.Server = serverOverride
	}
	if identityOverride != "" {
		c.Identity = identityOverride
	}
	return c, c.Validate()
}

// newStore wires the envelope store client: config, client credentials and
// the token source that trades them for bearer tokens.
func newStore(cfg *config.Config) (*store.Client, error) {
	clientID, clientSecret, err := cfg.Credentials(!nonInteractive)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenSource(transport.DefaultHttpClient, cfg.Identity, auth.Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		DeviceID:     cfg.Device,
	})
	return store.New(transport.DefaultHttpClient, cfg.Server, tokens), nil
}

// unlockRemote fetches the stored envelope and unlocks it with the user's
// passphrase. It returns the decrypted payload together with the envelope
// and passphrase so callers that write back can reseal without a second
// prompt or fetch.
func unlockRemote(ctx context.Context) (*types.VaultData, *types.Envelope, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, "", err
	}

	remote, err := newStore(cfg)
	if err != nil {
		return nil, nil, "", err
	}

	env, err := remote.Fetch(ctx)
	if err != nil {
		return nil, nil, "", err
	}

	passphrase, err := vaultPassphrase(cfg, "Please enter your vault passphrase")
	if err != nil {
		return nil, nil, "", err
	}

	data, err := envelope.Unlock(env, passphrase)
	if err != nil {
		return nil, nil, "", err
	}
	return data, env, passphrase, nil
}

// vaultPassphrase prefers the environment and secrets store, prompting only
// when interactive.
func vaultPassphrase(cfg *config.Config, description string) (string, error) {
	if p, err := cfg.Passphrase(false); err == nil {
		return string(p), nil
	}
	if nonInteractive {
		return "", envelope.ErrEmptyPassphrase
	}
	p, err := getPassphrase(description)
	if err != nil {
		return "", err
	}
	return string(p), nil
}
