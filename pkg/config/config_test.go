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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillfourth/envault/pkg/types"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	cp := filepath.Join(t.TempDir(), "client.yaml")
	orig := ConfigPath
	ConfigPath = func() string { return cp }
	t.Cleanup(func() { ConfigPath = orig })
	return cp
}

func TestLoadWithoutConfigFile(t *testing.T) {
	useTempConfig(t)

	c := New()
	require.NoError(t, c.Load())
	assert.Equal(t, types.DefaultIterations, c.Iterations)
	_, err := uuid.Parse(c.Device)
	assert.NoError(t, err, "missing device id must be generated")
}

func TestLoadFromYaml(t *testing.T) {
	cp := useTempConfig(t)
	data := []byte(
		"server: https://api.example.com\n" +
			"identity: https://identity.example.com\n" +
			"device: 7d9f3a52-5a6b-4f0e-9c1d-2b8e4f6a7c3d\n" +
			"iterations: 900000\n")
	require.NoError(t, os.WriteFile(cp, data, 0600))

	c := New()
	require.NoError(t, c.Load())
	assert.Equal(t, "https://api.example.com", c.Server)
	assert.Equal(t, "https://identity.example.com", c.Identity)
	assert.Equal(t, "7d9f3a52-5a6b-4f0e-9c1d-2b8e4f6a7c3d", c.Device)
	assert.Equal(t, 900000, c.Iterations)
}

func TestEnvironmentOverridesYaml(t *testing.T) {
	cp := useTempConfig(t)
	require.NoError(t, os.WriteFile(cp, []byte("server: https://yaml.example.com\ndevice: x\n"), 0600))
	t.Setenv("ENVAULT_SERVER", "https://env.example.com")

	c := New()
	require.NoError(t, c.Load())
	assert.Equal(t, "https://env.example.com", c.Server)
}

func TestDeviceIdIsPersisted(t *testing.T) {
	cp := useTempConfig(t)

	c := New()
	require.NoError(t, c.Load())

	written, err := os.ReadFile(cp)
	require.NoError(t, err)
	assert.Contains(t, string(written), c.Device)

	again := New()
	require.NoError(t, again.Load())
	assert.Equal(t, c.Device, again.Device)
}

func TestSavePermissions(t *testing.T) {
	cp := useTempConfig(t)

	c := New()
	c.Server = "https://api.example.com"
	require.NoError(t, c.Save())

	info, err := os.Stat(cp)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestValidate(t *testing.T) {
	useTempConfig(t)

	c := New()
	assert.ErrorContains(t, c.Validate(), "no server configured")

	c.Server = "https://api.example.com"
	assert.ErrorContains(t, c.Validate(), "no identity endpoint configured")

	c.Identity = "https://identity.example.com"
	assert.NoError(t, c.Validate())
}

func TestCredentials(t *testing.T) {
	orig := getSecrets
	defer func() { getSecrets = orig }()
	getSecrets = func(bool) map[string][]byte {
		return map[string][]byte{
			"ENVAULT_CLIENTID":     []byte("user.d93cb8da"),
			"ENVAULT_CLIENTSECRET": []byte("hunter2"),
		}
	}

	c := New()
	id, secret, err := c.Credentials(false)
	require.NoError(t, err)
	assert.Equal(t, "user.d93cb8da", id)
	assert.Equal(t, "hunter2", secret)
}

func TestCredentialsMissing(t *testing.T) {
	orig := getSecrets
	defer func() { getSecrets = orig }()
	getSecrets = func(bool) map[string][]byte {
		return map[string][]byte{"ENVAULT_CLIENTID": []byte("user.d93cb8da")}
	}

	c := New()
	_, _, err := c.Credentials(false)
	assert.ErrorContains(t, err, "no client credentials")
}

func TestPassphrase(t *testing.T) {
	orig := getSecrets
	defer func() { getSecrets = orig }()
	getSecrets = func(bool) map[string][]byte {
		return map[string][]byte{"ENVAULT_PASSPHRASE": []byte("correct horse battery staple")}
	}

	c := New()
	p, err := c.Passphrase(false)
	require.NoError(t, err)
	assert.Equal(t, []byte("correct horse battery staple"), p)

	getSecrets = func(bool) map[string][]byte { return map[string][]byte{} }
	_, err = c.Passphrase(false)
	assert.ErrorContains(t, err, "no passphrase")
}
