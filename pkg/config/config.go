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
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/stillfourth/envault/pkg/tools"
	"github.com/stillfourth/envault/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	ConfigPath func() string                = getConfigPath
	getSecrets func(bool) map[string][]byte = tools.GetSecretsFromUserEnvOrStore
)

// Config holds everything needed to reach the envelope store and the
// identity endpoint. Secrets never live in the file: client credentials and
// the passphrase come from the environment, a desktop secrets store, or an
// interactive prompt.
type Config struct {
	Server     string `yaml:"server" env:"ENVAULT_SERVER"`
	Identity   string `yaml:"identity" env:"ENVAULT_IDENTITY"`
	Device     string `yaml:"device" env:"ENVAULT_DEVICE_ID"`
	Iterations int    `yaml:"iterations" env:"ENVAULT_ITERATIONS"`
}

func New() *Config {
	return &Config{}
}

// Load the config file from the user local config directory
//
// The config file is loaded from ~/.config/envault/client.yaml if it exists
// and then the environment is checked for overrides. A missing device
// identifier is generated and written back so the identity endpoint sees a
// stable device across sessions.
func (c *Config) Load() (err error) {
	if err = c.loadYaml(); err != nil {
		return
	}
	if err = c.loadEnv(); err != nil {
		return
	}

	if c.Iterations == 0 {
		c.Iterations = types.DefaultIterations
	}
	if c.Device == "" {
		c.Device = uuid.NewString()
		err = c.Save()
	}
	return
}

func (c *Config) loadYaml() (err error) {
	var (
		cp       string = ConfigPath()
		yamlFile []byte
	)

	if _, err = os.Stat(cp); errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if yamlFile, err = os.ReadFile(cp); err != nil {
		return err
	}

	log.Printf("Loading config file %s\n", cp)
	return yaml.Unmarshal(yamlFile, c)
}

func (c *Config) loadEnv() (err error) {
	return env.Parse(c)
}

// Validate reports whether the config names both endpoints. It is checked
// before any network command runs so the failure is a config error rather
// than a dial error against an empty URL.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("no server configured: set 'server' in %s or ENVAULT_SERVER", ConfigPath())
	}
	if c.Identity == "" {
		return fmt.Errorf("no identity endpoint configured: set 'identity' in %s or ENVAULT_IDENTITY", ConfigPath())
	}
	return nil
}

func (c *Config) Save() (err error) {
	var data []byte
	if data, err = yaml.Marshal(c); err != nil {
		return err
	}

	var cp string = ConfigPath()
	if err = os.MkdirAll(filepath.Dir(cp), 0700); err != nil {
		return err
	}
	return os.WriteFile(cp, data, 0600)
}

// Credentials returns the API client credentials from the environment or
// secrets store, prompting the user when interactive and nothing is found.
func (c *Config) Credentials(interactive bool) (clientID, clientSecret string, err error) {
	secrets := getSecrets(interactive)
	clientID = string(secrets["ENVAULT_CLIENTID"])
	clientSecret = string(secrets["ENVAULT_CLIENTSECRET"])
	if clientID == "" || clientSecret == "" {
		err = errors.New("no client credentials: set ENVAULT_CLIENTID and ENVAULT_CLIENTSECRET")
	}
	return
}

// Passphrase returns the vault passphrase from the environment or secrets
// store, prompting the user when interactive and nothing is found.
func (c *Config) Passphrase(interactive bool) ([]byte, error) {
	secrets := getSecrets(interactive)
	passphrase := secrets["ENVAULT_PASSPHRASE"]
	if len(passphrase) == 0 {
		return nil, errors.New("no passphrase provided")
	}
	return passphrase, nil
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return fmt.Sprintf("%s/.config/envault/client.yaml", home)
}
