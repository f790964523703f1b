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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stillfourth/envault/pkg/envelope"
	"github.com/stillfourth/envault/pkg/passphrase"
	"github.com/stillfourth/envault/pkg/types"
)

var initGenerate bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision a new, empty vault",
	Long: `Creates a fresh envelope for this account and stores it remotely.

The passphrase is taken from ENVAULT_PASSPHRASE, the desktop secrets store,
or an interactive prompt. With --generate a diceware style passphrase is
generated locally and printed once; write it down, it is never stored and
cannot be recovered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var pass string
		if initGenerate {
			if pass, err = passphrase.Generate(passphrase.DefaultWordCount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Your new vault passphrase is:\n\n    %s\n\nIt is never stored and cannot be recovered.\n", pass)
		} else {
			if pass, err = vaultPassphrase(cfg, "Choose a passphrase for your new vault"); err != nil {
				return err
			}
		}

		env, err := envelope.Create(pass, &types.VaultData{}, cfg.Iterations)
		if err != nil {
			return err
		}

		remote, err := newStore(cfg)
		if err != nil {
			return err
		}
		if err = remote.Save(cmd.Context(), env); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Vault created")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initGenerate, "generate", "g", false, "generate a passphrase instead of prompting for one")
}
