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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stillfourth/envault/pkg/envelope"
	"github.com/stillfourth/envault/pkg/passphrase"
	"github.com/stillfourth/envault/pkg/transport"
)

var rotateGenerate bool

// rotateCmd represents the rotate command
var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Change the vault passphrase",
	Long: `Rewraps the data encryption key under a key derived from a new
passphrase. The sealed payload is not touched, so rotation costs the same
whether the vault holds one entry or a thousand, and a copy of the old
envelope plus the old passphrase can no longer unlock anything once the
store accepts the new version.

With --generate the new passphrase is generated locally and printed once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		remote, err := newStore(cfg)
		if err != nil {
			return err
		}

		env, err := remote.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		oldPass, err := vaultPassphrase(cfg, "Please enter your current vault passphrase")
		if err != nil {
			return err
		}

		var newPass string
		if rotateGenerate {
			if newPass, err = passphrase.Generate(passphrase.DefaultWordCount); err != nil {
				return err
			}
		} else {
			var p []byte
			if p, err = getPassphrase("Choose a new vault passphrase"); err != nil {
				return err
			}
			newPass = string(p)
		}

		rotated, err := envelope.Rotate(env, oldPass, newPass, cfg.Iterations)
		if err != nil {
			return err
		}

		if err = remote.Save(cmd.Context(), rotated); err != nil {
			var conflict *transport.ErrConflict
			if errors.As(err, &conflict) {
				return fmt.Errorf("vault changed while rotating, the old passphrase is still in effect: %w", err)
			}
			return err
		}

		if rotateGenerate {
			fmt.Fprintf(cmd.OutOrStdout(), "Your new vault passphrase is:\n\n    %s\n\nIt is never stored and cannot be recovered.\n", newPass)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Passphrase rotated, vault is now at version %d\n", rotated.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rotateCmd)
	rotateCmd.Flags().BoolVarP(&rotateGenerate, "generate", "g", false, "generate the new passphrase instead of prompting for one")
}
