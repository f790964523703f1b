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
	"github.com/stillfourth/envault/pkg/store"
	"github.com/stillfourth/envault/pkg/tools"
	"github.com/stillfourth/envault/pkg/transport"
	"github.com/stillfourth/envault/pkg/types"
)

var setEntry types.Entry

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a vault entry",
	Long: `Fetches the envelope, unlocks it, upserts the named entry and writes
the resealed envelope back. The wrapping and version are untouched; only
the sealed payload changes.

A password omitted on the command line is prompted for so it stays out of
shell history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, env, pass, err := unlockRemote(cmd.Context())
		if err != nil {
			if errors.Is(err, store.ErrNoVault) {
				return fmt.Errorf("no vault provisioned, run 'envault init' first")
			}
			return err
		}

		setEntry.Name = args[0]
		if setEntry.Password == "" && !nonInteractive {
			var p []byte
			if p, err = tools.ReadPassword(fmt.Sprintf("Password for %q: ", setEntry.Name)); err != nil {
				return err
			}
			setEntry.Password = string(p)
		}

		data.Upsert(setEntry)

		resealed, err := envelope.Reseal(env, pass, data)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		remote, err := newStore(cfg)
		if err != nil {
			return err
		}
		if err = remote.Save(cmd.Context(), resealed); err != nil {
			var conflict *transport.ErrConflict
			if errors.As(err, &conflict) {
				return fmt.Errorf("vault changed while editing, fetch and retry: %w", err)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Stored %q\n", setEntry.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVarP(&setEntry.Username, "username", "u", "", "username for this entry")
	setCmd.Flags().StringVarP(&setEntry.Password, "password", "p", "", "password for this entry (prompted if omitted)")
	setCmd.Flags().StringVar(&setEntry.URI, "uri", "", "uri for this entry")
	setCmd.Flags().StringVarP(&setEntry.Notes, "notes", "n", "", "free text notes")
}
