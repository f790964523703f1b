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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "envault",
	Short: "Client-held secrets vault",
	Long: `envault keeps a small vault of secrets on a remote store that never
sees them in the clear. The vault payload is sealed under a random data
encryption key and that key travels alongside it, wrapped under a key
derived from your passphrase. The passphrase, the derived keys and the
plaintext exist only on this machine, only for the life of a command.

Called without a subcommand it lists the entries in the vault.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ctx context.Context = cmd.Context()

		data, _, _, err := unlockRemote(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Username", "URI", "Updated"})
		for _, e := range data.Entries {
			t.AppendRow(table.Row{e.Name, e.Username, e.URI, e.Updated.Format("2006-01-02 15:04")})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fatal("Error: %s", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "envelope store base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&identityOverride, "identity", "", "identity endpoint base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail if a secret is not in the environment or store")
}
