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

	"github.com/stillfourth/envault/pkg/passphrase"
)

var genphraseWords int

// genphraseCmd represents the genphrase command
var genphraseCmd = &cobra.Command{
	Use:   "genphrase",
	Short: "Generate a memorable passphrase",
	Long: `Generates a diceware style passphrase from a fixed word list using
the system CSPRNG. Nine words carry 72 bits of entropy, which at the
vault's key derivation work factor is far beyond brute force.

The passphrase is only printed. Nothing is stored and no network call is
made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := passphrase.Generate(genphraseWords)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genphraseCmd)
	genphraseCmd.Flags().IntVarP(&genphraseWords, "words", "w", passphrase.DefaultWordCount, "number of words")
}
