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
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a vault entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, env, pass, err := unlockRemote(cmd.Context())
		if err != nil {
			return err
		}

		if !data.Remove(args[0]) {
			return fmt.Errorf("no entry named %q", args[0])
		}

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
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
