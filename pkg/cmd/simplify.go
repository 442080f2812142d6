// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/va5ve/swift/pkg/rewrite/driver"
	"github.com/va5ve/swift/pkg/rewrite/property"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] rules_file",
	Short: "simplify substitutions across a rule table.",
	Long: `Drive the substitution-simplification passes over a given
	rule table until no further rules are produced, then print the
	resulting table with any rules added highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config := readConfig(cmd)
		system := readRulesFile(args[0])
		initial := system.Len()
		//
		sweeps, err := driver.Run(system, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if GetFlag(cmd, "check") {
			checkProofs(system)
		}
		//
		fmt.Printf("fixed point after %d sweep(s), %d rule(s) added\n", sweeps, system.Len()-initial)
		printRules(system, initial, config.Print.Proofs)
		//
		if config.Print.Diffs {
			printDiffs(system)
		}
		//
		if config.Print.Properties {
			printProperties(property.NewMap(system))
		}
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().String("config", "", "Read driver configuration from a file")
	simplifyCmd.Flags().Uint("max-iterations", 0, "Override the sweep budget")
	simplifyCmd.Flags().Bool("check", false, "Replay the proof attached to every rule")
	simplifyCmd.Flags().Bool("diffs", false, "Print interned substitution diffs")
	simplifyCmd.Flags().Bool("proofs", false, "Print rule proofs")
	simplifyCmd.Flags().Bool("properties", false, "Print the final property map")
}

// readConfig determines the driver configuration, starting from the
// configuration file (where given) and applying any command-line overrides.
func readConfig(cmd *cobra.Command) driver.Config {
	config := driver.DefaultConfig()
	//
	if filename := GetString(cmd, "config"); filename != "" {
		var err error
		//
		if config, err = driver.LoadConfig(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if n := GetUint(cmd, "max-iterations"); n != 0 {
		config.MaxIterations = n
	}
	//
	config.Print.Diffs = config.Print.Diffs || GetFlag(cmd, "diffs")
	config.Print.Proofs = config.Print.Proofs || GetFlag(cmd, "proofs")
	config.Print.Properties = config.Print.Properties || GetFlag(cmd, "properties")
	//
	return config
}
