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
	"github.com/va5ve/swift/pkg/rewrite/property"
)

var debugCmd = &cobra.Command{
	Use:   "debug [flags] rules_file",
	Short: "print a parsed rule table without simplifying it.",
	Long: `Parse a given rule table and print it back, optionally
	together with the property map it induces.  Useful for checking
	what a rules file actually says before simplifying it.`,
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
		system := readRulesFile(args[0])
		printRules(system, system.Len(), false)
		//
		if GetFlag(cmd, "properties") {
			printProperties(property.NewMap(system))
		}
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().Bool("properties", false, "Print the induced property map")
}
