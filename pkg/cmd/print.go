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

	"github.com/va5ve/swift/pkg/rewrite"
	"github.com/va5ve/swift/pkg/rewrite/property"
)

// Print the rule table, highlighting rules at or beyond the given
// identifier (i.e. those added by simplification).
func printRules(system *rewrite.System, highlightFrom uint, proofs bool) {
	width := maxTextWidth()
	//
	for id := uint(0); id < system.Len(); id++ {
		rule := system.Rule(id)
		line := clip(fmt.Sprintf("%d: %s%s", id, rule, statusString(rule)), width)
		//
		if id >= highlightFrom {
			fmt.Printf("%s%s%s\n", ansi(ansiGreen), line, ansi(ansiReset))
		} else {
			fmt.Println(line)
		}
		//
		if proofs && rule.Proof().HasValue() {
			proof := rule.Proof().Unwrap()
			fmt.Println(clip(fmt.Sprintf("   proof: %s", proof.String()), width))
		}
	}
}

// Print the interned substitution diffs.
func printDiffs(system *rewrite.System) {
	if system.DiffCount() == 0 {
		return
	}
	//
	width := maxTextWidth()
	//
	fmt.Println("diffs:")
	//
	for id := uint(0); id < system.DiffCount(); id++ {
		diff := system.Diff(id)
		fmt.Println(clip(fmt.Sprintf("%d: %s", id, diff), width))
	}
}

// Print the entries of a property map.
func printProperties(pm *property.Map) {
	entries := pm.Entries()
	//
	if len(entries) == 0 {
		return
	}
	//
	width := maxTextWidth()
	//
	fmt.Println("properties:")
	//
	for _, entry := range entries {
		fmt.Println(clip(entry.String(), width))
	}
}

// statusString summarises which concerns of a rule have been simplified.
func statusString(rule *rewrite.Rule) string {
	var marks string
	//
	if rule.IsLHSSimplified() {
		marks += "l"
	}
	//
	if rule.IsRHSSimplified() {
		marks += "r"
	}
	//
	if rule.IsSubstitutionSimplified() {
		marks += "s"
	}
	//
	if marks == "" {
		return ""
	}
	//
	return fmt.Sprintf(" [%s]", marks)
}
