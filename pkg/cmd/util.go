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
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/va5ve/swift/pkg/rewrite"
	"golang.org/x/term"
)

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or panics if an error
// arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panics if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a rules file, reporting any syntax error with appropriate
// highlighting.
func readRulesFile(filename string) *rewrite.System {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	text := string(bytes)
	//
	system, serr := rewrite.ParseSystem(text)
	if serr != nil {
		printSyntaxError(filename, serr, text)
		os.Exit(2)
	}
	//
	return system
}

// Replay the proof carried by every rule, checking that it derives the rule
// it is attached to.
func checkProofs(system *rewrite.System) {
	for id := uint(0); id < system.Len(); id++ {
		rule := system.Rule(id)
		//
		if rule.Proof().HasValue() {
			derived := system.Replay(rule.LHS(), rule.Proof().Unwrap())
			//
			if !derived.Equals(rule.RHS()) {
				fmt.Printf("rule %d: proof derives %s, not %s\n", id, derived, rule.RHS())
				os.Exit(2)
			}
		}
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(filename string, err *rewrite.SyntaxError, text string) {
	line, offset, num := findEnclosingLine(err.Index, []rune(text))
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", filename, num, err.Message)
	// Print line
	fmt.Println(string(line))
	// Print highlight
	fmt.Print(strings.Repeat(" ", int(err.Index-offset)))
	fmt.Println("^")
}

// Determine the enclosing line for the given index in a string, returning
// the line along with its starting index and line number.
func findEnclosingLine(index uint, text []rune) ([]rune, uint, uint) {
	num := uint(1)
	start := uint(0)
	// Handle case where we've reached the end-of-file unexpectedly.  This
	// essentially means the error is reported at the end of the last physical
	// line.
	if index >= uint(len(text)) && index > 0 {
		index = index - 1
	}
	// Find the line.
	for i := uint(0); i < uint(len(text)); i++ {
		if i == index {
			return text[start:findEndOfLine(index, text)], start, num
		} else if text[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return text[start:], start, num
}

// Find the end of the enclosing line
func findEndOfLine(index uint, text []rune) uint {
	for i := index; i < uint(len(text)); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return uint(len(text))
}

// maxTextWidth determines how wide lines of output can be, based on the
// terminal (where there is one).
func maxTextWidth() uint {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return uint(w)
	}
	//
	return 80
}

// clip truncates a line to the given width.
func clip(line string, width uint) string {
	runes := []rune(line)
	//
	if uint(len(runes)) <= width {
		return line
	}
	//
	return string(runes[:width-3]) + "..."
}

// ansi returns the given escape sequence, unless stdout is not a terminal or
// colour has been disabled.
func ansi(code string) string {
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		return ""
	}
	//
	return code
}

const (
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)
