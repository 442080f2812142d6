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
package rewrite

import (
	"testing"

	"github.com/va5ve/swift/pkg/util/assert"
)

func Test_ParseTerm_01(t *testing.T) {
	check_RoundTrip(t, "x")
	check_RoundTrip(t, "τ_0_0")
	check_RoundTrip(t, "τ_1_2.[P]")
	check_RoundTrip(t, "τ_0_0.[P:A].[Q:B]")
	check_RoundTrip(t, "[layout: AnyObject]")
	check_RoundTrip(t, "[superclass: Base<τ_0_0>]")
	check_RoundTrip(t, "[concrete: Int]")
	check_RoundTrip(t, "τ_0_0.[concrete: Map<τ_0_0.[P:A], Int>]")
	check_RoundTrip(t, "[concrete: Pair<x, y.[P:A]>]")
}

func Test_ParseTerm_02(t *testing.T) {
	term, err := ParseTerm("τ_0_0.[concrete: Map<τ_0_0, Int>]")
	//
	assert.True(t, err == nil)
	assert.True(t, term.Equals(tm(
		NewGenericParamSymbol(0, 0),
		concrete("Map", tm(NewGenericParamSymbol(0, 0)), tm(name("Int"))))))
}

func Test_ParseTerm_03(t *testing.T) {
	check_SyntaxError(t, "")
	check_SyntaxError(t, "x.")
	check_SyntaxError(t, "[P")
	check_SyntaxError(t, "[layout: ]")
	check_SyntaxError(t, "[concrete: Box<x]")
	check_SyntaxError(t, "τ_0")
	check_SyntaxError(t, "x y")
}

func Test_ParseSystem_01(t *testing.T) {
	system, err := ParseSystem(`
		// a tiny table
		x => y
		τ_0_0.[concrete: Box<x>] => τ_0_0
	`)
	//
	assert.True(t, err == nil)
	assert.Equal(t, uint(2), system.Len())
	assert.True(t, system.Rule(0).LHS().Equals(tm(name("x"))))
	assert.True(t, system.Rule(0).RHS().Equals(tm(name("y"))))
	assert.True(t, system.Rule(1).LHS().Trailing().Equals(concrete("Box", tm(name("x")))))
}

func Test_ParseSystem_02(t *testing.T) {
	// An empty file yields an empty system.
	system, err := ParseSystem("// nothing here\n")
	//
	assert.True(t, err == nil)
	assert.Equal(t, uint(0), system.Len())
}

func Test_ParseSystem_03(t *testing.T) {
	_, err := ParseSystem("x =>\n")
	assert.True(t, err != nil)
}

// ===================================================================
// Test Helpers
// ===================================================================

// check_RoundTrip checks that a term parses, and that printing it back
// yields the original text.
func check_RoundTrip(t *testing.T, text string) {
	term, err := ParseTerm(text)
	//
	if err != nil {
		t.Errorf("parsing %s failed: %s", text, err)
	} else if term.String() != text {
		t.Errorf("expected %s, got %s", text, term.String())
	}
}

func check_SyntaxError(t *testing.T, text string) {
	if _, err := ParseTerm(text); err == nil {
		t.Errorf("expected a syntax error for %s", text)
	}
}
