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

	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/assert"
)

func Test_SimplifySubstitutions_01(t *testing.T) {
	var (
		rs   = newAbSystem()
		path Path
		s0   = concrete("Box", tm(name("a")), tm(name("b")))
	)
	// Both substitutions reduce.
	s1, changed := rs.SimplifySubstitutions(s0, &path)
	//
	assert.True(t, changed)
	assert.True(t, s1.Equals(concrete("Box", tm(name("a1")), tm(name("b1")))))
	// The path is bracketed by the decomposition and the reassembly.
	assert.Equal(t, NewDecomposeStep(2, false), path.Step(0))
	assert.Equal(t, NewDecomposeStep(2, true), path.Step(path.Len()-1))
	// The path replays from the owning term to the rebuilt one.
	base := tm(NewGenericParamSymbol(0, 0))
	assert.True(t, rs.Replay(base.Append(s0), path).Equals(base.Append(s1)))
}

func Test_SimplifySubstitutions_02(t *testing.T) {
	var (
		rs   = newAbSystem()
		path Path
		s2   = concrete("Box", tm(name("a1")), tm(name("b1")))
	)
	//
	path.Add(NewApplyRuleStep(0, 0, 0, true))
	length := path.Len()
	// Already in normal form: nothing changes and no steps remain.
	s3, changed := rs.SimplifySubstitutions(s2, &path)
	//
	assert.False(t, changed)
	assert.True(t, s3.Equals(s2))
	assert.Equal(t, length, path.Len())
}

func Test_SimplifySubstitutions_03(t *testing.T) {
	rs := newAbSystem()
	// Three substitutions, only the middle one reducible.
	s0 := concrete("Box", tm(name("x")), tm(name("a")), tm(name("y")))
	s1, changed := rs.SimplifySubstitutions(s0, nil)
	//
	assert.True(t, changed)
	// Arity and order are preserved; only the changed index differs.
	assert.Equal(t, 3, len(s1.Substitutions()))
	assert.True(t, s1.Substitutions()[0].Equals(tm(name("x"))))
	assert.True(t, s1.Substitutions()[1].Equals(tm(name("a1"))))
	assert.True(t, s1.Substitutions()[2].Equals(tm(name("y"))))
}

func Test_SimplifySubstitutions_04(t *testing.T) {
	rs := newAbSystem()
	s0 := concrete("Box", tm(name("a")), tm(name("b")))
	//
	s1, changed := rs.SimplifySubstitutions(s0, nil)
	assert.True(t, changed)
	// Simplifying a simplified symbol always reports unchanged.
	s2, changed := rs.SimplifySubstitutions(s1, nil)
	assert.False(t, changed)
	assert.True(t, s2.Equals(s1))
}

func Test_SimplifySubstitutions_05(t *testing.T) {
	rs := newAbSystem()
	// Symbols of other kinds cannot be simplified.
	assert.Panics(t, func() { rs.SimplifySubstitutions(name("a"), nil) })
	assert.Panics(t, func() { rs.SimplifySubstitutions(NewLayoutSymbol("class"), nil) })
}

func Test_SimplifySubstitutions_06(t *testing.T) {
	var (
		rs   = newAbSystem()
		path Path
	)
	// A fully concrete symbol is untouched.
	s0 := concrete("Int")
	s1, changed := rs.SimplifySubstitutions(s0, &path)
	//
	assert.False(t, changed)
	assert.True(t, s1.Equals(s0))
	assert.Equal(t, uint(0), path.Len())
}

func Test_SimplifyLHS_01(t *testing.T) {
	rs := newAbSystem()
	// Trailing symbol carries reducible substitutions.
	lhs := tm(NewGenericParamSymbol(0, 0), concrete("Box", tm(name("a"))))
	rhs := tm(NewGenericParamSymbol(0, 0))
	id := rs.AddRule(lhs, rhs, util.None[Path]())
	//
	rs.SimplifyLeftHandSideSubstitutions()
	// The original rule is marked, and a simplified rule added.
	assert.True(t, rs.Rule(id).IsSubstitutionSimplified())
	//
	added := rs.Rule(rs.Len() - 1)
	assert.True(t, added.LHS().Equals(tm(NewGenericParamSymbol(0, 0), concrete("Box", tm(name("a1"))))))
	assert.True(t, added.RHS().Equals(rhs))
	// The added rule's proof runs from its left side to its right side.
	assert.True(t, added.Proof().HasValue())
	assert.True(t, rs.Replay(added.LHS(), added.Proof().Unwrap()).Equals(rhs))
	// The added rule was itself visited before the pass ended.
	assert.True(t, added.IsSubstitutionSimplified())
}

func Test_SimplifyLHS_02(t *testing.T) {
	rs := newAbSystem()
	// Trailing symbol carries no substitutions: skipped entirely, with its
	// status left in its initial state.
	count := rs.Len()
	rs.SimplifyLeftHandSideSubstitutions()
	//
	assert.Equal(t, count, rs.Len())
	//
	for id := uint(0); id < count; id++ {
		assert.False(t, rs.Rule(id).IsSubstitutionSimplified())
	}
}

func Test_SimplifyLHS_03(t *testing.T) {
	rs := newAbSystem()
	// Already-normal substitutions: no rule added, but the rule is still
	// marked as visited, permanently.
	lhs := tm(NewGenericParamSymbol(0, 0), concrete("Box", tm(name("a1"))))
	rhs := tm(NewGenericParamSymbol(0, 0))
	id := rs.AddRule(lhs, rhs, util.None[Path]())
	count := rs.Len()
	//
	rs.SimplifyLeftHandSideSubstitutions()
	//
	assert.Equal(t, count, rs.Len())
	assert.True(t, rs.Rule(id).IsSubstitutionSimplified())
	// Statuses are monotonic: marking twice is a fault.
	assert.Panics(t, func() { rs.Rule(id).MarkSubstitutionSimplified() })
}

func Test_SimplifyLHS_04(t *testing.T) {
	rs := newAbSystem()
	lhs := tm(NewGenericParamSymbol(0, 0), concrete("Box", tm(name("a"))))
	rhs := tm(NewGenericParamSymbol(0, 0))
	rs.AddRule(lhs, rhs, util.None[Path]())
	//
	rs.SimplifyLeftHandSideSubstitutions()
	count := rs.Len()
	// A second pass finds everything marked and adds nothing.
	rs.SimplifyLeftHandSideSubstitutions()
	assert.Equal(t, count, rs.Len())
}

// ===================================================================
// Test Helpers
// ===================================================================

// newAbSystem returns a system with rules rewriting names "a" and "b" to
// their normal forms "a1" and "b1" respectively.
func newAbSystem() *System {
	rs := NewSystem()
	rs.AddRule(tm(name("a")), tm(name("a1")), util.None[Path]())
	rs.AddRule(tm(name("b")), tm(name("b1")), util.None[Path]())
	//
	return rs
}
