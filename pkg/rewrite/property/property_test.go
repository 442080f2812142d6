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
package property

import (
	"testing"

	"github.com/va5ve/swift/pkg/rewrite"
	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/assert"
)

func Test_Map_01(t *testing.T) {
	rs := rewrite.NewSystem()
	// v.[concrete: Int] => v establishes a concrete type for v.
	id := rs.AddRule(tm(name("v")).Append(concrete("Int")), tm(name("v")), util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	entry, prefix, ok := pm.LookUp(tm(name("v")))
	//
	assert.True(t, ok)
	assert.Equal(t, uint(0), prefix)
	assert.True(t, entry.ConcreteType().HasValue())
	assert.True(t, entry.ConcreteType().Unwrap().Equals(concrete("Int")))
	assert.Equal(t, id, entry.ConcreteTypeRule())
}

func Test_Map_02(t *testing.T) {
	rs := rewrite.NewSystem()
	rs.AddRule(tm(name("v")).Append(concrete("Int")), tm(name("v")), util.None[rewrite.Path]())
	// A longer term matches via its suffix, leaving a prefix behind.
	pm := NewMap(rs)
	entry, prefix, ok := pm.LookUp(tm(name("u"), name("v")))
	//
	assert.True(t, ok)
	assert.Equal(t, uint(1), prefix)
	assert.True(t, entry.Key().Equals(tm(name("v"))))
	// Unrelated terms match nothing.
	_, _, ok = pm.LookUp(tm(name("w")))
	assert.False(t, ok)
}

func Test_Map_03(t *testing.T) {
	rs := rewrite.NewSystem()
	// Superclass and layout facts are recorded in the same shape.
	superclass := rewrite.NewSuperclassSymbol("Base", tm(name("v")))
	superclassRule := rs.AddRule(tm(name("v")).Append(superclass), tm(name("v")),
		util.None[rewrite.Path]())
	layoutRule := rs.AddRule(tm(name("v")).Append(rewrite.NewLayoutSymbol("AnyObject")), tm(name("v")),
		util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	entry, _, ok := pm.LookUp(tm(name("v")))
	//
	assert.True(t, ok)
	assert.True(t, entry.ConcreteType().IsEmpty())
	assert.True(t, entry.Superclass().Unwrap().Equals(superclass))
	assert.Equal(t, superclassRule, entry.SuperclassRule())
	assert.True(t, entry.Layout().Unwrap().Equals(rewrite.NewLayoutSymbol("AnyObject")))
	assert.Equal(t, layoutRule, entry.LayoutRule())
	assert.Equal(t, 1, len(pm.Entries()))
}

func Test_Map_04(t *testing.T) {
	rs := rewrite.NewSystem()
	// The earliest rule establishing a fact wins.
	first := rs.AddRule(tm(name("v")).Append(concrete("Int")), tm(name("v")), util.None[rewrite.Path]())
	rs.AddRule(tm(name("v")).Append(concrete("Bool")), tm(name("v")), util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	entry, _, _ := pm.LookUp(tm(name("v")))
	//
	assert.True(t, entry.ConcreteType().Unwrap().Equals(concrete("Int")))
	assert.Equal(t, first, entry.ConcreteTypeRule())
}

func Test_Concrete_01(t *testing.T) {
	var (
		rs   = rewrite.NewSystem()
		path rewrite.Path
	)
	// Property entry: v is concretely C<z>, via a rule over the key v.
	ruleID := rs.AddRule(tm(name("v")).Append(concrete("C", tm(name("z")))), tm(name("v")),
		util.None[rewrite.Path]())
	//
	var (
		pm     = NewMap(rs)
		base   = tm(gp(0, 0))
		symbol = concrete("Box", tm(name("u"), name("v")))
	)
	// The substitution u.v is already normal, but its suffix v has a known
	// concrete type; the prefix u must be distributed into it.
	optID := pm.SimplifyWithConcreteSubstitutions(base, symbol, &path)
	//
	assert.True(t, optID.HasValue())
	//
	diff := rs.Diff(optID.Unwrap())
	assert.Equal(t, 0, len(diff.SameTypes()))
	assert.Equal(t, 1, len(diff.ConcreteTypes()))
	assert.Equal(t, uint(0), diff.ConcreteTypes()[0].Left)
	assert.True(t, diff.ConcreteTypes()[0].Right.Equals(concrete("C", tm(name("u"), name("z")))))
	// The proof contains the reversed establishing rule, then the prefix
	// distribution.
	assert.Equal(t, rewrite.NewApplyRuleStep(1, 0, ruleID, true), path.Step(1))
	assert.Equal(t, rewrite.NewPrefixSubstitutionsStep(1, 0, false), path.Step(2))
	// And the whole path replays onto the diff's replacement symbol.
	assert.True(t, rs.Replay(base.Append(symbol), path).Equals(base.Append(diff.RHS())))
}

func Test_Concrete_02(t *testing.T) {
	var (
		rs   = rewrite.NewSystem()
		path rewrite.Path
	)
	//
	rs.AddRule(tm(name("a")), tm(name("a1")), util.None[rewrite.Path]())
	//
	var (
		pm     = NewMap(rs)
		base   = tm(gp(0, 0))
		symbol = concrete("Box", tm(name("a")))
	)
	// No property entries: a plain simplification recorded as a same-type
	// replacement.
	optID := pm.SimplifyWithConcreteSubstitutions(base, symbol, &path)
	//
	assert.True(t, optID.HasValue())
	//
	diff := rs.Diff(optID.Unwrap())
	assert.Equal(t, 1, len(diff.SameTypes()))
	assert.True(t, diff.SameTypes()[0].Right.Equals(tm(name("a1"))))
	assert.Equal(t, 0, len(diff.ConcreteTypes()))
	//
	assert.True(t, rs.Replay(base.Append(symbol), path).Equals(base.Append(diff.RHS())))
}

func Test_Concrete_03(t *testing.T) {
	var (
		rs   = rewrite.NewSystem()
		path rewrite.Path
	)
	//
	rs.AddRule(tm(name("a")), tm(name("a1")), util.None[rewrite.Path]())
	//
	var (
		pm     = NewMap(rs)
		base   = tm(gp(0, 0))
		symbol = concrete("Box", tm(name("a1")), tm(name("b")))
	)
	// Nothing to simplify and nothing concrete: absent, path untouched.
	path.Add(rewrite.NewShiftStep(false))
	length := path.Len()
	//
	optID := pm.SimplifyWithConcreteSubstitutions(base, symbol, &path)
	//
	assert.True(t, optID.IsEmpty())
	assert.Equal(t, length, path.Len())
	assert.Equal(t, uint(0), rs.DiffCount())
}

func Test_Concrete_04(t *testing.T) {
	rs := rewrite.NewSystem()
	pm := NewMap(rs)
	// Fully concrete symbols report absent immediately.
	optID := pm.SimplifyWithConcreteSubstitutions(tm(gp(0, 0)), concrete("Int"), nil)
	assert.True(t, optID.IsEmpty())
	// Other kinds are a fault.
	assert.Panics(t, func() {
		pm.SimplifyWithConcreteSubstitutions(tm(gp(0, 0)), name("a"), nil)
	})
}

func Test_ConcreteLHS_01(t *testing.T) {
	rs := rewrite.NewSystem()
	// v is concretely Int; some property rule mentions v in a substitution.
	rs.AddRule(tm(name("v")).Append(concrete("Int")), tm(name("v")), util.None[rewrite.Path]())
	id := rs.AddRule(tm(gp(0, 0)).Append(concrete("Box", tm(name("v")))), tm(gp(0, 0)),
		util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	pm.SimplifyPropertyRuleSubstitutions()
	// The rule is marked and an extended rule added.
	assert.True(t, rs.Rule(id).IsSubstitutionSimplified())
	assert.Equal(t, uint(3), rs.Len())
	//
	var (
		added    = rs.Rule(2)
		expected = concrete("Box", tm(name("v"), concrete("Int")))
	)
	//
	assert.True(t, added.LHS().Equals(tm(gp(0, 0)).Append(expected)))
	assert.True(t, added.RHS().Equals(tm(gp(0, 0))))
	// The proof runs from the extended left-hand side to the right-hand
	// side.
	assert.True(t, added.Proof().HasValue())
	assert.True(t, rs.Replay(added.LHS(), added.Proof().Unwrap()).Equals(added.RHS()))
}

func Test_ConcreteLHS_02(t *testing.T) {
	rs := rewrite.NewSystem()
	// Non-property rules, and property rules without substitutions, are
	// skipped without their status changing.
	rs.AddRule(tm(name("a")), tm(name("b")), util.None[rewrite.Path]())
	rs.AddRule(tm(name("v")).Append(concrete("Int")), tm(name("v")), util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	pm.SimplifyPropertyRuleSubstitutions()
	//
	assert.Equal(t, uint(2), rs.Len())
	assert.False(t, rs.Rule(0).IsSubstitutionSimplified())
	assert.False(t, rs.Rule(1).IsSubstitutionSimplified())
}

func Test_ConcreteLHS_03(t *testing.T) {
	rs := rewrite.NewSystem()
	// A property rule whose substitutions are neither reducible nor
	// concrete is left unmarked, so a later sweep can revisit it.
	rs.AddRule(tm(gp(0, 0)).Append(concrete("Box", tm(name("w")))), tm(gp(0, 0)),
		util.None[rewrite.Path]())
	//
	pm := NewMap(rs)
	pm.SimplifyPropertyRuleSubstitutions()
	//
	assert.Equal(t, uint(1), rs.Len())
	assert.False(t, rs.Rule(0).IsSubstitutionSimplified())
}

// ===================================================================
// Test Helpers
// ===================================================================

func name(n string) rewrite.Symbol {
	return rewrite.NewNameSymbol(n)
}

func gp(depth uint, index uint) rewrite.Symbol {
	return rewrite.NewGenericParamSymbol(depth, index)
}

func concrete(n string, substitutions ...rewrite.Term) rewrite.Symbol {
	return rewrite.NewConcreteTypeSymbol(n, substitutions...)
}

func tm(symbols ...rewrite.Symbol) rewrite.Term {
	return rewrite.NewTerm(symbols...)
}
