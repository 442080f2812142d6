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
	"fmt"

	"github.com/va5ve/swift/pkg/util"
)

// SimplifySubstitutions reduces every substitution of the given symbol to its
// normal form, returning the rebuilt symbol and a flag indicating whether
// anything changed.  The symbol's kind must carry substitutions.  When a
// proof path is given, the decomposition into substitutions and the eventual
// reassembly are recorded explicitly, so that the path replays from the term
// owning the symbol to the term owning the rebuilt symbol.  When nothing
// changes the path is rolled back to its length on entry, leaving no trace.
func (rs *System) SimplifySubstitutions(symbol Symbol, path *Path) (Symbol, bool) {
	if !symbol.Kind().HasSubstitutions() {
		panic(fmt.Sprintf("cannot simplify substitutions of %s symbol", symbol.Kind()))
	}
	//
	substitutions := symbol.Substitutions()
	n := uint(len(substitutions))
	// Fully concrete symbols have nothing to simplify.
	if n == 0 {
		return symbol, false
	}
	//
	mark := path.Len()
	// Push all substitutions onto the primary stack, then stage all but the
	// first onto the secondary stack.
	if path != nil {
		path.Add(NewDecomposeStep(n, false))
		//
		for i := uint(1); i < n; i++ {
			path.Add(NewShiftStep(false))
		}
	}
	//
	newSubstitutions := make([]Term, 0, n)
	anyChanged := false
	//
	for i, substitution := range substitutions {
		// Bring the next substitution back onto the primary stack.
		if i != 0 && path != nil {
			path.Add(NewShiftStep(true))
		}
		//
		nsub, changed := rs.Reduce(substitution, path)
		anyChanged = anyChanged || changed
		//
		newSubstitutions = append(newSubstitutions, nsub)
	}
	// Collect the simplified substitutions back into a single term.
	if path != nil {
		path.Add(NewDecomposeStep(n, true))
	}
	//
	if !anyChanged {
		path.RollbackScaffolding(mark)
		return symbol, false
	}
	//
	return symbol.WithSubstitutions(newSubstitutions), true
}

// SimplifyLeftHandSideSubstitutions visits every rule whose left-hand side
// ends in a substitution-carrying symbol and simplifies those substitutions.
// Where this produces a new left-hand side, a rule rewriting it to the
// original right-hand side is added, carrying a proof of the equivalence.
// Each rule is visited at most once, permanently: its substitution status is
// advanced whether or not a new rule results.  The cursor re-reads the live
// rule count so that rules appended mid-pass are visited before the pass
// ends.
func (rs *System) SimplifyLeftHandSideSubstitutions() {
	for id := uint(0); id < rs.Len(); id++ {
		rule := rs.Rule(id)
		//
		if rule.IsSubstitutionSimplified() {
			continue
		}
		//
		lhs := rule.LHS()
		symbol := lhs.Trailing()
		//
		if !symbol.Kind().HasSubstitutions() {
			continue
		}
		//
		var path Path
		// Start from the right-hand side, first undoing this rule to arrive
		// at the original left-hand side.
		path.Add(NewApplyRuleStep(0, 0, id, true))
		//
		nsymbol, changed := rs.SimplifySubstitutions(symbol, &path)
		// Visited now, never again.
		rule.MarkSubstitutionSimplified()
		//
		if !changed {
			continue
		}
		// Invert the path so it runs from the new left-hand side to the
		// original right-hand side.
		proof := path.Invert()
		rs.AddRule(lhs.WithTrailing(nsymbol), rule.RHS(), util.Some(proof))
	}
}
