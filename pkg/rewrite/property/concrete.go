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
	"fmt"

	"github.com/va5ve/swift/pkg/rewrite"
	"github.com/va5ve/swift/pkg/util"
)

// SimplifyWithConcreteSubstitutions is the property-aware counterpart of
// substitution simplification.  Every substitution of the given symbol is
// reduced to normal form; substitutions which were already normal are
// additionally looked up in this map, and those with a known concrete type
// have that fact spliced in.  On any change, a diff describing exactly what
// happened is interned in the underlying system and its identifier returned;
// otherwise nothing is returned and the proof path (if given) is rolled back
// to its length on entry.
//
// Observe that a substitution can both require simplification and have a
// concrete simplified form.  Only the former is recorded here; the caller
// iterates to a fixed point, so the concrete fact is picked up by a later
// sweep.
func (pm *Map) SimplifyWithConcreteSubstitutions(baseTerm rewrite.Term, symbol rewrite.Symbol,
	path *rewrite.Path) util.Option[uint] {
	if !symbol.Kind().HasSubstitutions() {
		panic(fmt.Sprintf("cannot simplify substitutions of %s symbol", symbol.Kind()))
	}
	//
	substitutions := symbol.Substitutions()
	n := uint(len(substitutions))
	// Fully concrete symbols have nothing to simplify.
	if n == 0 {
		return util.None[uint]()
	}
	//
	mark := path.Len()
	// Push all substitutions onto the primary stack, then stage all but the
	// first onto the secondary stack.
	if path != nil {
		path.Add(rewrite.NewDecomposeStep(n, false))
		//
		for i := uint(1); i < n; i++ {
			path.Add(rewrite.NewShiftStep(false))
		}
	}
	//
	var (
		sameTypes     []util.Pair[uint, rewrite.Term]
		concreteTypes []util.Pair[uint, rewrite.Symbol]
	)
	//
	for i, substitution := range substitutions {
		// Bring the next substitution back onto the primary stack.
		if i != 0 && path != nil {
			path.Add(rewrite.NewShiftStep(true))
		}
		//
		if reduced, changed := pm.system.Reduce(substitution, path); changed {
			sameTypes = append(sameTypes, util.NewPair(uint(i), reduced))
		} else if entry, prefix, ok := pm.LookUp(reduced); ok && entry.ConcreteType().HasValue() {
			// The entry may describe a suffix of the substitution term, in
			// which case its own substitutions must be re-expressed against
			// the whole term.
			concreteSymbol := entry.ConcreteType().Unwrap().PrependPrefix(reduced.Symbols()[:prefix])
			concreteTypes = append(concreteTypes, util.NewPair(uint(i), concreteSymbol))
			//
			if path != nil {
				// Splice the concrete type in by undoing the rule which
				// established it, then distribute the prefix into its
				// substitutions.
				path.Add(rewrite.NewApplyRuleStep(prefix, 0, entry.ConcreteTypeRule(), true))
				//
				if prefix != 0 {
					path.Add(rewrite.NewPrefixSubstitutionsStep(prefix, 0, false))
				}
			}
		}
	}
	//
	if len(sameTypes) == 0 && len(concreteTypes) == 0 {
		path.RollbackScaffolding(mark)
		return util.None[uint]()
	}
	//
	diff := rewrite.NewDiff(baseTerm, symbol, sameTypes, concreteTypes)
	id := pm.system.InternDiff(diff)
	// Collect the rewritten substitutions back into a single term.
	if path != nil {
		path.Add(rewrite.NewDecomposeConcreteStep(id, true))
	}
	//
	return util.Some(id)
}

// SimplifyPropertyRuleSubstitutions visits every wholly unprocessed property
// rule and applies property-aware simplification to its trailing left-hand
// symbol.  Where a diff results, a rule rewriting the extended right-hand
// side to the original right-hand side is added, carrying a proof of the
// equivalence.  A single pass does not reach a global fixed point, since the
// rules it adds can expose concrete facts for terms visited earlier; the
// caller iterates (rebuilding this map) until a pass adds no rules.
func (pm *Map) SimplifyPropertyRuleSubstitutions() {
	for id := uint(0); id < pm.system.Len(); id++ {
		rule := pm.system.Rule(id)
		//
		if rule.IsLHSSimplified() || rule.IsRHSSimplified() || rule.IsSubstitutionSimplified() {
			continue
		}
		//
		optSymbol := rule.PropertySymbol()
		//
		if optSymbol.IsEmpty() || !optSymbol.Unwrap().Kind().HasSubstitutions() {
			continue
		}
		//
		var (
			path rewrite.Path
			rhs  = rule.RHS()
		)
		//
		optDiffID := pm.SimplifyWithConcreteSubstitutions(rhs, optSymbol.Unwrap(), &path)
		//
		if optDiffID.IsEmpty() {
			continue
		}
		//
		rule.MarkSubstitutionSimplified()
		//
		diff := pm.system.Diff(optDiffID.Unwrap())
		// The path so far takes the original left-hand side to its
		// replacement.  Invert it, then finish by applying the original rule,
		// yielding a path from the replacement left-hand side to the
		// right-hand side.
		proof := path.Invert()
		proof.Add(rewrite.NewApplyRuleStep(0, 0, id, false))
		//
		pm.system.AddRule(rhs.Append(diff.RHS()), rhs, util.Some(proof))
	}
}
