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

// Reduce rewrites the given term to its normal form under the current rule
// table, reporting whether anything changed.  Rewriting is deterministic: at
// each step the leftmost matching occurrence is rewritten and, amongst rules
// matching at the same position, the one with the lowest identifier wins.
// Every applied rule is recorded on the proof path (if given), with offsets
// identifying the rewritten region within the term.  Reduction terminates
// provided the rule table does, which is the responsibility of the procedure
// that produced it.
func (rs *System) Reduce(term Term, path *Path) (Term, bool) {
	changed := false
	//
	for {
		nterm, ok := rs.reduceOnce(term, path)
		if !ok {
			return term, changed
		}
		//
		term, changed = nterm, true
	}
}

// reduceOnce performs a single rewriting step, if any rule applies.
func (rs *System) reduceOnce(term Term, path *Path) (Term, bool) {
	symbols := term.Symbols()
	//
	for start := uint(0); start < term.Len(); start++ {
		for id := uint(0); id < rs.Len(); id++ {
			lhs := rs.Rule(id).LHS()
			//
			if !matchesAt(symbols, lhs, start) {
				continue
			}
			//
			end := term.Len() - start - lhs.Len()
			//
			if path != nil {
				path.Add(NewApplyRuleStep(start, end, id, false))
			}
			//
			return splice(symbols, rs.Rule(id).RHS(), start, lhs.Len()), true
		}
	}
	//
	return term, false
}

// matchesAt checks whether the given subterm occurs within symbols at the
// given offset.
func matchesAt(symbols []Symbol, subterm Term, start uint) bool {
	if start+subterm.Len() > uint(len(symbols)) {
		return false
	}
	//
	for i, s := range subterm.Symbols() {
		if !symbols[start+uint(i)].Equals(s) {
			return false
		}
	}
	//
	return true
}

// splice replaces count symbols at the given offset with the given
// replacement term, producing a new term.
func splice(symbols []Symbol, replacement Term, start uint, count uint) Term {
	nsymbols := make([]Symbol, 0, uint(len(symbols))-count+replacement.Len())
	nsymbols = append(nsymbols, symbols[:start]...)
	nsymbols = append(nsymbols, replacement.Symbols()...)
	nsymbols = append(nsymbols, symbols[start+count:]...)
	//
	return NewTerm(nsymbols...)
}
