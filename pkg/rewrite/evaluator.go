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

import "fmt"

// Evaluator replays a proof path over a pair of term stacks, checking every
// step against the terms it claims to rewrite.  Replay failures are internal
// faults: a recorded path which does not replay indicates a corrupted proof,
// and halts the analysis immediately.
type Evaluator struct {
	system *System
	// Terms being actively rewritten.
	primary []Term
	// Terms parked to one side whilst another substitution is rewritten.
	secondary []Term
}

// NewEvaluator constructs an evaluator whose primary stack holds the given
// initial term.
func NewEvaluator(system *System, initial Term) *Evaluator {
	return &Evaluator{system: system, primary: []Term{initial}}
}

// Replay applies the given path to the given term, returning the derived
// term.  The path must leave exactly one term on the primary stack.
func (rs *System) Replay(initial Term, path Path) Term {
	evaluator := NewEvaluator(rs, initial)
	//
	for _, step := range path.Steps() {
		evaluator.Apply(step)
	}
	//
	if len(evaluator.primary) != 1 || len(evaluator.secondary) != 0 {
		panic("path does not derive a single term")
	}
	//
	return evaluator.Current()
}

// Current returns the term at the top of the primary stack.
func (e *Evaluator) Current() Term {
	return e.top()
}

// Apply applies a single step to this evaluator's stacks.
func (e *Evaluator) Apply(step Step) {
	switch step.Kind() {
	case ApplyRule:
		e.applyRule(step)
	case Shift:
		e.applyShift(step)
	case Decompose:
		e.applyDecompose(step)
	case DecomposeConcrete:
		e.applyDecomposeConcrete(step)
	case PrefixSubstitutions:
		e.applyPrefixSubstitutions(step)
	default:
		panic("unreachable")
	}
}

// applyRule rewrites the region of the top term between the step's whiskers
// using the identified rule (right to left when inverted).
func (e *Evaluator) applyRule(step Step) {
	var (
		term = e.top()
		rule = e.system.Rule(step.RuleID())
		from = rule.LHS()
		to   = rule.RHS()
	)
	//
	if step.IsInverse() {
		from, to = to, from
	}
	//
	if term.Len() != step.StartOffset()+from.Len()+step.EndOffset() ||
		!matchesAt(term.Symbols(), from, step.StartOffset()) {
		panic(fmt.Sprintf("rule %d does not apply to %s", step.RuleID(), term))
	}
	//
	e.replaceTop(splice(term.Symbols(), to, step.StartOffset(), from.Len()))
}

// applyShift moves the top term between the primary and secondary stacks.
func (e *Evaluator) applyShift(step Step) {
	if step.IsInverse() {
		n := len(e.secondary)
		if n == 0 {
			panic("secondary stack is empty")
		}
		//
		e.primary = append(e.primary, e.secondary[n-1])
		e.secondary = e.secondary[:n-1]
		//
		return
	}
	//
	n := len(e.primary)
	if n == 0 {
		panic("primary stack is empty")
	}
	//
	e.secondary = append(e.secondary, e.primary[n-1])
	e.primary = e.primary[:n-1]
}

// applyDecompose pushes the substitutions of the top term's trailing symbol
// onto the primary stack or, when inverted, pops them back into the symbol.
func (e *Evaluator) applyDecompose(step Step) {
	count := step.Count()
	//
	if step.IsInverse() {
		substitutions := e.popTerms(count)
		symbol := e.top().Trailing()
		//
		if uint(len(symbol.Substitutions())) != count {
			panic(fmt.Sprintf("expected %d substitutions in %s", count, symbol))
		}
		//
		e.replaceTop(e.top().WithTrailing(symbol.WithSubstitutions(substitutions)))
		//
		return
	}
	//
	symbol := e.top().Trailing()
	//
	if uint(len(symbol.Substitutions())) != count {
		panic(fmt.Sprintf("expected %d substitutions in %s", count, symbol))
	}
	//
	e.primary = append(e.primary, symbol.Substitutions()...)
}

// applyDecomposeConcrete is the diff-directed counterpart of applyDecompose:
// inverted, it pops the diff's replacement substitutions and swaps the
// trailing symbol from the diff's original to its replacement; forwards, it
// undoes exactly that.
func (e *Evaluator) applyDecomposeConcrete(step Step) {
	diff := e.system.Diff(step.DiffID())
	replacements := diff.RHS().Substitutions()
	//
	if step.IsInverse() {
		substitutions := e.popTerms(uint(len(replacements)))
		//
		for i := range substitutions {
			if !substitutions[i].Equals(replacements[i]) {
				panic(fmt.Sprintf("substitution %d does not match diff %d", i, step.DiffID()))
			}
		}
		//
		if !e.top().Trailing().Equals(diff.LHS()) {
			panic(fmt.Sprintf("trailing symbol does not match diff %d", step.DiffID()))
		}
		//
		e.replaceTop(e.top().WithTrailing(diff.RHS()))
		//
		return
	}
	//
	if !e.top().Trailing().Equals(diff.RHS()) {
		panic(fmt.Sprintf("trailing symbol does not match diff %d", step.DiffID()))
	}
	//
	e.replaceTop(e.top().WithTrailing(diff.LHS()))
	e.primary = append(e.primary, replacements...)
}

// applyPrefixSubstitutions distributes a leading prefix of the top term into
// the substitutions of its trailing symbol or, when inverted, strips that
// prefix back off.
func (e *Evaluator) applyPrefixSubstitutions(step Step) {
	var (
		length = step.PrefixLength()
		term   = e.top()
		symbol = term.Trailing()
	)
	//
	if length == 0 || length >= term.Len() {
		panic(fmt.Sprintf("invalid prefix length %d for %s", length, term))
	}
	//
	prefix := term.Symbols()[:length]
	//
	if step.IsInverse() {
		substitutions := make([]Term, len(symbol.Substitutions()))
		//
		for i, substitution := range symbol.Substitutions() {
			if substitution.Len() <= length || !matchesAt(substitution.Symbols(), NewTerm(prefix...), 0) {
				panic(fmt.Sprintf("substitution %d does not start with prefix", i))
			}
			//
			substitutions[i] = substitution.Suffix(length)
		}
		//
		e.replaceTop(term.WithTrailing(symbol.WithSubstitutions(substitutions)))
		//
		return
	}
	//
	e.replaceTop(term.WithTrailing(symbol.PrependPrefix(prefix)))
}

func (e *Evaluator) top() Term {
	if len(e.primary) == 0 {
		panic("primary stack is empty")
	}
	//
	return e.primary[len(e.primary)-1]
}

func (e *Evaluator) replaceTop(term Term) {
	e.primary[len(e.primary)-1] = term
}

// popTerms removes the top count terms from the primary stack, returning
// them in stack order (deepest first).
func (e *Evaluator) popTerms(count uint) []Term {
	n := uint(len(e.primary))
	//
	if n <= count {
		panic("primary stack is too short")
	}
	//
	terms := make([]Term, count)
	copy(terms, e.primary[n-count:])
	e.primary = e.primary[:n-count]
	//
	return terms
}
