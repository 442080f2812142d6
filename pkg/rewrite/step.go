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

// StepKind identifies the primitive rewriting operation recorded by a proof
// step.
type StepKind uint8

const (
	// ApplyRule applies a rewrite rule (left to right) somewhere within the
	// term at the top of the primary stack.  The start and end offsets give
	// the "whiskers" surrounding the rule's left-hand side.
	ApplyRule StepKind = iota
	// Shift moves the term at the top of the primary stack onto the secondary
	// stack.
	Shift
	// Decompose pushes the substitutions of the trailing symbol of the term
	// at the top of the primary stack onto the primary stack.
	Decompose
	// DecomposeConcrete replaces the trailing symbol of the term at the top of
	// the primary stack according to an interned substitution diff, pushing
	// the diff's replacement substitutions onto the primary stack.
	DecomposeConcrete
	// PrefixSubstitutions prepends a prefix of the term at the top of the
	// primary stack to every substitution of that term's trailing symbol.
	PrefixSubstitutions
)

//nolint:revive
func (k StepKind) String() string {
	switch k {
	case ApplyRule:
		return "apply"
	case Shift:
		return "shift"
	case Decompose:
		return "decompose"
	case DecomposeConcrete:
		return "decompose concrete"
	case PrefixSubstitutions:
		return "prefix substitutions"
	}
	//
	panic("unreachable")
}

// Step is a single primitive operation within a proof path.  Every step is
// invertible: applying the inverted step undoes the original.  The meaning of
// the argument depends on the kind: a rule identifier for ApplyRule, a
// substitution count for Decompose, a diff identifier for DecomposeConcrete
// and a prefix length for PrefixSubstitutions.
type Step struct {
	kind StepKind
	// Number of symbols preceding the rewritten region, where applicable.
	startOffset uint
	// Number of symbols following the rewritten region, where applicable.
	endOffset uint
	// Kind-dependent argument.
	arg uint
	// Indicates whether this step runs in reverse.
	inverse bool
}

// NewApplyRuleStep constructs a step applying the given rule, surrounded by
// whiskers of the given sizes.
func NewApplyRuleStep(startOffset uint, endOffset uint, ruleID uint, inverse bool) Step {
	return Step{ApplyRule, startOffset, endOffset, ruleID, inverse}
}

// NewShiftStep constructs a step moving a term between the primary and
// secondary stacks.
func NewShiftStep(inverse bool) Step {
	return Step{Shift, 0, 0, 0, inverse}
}

// NewDecomposeStep constructs a step decomposing (or, inverted, recomposing)
// a trailing symbol carrying the given number of substitutions.
func NewDecomposeStep(count uint, inverse bool) Step {
	return Step{Decompose, 0, 0, count, inverse}
}

// NewDecomposeConcreteStep constructs a step decomposing a trailing symbol
// against the substitution diff with the given identifier.
func NewDecomposeConcreteStep(diffID uint, inverse bool) Step {
	return Step{DecomposeConcrete, 0, 0, diffID, inverse}
}

// NewPrefixSubstitutionsStep constructs a step distributing a prefix of the
// given length into the substitutions of a trailing symbol.
func NewPrefixSubstitutionsStep(length uint, endOffset uint, inverse bool) Step {
	return Step{PrefixSubstitutions, 0, endOffset, length, inverse}
}

// Kind returns the kind of this step.
func (s Step) Kind() StepKind {
	return s.kind
}

// StartOffset returns the number of symbols preceding the region this step
// operates on.
func (s Step) StartOffset() uint {
	return s.startOffset
}

// EndOffset returns the number of symbols following the region this step
// operates on.
func (s Step) EndOffset() uint {
	return s.endOffset
}

// RuleID returns the rule applied by an ApplyRule step.
func (s Step) RuleID() uint {
	if s.kind != ApplyRule {
		panic(fmt.Sprintf("%s step has no rule", s.kind))
	}
	//
	return s.arg
}

// Count returns the substitution count of a Decompose step.
func (s Step) Count() uint {
	if s.kind != Decompose {
		panic(fmt.Sprintf("%s step has no count", s.kind))
	}
	//
	return s.arg
}

// DiffID returns the diff identifier of a DecomposeConcrete step.
func (s Step) DiffID() uint {
	if s.kind != DecomposeConcrete {
		panic(fmt.Sprintf("%s step has no diff", s.kind))
	}
	//
	return s.arg
}

// PrefixLength returns the prefix length of a PrefixSubstitutions step.
func (s Step) PrefixLength() uint {
	if s.kind != PrefixSubstitutions {
		panic(fmt.Sprintf("%s step has no prefix length", s.kind))
	}
	//
	return s.arg
}

// IsInverse indicates whether this step runs in reverse.
func (s Step) IsInverse() bool {
	return s.inverse
}

// Invert returns this step with its direction flipped.  All other fields are
// preserved, hence inverting twice yields the original step.
func (s Step) Invert() Step {
	s.inverse = !s.inverse
	return s
}

//nolint:revive
func (s Step) String() string {
	direction := ""
	if s.inverse {
		direction = "!"
	}
	//
	switch s.kind {
	case ApplyRule:
		return fmt.Sprintf("%sapply(%d@%d..%d)", direction, s.arg, s.startOffset, s.endOffset)
	case Shift:
		return fmt.Sprintf("%sshift", direction)
	case Decompose:
		return fmt.Sprintf("%sdecompose(%d)", direction, s.arg)
	case DecomposeConcrete:
		return fmt.Sprintf("%sconcrete(%d)", direction, s.arg)
	case PrefixSubstitutions:
		return fmt.Sprintf("%sprefix(%d)", direction, s.arg)
	}
	//
	panic("unreachable")
}
