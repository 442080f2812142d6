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

// Status records how far a given concern of a rule (its left-hand side, its
// right-hand side, or its substitutions) has been processed.  The only legal
// transition is Unprocessed to Simplified; a status never moves backwards.
type Status uint8

const (
	// Unprocessed indicates the concern has not been simplified yet.
	Unprocessed Status = iota
	// Simplified indicates the concern has been simplified, permanently.
	Simplified
)

// Rule is a directed equation between two terms.  Rules are appended to a
// rewrite system and never removed; their statuses advance monotonically and
// are never reset.
type Rule struct {
	lhs Term
	rhs Term
	// Per-concern processing statuses.
	lhsStatus          Status
	rhsStatus          Status
	substitutionStatus Status
	// Proof that lhs and rhs are equivalent under the rules which preceded
	// this one, where known.
	proof util.Option[Path]
}

// NewRule constructs an unprocessed rule rewriting lhs to rhs.
func NewRule(lhs Term, rhs Term, proof util.Option[Path]) Rule {
	return Rule{lhs: lhs, rhs: rhs, proof: proof}
}

// LHS returns the left-hand side of this rule.
func (r *Rule) LHS() Term {
	return r.lhs
}

// RHS returns the right-hand side of this rule.
func (r *Rule) RHS() Term {
	return r.rhs
}

// Proof returns the proof attached to this rule, where known.
func (r *Rule) Proof() util.Option[Path] {
	return r.proof
}

// PropertySymbol returns the trailing symbol of this rule's left-hand side if
// it encodes a property (layout, superclass or concrete type) of the term it
// concludes, and nothing otherwise.
func (r *Rule) PropertySymbol() util.Option[Symbol] {
	symbol := r.lhs.Trailing()
	//
	if symbol.Kind().IsProperty() {
		return util.Some(symbol)
	}
	//
	return util.None[Symbol]()
}

// IsLHSSimplified indicates whether this rule's left-hand side has been
// simplified.
func (r *Rule) IsLHSSimplified() bool {
	return r.lhsStatus == Simplified
}

// IsRHSSimplified indicates whether this rule's right-hand side has been
// simplified.
func (r *Rule) IsRHSSimplified() bool {
	return r.rhsStatus == Simplified
}

// IsSubstitutionSimplified indicates whether the substitutions of this rule's
// left-hand side have been simplified.
func (r *Rule) IsSubstitutionSimplified() bool {
	return r.substitutionStatus == Simplified
}

// MarkLHSSimplified advances the left-hand-side status of this rule.
func (r *Rule) MarkLHSSimplified() {
	r.lhsStatus = advance(r.lhsStatus, "left-hand side")
}

// MarkRHSSimplified advances the right-hand-side status of this rule.
func (r *Rule) MarkRHSSimplified() {
	r.rhsStatus = advance(r.rhsStatus, "right-hand side")
}

// MarkSubstitutionSimplified advances the substitution status of this rule.
func (r *Rule) MarkSubstitutionSimplified() {
	r.substitutionStatus = advance(r.substitutionStatus, "substitutions")
}

//nolint:revive
func (r *Rule) String() string {
	return fmt.Sprintf("%s => %s", r.lhs, r.rhs)
}

// advance performs the single legal status transition, panicking on any
// attempt to mark a concern twice.
func advance(status Status, concern string) Status {
	if status != Unprocessed {
		panic(fmt.Sprintf("rule %s already simplified", concern))
	}
	//
	return Simplified
}
