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
	"strings"

	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/collection/hash"
)

// Diff is a structured description of how the substitutions of a symbol
// changed under simplification.  Same-type entries map a substitution index
// to the (simplified) term replacing it; concrete-type entries map a
// substitution index to a concrete type symbol discovered for it, in which
// case the replacement substitution is the original term extended with that
// symbol.  Diffs are immutable once constructed, and are interned in their
// owning rewrite system so that proof steps can refer to them by a stable
// identifier.
type Diff struct {
	baseTerm Term
	lhs      Symbol
	rhs      Symbol
	// Index-to-term replacements, in increasing index order.
	sameTypes []util.Pair[uint, Term]
	// Index-to-symbol replacements, in increasing index order.
	concreteTypes []util.Pair[uint, Symbol]
}

// NewDiff constructs the diff describing how the substitutions of symbol
// change under the given same-type and concrete-type replacements.  At least
// one replacement must be given, since a diff whose two sides coincide is
// meaningless.
func NewDiff(baseTerm Term, symbol Symbol, sameTypes []util.Pair[uint, Term],
	concreteTypes []util.Pair[uint, Symbol]) Diff {
	substitutions := make([]Term, len(symbol.Substitutions()))
	copy(substitutions, symbol.Substitutions())
	// Splice in simplified terms.
	for _, p := range sameTypes {
		substitutions[p.Left] = p.Right
	}
	// Splice in discovered concrete types.
	for _, p := range concreteTypes {
		substitutions[p.Left] = substitutions[p.Left].Append(p.Right)
	}
	//
	rhs := symbol.WithSubstitutions(substitutions)
	//
	if symbol.Equals(rhs) {
		panic("diff must describe a change")
	}
	//
	return Diff{baseTerm, symbol, rhs, sameTypes, concreteTypes}
}

// BaseTerm returns the term against which this diff was computed.
func (d Diff) BaseTerm() Term {
	return d.baseTerm
}

// LHS returns the original symbol.
func (d Diff) LHS() Symbol {
	return d.lhs
}

// RHS returns the replacement symbol.
func (d Diff) RHS() Symbol {
	return d.rhs
}

// SameTypes returns the index-to-term replacements of this diff, in
// increasing index order.  The returned slice must not be mutated.
func (d Diff) SameTypes() []util.Pair[uint, Term] {
	return d.sameTypes
}

// ConcreteTypes returns the index-to-symbol replacements of this diff, in
// increasing index order.  The returned slice must not be mutated.
func (d Diff) ConcreteTypes() []util.Pair[uint, Symbol] {
	return d.concreteTypes
}

// Equals checks whether this diff is structurally identical to another.
func (d Diff) Equals(other Diff) bool {
	if !d.baseTerm.Equals(other.baseTerm) || !d.lhs.Equals(other.lhs) || !d.rhs.Equals(other.rhs) {
		return false
	}
	//
	if len(d.sameTypes) != len(other.sameTypes) || len(d.concreteTypes) != len(other.concreteTypes) {
		return false
	}
	//
	for i, p := range d.sameTypes {
		q := other.sameTypes[i]
		if p.Left != q.Left || !p.Right.Equals(q.Right) {
			return false
		}
	}
	//
	for i, p := range d.concreteTypes {
		q := other.concreteTypes[i]
		if p.Left != q.Left || !p.Right.Equals(q.Right) {
			return false
		}
	}
	//
	return true
}

// Hash returns a hashcode consistent with structural equality.
func (d Diff) Hash() uint64 {
	h := hash.Init()
	h = hash.Combine(h, d.baseTerm.Hash())
	h = hash.Combine(h, d.lhs.Hash())
	h = hash.Combine(h, d.rhs.Hash())
	//
	for _, p := range d.sameTypes {
		h = hash.Combine(h, uint64(p.Left))
		h = hash.Combine(h, p.Right.Hash())
	}
	//
	for _, p := range d.concreteTypes {
		h = hash.Combine(h, uint64(p.Left))
		h = hash.Combine(h, p.Right.Hash())
	}
	//
	return h
}

//nolint:revive
func (d Diff) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%s: %s ~> %s {", d.baseTerm, d.lhs, d.rhs))
	//
	first := true
	//
	for _, p := range d.sameTypes {
		if !first {
			builder.WriteString(", ")
		}
		//
		first = false
		//
		builder.WriteString(fmt.Sprintf("%d := %s", p.Left, p.Right))
	}
	//
	for _, p := range d.concreteTypes {
		if !first {
			builder.WriteString(", ")
		}
		//
		first = false
		//
		builder.WriteString(fmt.Sprintf("%d := %s", p.Left, p.Right))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
