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
	"strings"

	"github.com/va5ve/swift/pkg/util/collection/hash"
)

// Term is a non-empty, ordered sequence of symbols describing a path through
// the constraint space.  Like symbols, terms are immutable values with
// structural equality; every operation which "modifies" a term in fact
// constructs a new one.
type Term struct {
	symbols []Symbol
}

// NewTerm constructs a term from one or more symbols.
func NewTerm(symbols ...Symbol) Term {
	if len(symbols) == 0 {
		panic("term must be non-empty")
	}
	//
	nsymbols := make([]Symbol, len(symbols))
	copy(nsymbols, symbols)
	//
	return Term{nsymbols}
}

// Len returns the number of symbols in this term.
func (t Term) Len() uint {
	return uint(len(t.symbols))
}

// Symbols returns the symbols making up this term.  The returned slice must
// not be mutated.
func (t Term) Symbols() []Symbol {
	return t.symbols
}

// Get returns the ith symbol of this term.
func (t Term) Get(index uint) Symbol {
	return t.symbols[index]
}

// Trailing returns the last symbol of this term.
func (t Term) Trailing() Symbol {
	return t.symbols[len(t.symbols)-1]
}

// Append constructs a new term consisting of this term followed by the given
// symbol.
func (t Term) Append(symbol Symbol) Term {
	symbols := make([]Symbol, 0, t.Len()+1)
	symbols = append(symbols, t.symbols...)
	symbols = append(symbols, symbol)
	//
	return Term{symbols}
}

// WithTrailing constructs a new term in which the last symbol of this term
// has been replaced by the given symbol.
func (t Term) WithTrailing(symbol Symbol) Term {
	symbols := make([]Symbol, t.Len())
	copy(symbols, t.symbols)
	symbols[len(symbols)-1] = symbol
	//
	return Term{symbols}
}

// Suffix returns the suffix of this term beginning at the given index, which
// must leave at least one symbol.
func (t Term) Suffix(index uint) Term {
	return NewTerm(t.symbols[index:]...)
}

// Equals checks whether this term is structurally identical to another.
func (t Term) Equals(other Term) bool {
	if len(t.symbols) != len(other.symbols) {
		return false
	}
	//
	for i := range t.symbols {
		if !t.symbols[i].Equals(other.symbols[i]) {
			return false
		}
	}
	//
	return true
}

// Hash returns a hashcode consistent with structural equality.
func (t Term) Hash() uint64 {
	h := hash.Init()
	//
	for _, s := range t.symbols {
		h = hash.Combine(h, s.Hash())
	}
	//
	return h
}

//nolint:revive
func (t Term) String() string {
	var builder strings.Builder
	//
	for i, s := range t.symbols {
		if i != 0 {
			builder.WriteString(".")
		}
		//
		builder.WriteString(s.String())
	}
	//
	return builder.String()
}
