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
	"hash/fnv"
	"strings"

	"github.com/va5ve/swift/pkg/util/collection/hash"
)

// Kind describes the kind of a constraint symbol.  The kind determines which
// parts of the symbol's payload are meaningful, and whether the symbol carries
// substitutions.
type Kind uint8

const (
	// Name is an unresolved identifier, such as a dependent member type
	// which has not yet been resolved against a protocol.
	Name Kind = iota
	// Protocol identifies a protocol conformance requirement.
	Protocol
	// AssociatedType identifies an associated type declared in a given
	// protocol.
	AssociatedType
	// GenericParam identifies a generic parameter by depth and index.
	GenericParam
	// Layout identifies a layout requirement, such as requiring a class
	// instance.
	Layout
	// Superclass constrains a term to a given superclass, which may itself
	// mention other terms via its substitutions.
	Superclass
	// ConcreteType binds a term to a concrete type, which may itself mention
	// other terms via its substitutions.
	ConcreteType
)

// HasSubstitutions determines whether or not symbols of this kind carry an
// ordered list of substitution terms.
func (k Kind) HasSubstitutions() bool {
	return k == Superclass || k == ConcreteType
}

// IsProperty determines whether or not symbols of this kind encode a property
// of the term they conclude (i.e. a layout, superclass or concrete type
// constraint).
func (k Kind) IsProperty() bool {
	return k == Layout || k == Superclass || k == ConcreteType
}

//nolint:revive
func (k Kind) String() string {
	switch k {
	case Name:
		return "name"
	case Protocol:
		return "protocol"
	case AssociatedType:
		return "associated type"
	case GenericParam:
		return "generic parameter"
	case Layout:
		return "layout"
	case Superclass:
		return "superclass"
	case ConcreteType:
		return "concrete type"
	}
	//
	panic("unreachable")
}

// Symbol is the atomic unit of a constraint term.  Symbols are immutable
// values: modifying a symbol always means constructing a new one.  In
// particular, the substitution list of a superclass or concrete type symbol is
// fixed in length and order once the symbol is created.
type Symbol struct {
	kind Kind
	// Identifier, whose interpretation depends on the kind.  For associated
	// types this is the member name; for superclass and concrete type symbols
	// it names the type constructor.
	name string
	// Defining protocol for associated type symbols.
	protocol string
	// Depth and index for generic parameter symbols.
	depth uint
	index uint
	// Substitution terms for superclass and concrete type symbols, indexed by
	// generic parameter position.
	substitutions []Term
}

// NewNameSymbol constructs a symbol for an unresolved identifier.
func NewNameSymbol(name string) Symbol {
	return Symbol{kind: Name, name: name}
}

// NewProtocolSymbol constructs a symbol identifying a protocol.
func NewProtocolSymbol(name string) Symbol {
	return Symbol{kind: Protocol, name: name}
}

// NewAssociatedTypeSymbol constructs a symbol identifying the associated type
// name declared in protocol proto.
func NewAssociatedTypeSymbol(proto string, name string) Symbol {
	return Symbol{kind: AssociatedType, name: name, protocol: proto}
}

// NewGenericParamSymbol constructs a symbol identifying a generic parameter.
func NewGenericParamSymbol(depth uint, index uint) Symbol {
	return Symbol{kind: GenericParam, depth: depth, index: index}
}

// NewLayoutSymbol constructs a symbol identifying a layout constraint.
func NewLayoutSymbol(name string) Symbol {
	return Symbol{kind: Layout, name: name}
}

// NewSuperclassSymbol constructs a superclass symbol with zero or more
// substitution terms.
func NewSuperclassSymbol(name string, substitutions ...Term) Symbol {
	return Symbol{kind: Superclass, name: name, substitutions: cloneTerms(substitutions)}
}

// NewConcreteTypeSymbol constructs a concrete type symbol with zero or more
// substitution terms.
func NewConcreteTypeSymbol(name string, substitutions ...Term) Symbol {
	return Symbol{kind: ConcreteType, name: name, substitutions: cloneTerms(substitutions)}
}

// Kind returns the kind of this symbol.
func (s Symbol) Kind() Kind {
	return s.kind
}

// Name returns the identifier of this symbol.
func (s Symbol) Name() string {
	return s.name
}

// Protocol returns the defining protocol of an associated type symbol.
func (s Symbol) Protocol() string {
	return s.protocol
}

// Depth returns the depth of a generic parameter symbol.
func (s Symbol) Depth() uint {
	return s.depth
}

// Index returns the index of a generic parameter symbol.
func (s Symbol) Index() uint {
	return s.index
}

// Substitutions returns the substitution terms of this symbol.  The returned
// slice must not be mutated.
func (s Symbol) Substitutions() []Term {
	return s.substitutions
}

// WithSubstitutions constructs a copy of this symbol carrying the given
// substitution terms instead of its own.  The symbol's kind must carry
// substitutions.
func (s Symbol) WithSubstitutions(substitutions []Term) Symbol {
	if !s.kind.HasSubstitutions() {
		panic(fmt.Sprintf("%s symbol does not carry substitutions", s.kind))
	}
	//
	s.substitutions = cloneTerms(substitutions)
	//
	return s
}

// PrependPrefix constructs a copy of this symbol in which every substitution
// term has been prefixed with the given symbols.  This re-expresses
// substitutions established against a suffix of some term in terms of the
// whole term.  An empty prefix leaves the symbol unchanged.
func (s Symbol) PrependPrefix(prefix []Symbol) Symbol {
	if len(prefix) == 0 {
		return s
	}
	//
	substitutions := make([]Term, len(s.substitutions))
	//
	for i, t := range s.substitutions {
		symbols := make([]Symbol, 0, uint(len(prefix))+t.Len())
		symbols = append(symbols, prefix...)
		symbols = append(symbols, t.Symbols()...)
		substitutions[i] = NewTerm(symbols...)
	}
	//
	return s.WithSubstitutions(substitutions)
}

// Equals checks whether this symbol is structurally identical to another.
func (s Symbol) Equals(other Symbol) bool {
	if s.kind != other.kind || s.name != other.name || s.protocol != other.protocol ||
		s.depth != other.depth || s.index != other.index {
		return false
	}
	//
	if len(s.substitutions) != len(other.substitutions) {
		return false
	}
	//
	for i := range s.substitutions {
		if !s.substitutions[i].Equals(other.substitutions[i]) {
			return false
		}
	}
	//
	return true
}

// Hash returns a hashcode consistent with structural equality.
func (s Symbol) Hash() uint64 {
	h := hash.Init()
	h = hash.Combine(h, uint64(s.kind))
	h = hash.Combine(h, hashString(s.name))
	h = hash.Combine(h, hashString(s.protocol))
	h = hash.Combine(h, uint64(s.depth))
	h = hash.Combine(h, uint64(s.index))
	//
	for _, t := range s.substitutions {
		h = hash.Combine(h, t.Hash())
	}
	//
	return h
}

//nolint:revive
func (s Symbol) String() string {
	switch s.kind {
	case Name:
		return s.name
	case Protocol:
		return fmt.Sprintf("[%s]", s.name)
	case AssociatedType:
		return fmt.Sprintf("[%s:%s]", s.protocol, s.name)
	case GenericParam:
		return fmt.Sprintf("τ_%d_%d", s.depth, s.index)
	case Layout:
		return fmt.Sprintf("[layout: %s]", s.name)
	case Superclass:
		return fmt.Sprintf("[superclass: %s]", s.typeString())
	case ConcreteType:
		return fmt.Sprintf("[concrete: %s]", s.typeString())
	}
	//
	panic("unreachable")
}

// typeString renders the type constructor of a superclass or concrete type
// symbol, together with its substitutions (if any).
func (s Symbol) typeString() string {
	if len(s.substitutions) == 0 {
		return s.name
	}
	//
	var builder strings.Builder
	//
	builder.WriteString(s.name)
	builder.WriteString("<")
	//
	for i, t := range s.substitutions {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(">")
	//
	return builder.String()
}

func cloneTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	//
	nterms := make([]Term, len(terms))
	copy(nterms, terms)
	//
	return nterms
}

func hashString(s string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(s))
	// Done
	return hasher.Sum64()
}
