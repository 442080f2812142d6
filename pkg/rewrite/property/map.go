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
	"strings"

	"github.com/va5ve/swift/pkg/rewrite"
	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/collection/hash"
)

// Entry records the strongest known facts about a single canonical term: the
// concrete type it is bound to, its superclass and its layout, each together
// with the rule which established it.
type Entry struct {
	key rewrite.Term
	//
	concreteType     util.Option[rewrite.Symbol]
	concreteTypeRule uint
	//
	superclass     util.Option[rewrite.Symbol]
	superclassRule uint
	//
	layout     util.Option[rewrite.Symbol]
	layoutRule uint
}

// Key returns the canonical term this entry describes.
func (e *Entry) Key() rewrite.Term {
	return e.key
}

// ConcreteType returns the concrete type bound to this entry's key, where
// known.
func (e *Entry) ConcreteType() util.Option[rewrite.Symbol] {
	return e.concreteType
}

// ConcreteTypeRule returns the rule which established this entry's concrete
// type.
func (e *Entry) ConcreteTypeRule() uint {
	return e.concreteTypeRule
}

// Superclass returns the superclass bound to this entry's key, where known.
func (e *Entry) Superclass() util.Option[rewrite.Symbol] {
	return e.superclass
}

// SuperclassRule returns the rule which established this entry's superclass.
func (e *Entry) SuperclassRule() uint {
	return e.superclassRule
}

// Layout returns the layout bound to this entry's key, where known.
func (e *Entry) Layout() util.Option[rewrite.Symbol] {
	return e.layout
}

// LayoutRule returns the rule which established this entry's layout.
func (e *Entry) LayoutRule() uint {
	return e.layoutRule
}

//nolint:revive
func (e *Entry) String() string {
	var facts []string
	//
	if e.concreteType.HasValue() {
		facts = append(facts, fmt.Sprintf("%s (rule %d)", e.concreteType.Unwrap(), e.concreteTypeRule))
	}
	//
	if e.superclass.HasValue() {
		facts = append(facts, fmt.Sprintf("%s (rule %d)", e.superclass.Unwrap(), e.superclassRule))
	}
	//
	if e.layout.HasValue() {
		facts = append(facts, fmt.Sprintf("%s (rule %d)", e.layout.Unwrap(), e.layoutRule))
	}
	//
	return fmt.Sprintf("%s: %s", e.key, strings.Join(facts, ", "))
}

// Map is a derived index over a rewrite system, mapping canonical terms to
// the strongest property facts implied about them.  A map is a snapshot: it
// reflects the rules present when it was built, and is rebuilt from scratch
// after rules are added.
type Map struct {
	system *rewrite.System
	// Entries in the order first recorded.
	entries []*Entry
	// Maps keys to their entries.
	index *hash.Map[rewrite.Term, *Entry]
}

// NewMap builds a property map from the rules currently in the given system.
// Rules are scanned in identifier order, recording each property rule's fact
// against its right-hand side; the earliest rule establishing a given fact
// wins, with later conflicting facts left for completion to resolve.
func NewMap(system *rewrite.System) *Map {
	pm := &Map{system: system, index: hash.NewMap[rewrite.Term, *Entry](32)}
	//
	for id := uint(0); id < system.Len(); id++ {
		rule := system.Rule(id)
		//
		if rule.IsLHSSimplified() || rule.IsRHSSimplified() {
			continue
		}
		//
		if symbol := rule.PropertySymbol(); symbol.HasValue() {
			pm.record(rule.RHS(), symbol.Unwrap(), id)
		}
	}
	//
	return pm
}

// System returns the rewrite system this map was built over.
func (pm *Map) System() *rewrite.System {
	return pm.system
}

// Entries returns all entries of this map, in the order first recorded.
func (pm *Map) Entries() []*Entry {
	return pm.entries
}

// LookUp finds the entry whose key is the longest suffix of the given term,
// returning it along with the length of the remaining prefix.
func (pm *Map) LookUp(term rewrite.Term) (*Entry, uint, bool) {
	for i := uint(0); i < term.Len(); i++ {
		if entry, ok := pm.index.Get(term.Suffix(i)); ok {
			return entry, i, true
		}
	}
	//
	return nil, 0, false
}

// record registers the fact encoded by the given property symbol against the
// given key.
func (pm *Map) record(key rewrite.Term, symbol rewrite.Symbol, ruleID uint) {
	entry, ok := pm.index.Get(key)
	//
	if !ok {
		entry = &Entry{key: key}
		pm.entries = append(pm.entries, entry)
		pm.index.Insert(key, entry)
	}
	//
	switch symbol.Kind() {
	case rewrite.ConcreteType:
		if entry.concreteType.IsEmpty() {
			entry.concreteType = util.Some(symbol)
			entry.concreteTypeRule = ruleID
		}
	case rewrite.Superclass:
		if entry.superclass.IsEmpty() {
			entry.superclass = util.Some(symbol)
			entry.superclassRule = ruleID
		}
	case rewrite.Layout:
		if entry.layout.IsEmpty() {
			entry.layout = util.Some(symbol)
			entry.layoutRule = ruleID
		}
	default:
		panic(fmt.Sprintf("%s symbol does not encode a property", symbol.Kind()))
	}
}
