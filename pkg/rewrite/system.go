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

	log "github.com/sirupsen/logrus"
	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/collection/hash"
)

// System owns the rule table and the diff table of a single analysis.  Both
// tables are append-only: rules and diffs are identified by dense indices
// which remain valid for the lifetime of the system, hence can safely be
// embedded inside proof steps.  A system is owned exclusively by the pass
// driving it and performs no locking.
type System struct {
	rules []Rule
	diffs []Diff
	// Maps previously added rules back to their identifiers, so that a rule
	// rediscovered by a later pass is not recorded twice.
	ruleIDs *hash.Map[ruleKey, uint]
	// Maps previously interned diffs back to their identifiers, so that
	// structurally identical diffs share an identifier.
	diffIDs *hash.Map[Diff, uint]
}

// NewSystem constructs an empty rewrite system.
func NewSystem() *System {
	return &System{
		ruleIDs: hash.NewMap[ruleKey, uint](32),
		diffIDs: hash.NewMap[Diff, uint](32),
	}
}

// AddRule appends a rule rewriting lhs to rhs, returning its identifier.  The
// proof, if given, justifies the equivalence of lhs and rhs under the rules
// already present.  The bulk passes can rediscover a rule the table already
// holds; such duplicates are dropped (their identifier returned unchanged),
// which is what lets iterating those passes reach a fixed point.
func (rs *System) AddRule(lhs Term, rhs Term, proof util.Option[Path]) uint {
	key := ruleKey{lhs, rhs}
	//
	if id, ok := rs.ruleIDs.Get(key); ok {
		log.Debug(fmt.Sprintf("dropped duplicate of rule %d: %s => %s", id, lhs, rhs))
		return id
	}
	//
	id := uint(len(rs.rules))
	rs.rules = append(rs.rules, NewRule(lhs, rhs, proof))
	rs.ruleIDs.Insert(key, id)
	//
	log.Debug(fmt.Sprintf("added rule %d: %s => %s", id, lhs, rhs))
	//
	return id
}

// ruleKey identifies a rule by its two sides.
type ruleKey struct {
	lhs Term
	rhs Term
}

// Equals checks whether this key is structurally identical to another.
func (k ruleKey) Equals(other ruleKey) bool {
	return k.lhs.Equals(other.lhs) && k.rhs.Equals(other.rhs)
}

// Hash returns a hashcode consistent with structural equality.
func (k ruleKey) Hash() uint64 {
	return hash.Combine(k.lhs.Hash(), k.rhs.Hash())
}

// Rule returns the rule with the given identifier.
func (rs *System) Rule(id uint) *Rule {
	return &rs.rules[id]
}

// Len returns the number of rules currently in the table.  Observe that this
// can increase whilst a bulk pass is in flight, and passes deliberately
// re-read it so as to visit rules appended mid-pass.
func (rs *System) Len() uint {
	return uint(len(rs.rules))
}

// InternDiff records a diff in the diff table, returning its stable
// identifier.  Interning the same diff twice yields the same identifier.
func (rs *System) InternDiff(diff Diff) uint {
	if id, ok := rs.diffIDs.Get(diff); ok {
		return id
	}
	//
	id := uint(len(rs.diffs))
	rs.diffs = append(rs.diffs, diff)
	rs.diffIDs.Insert(diff, id)
	//
	return id
}

// Diff returns the diff with the given identifier.
func (rs *System) Diff(id uint) Diff {
	return rs.diffs[id]
}

// DiffCount returns the number of diffs currently interned.
func (rs *System) DiffCount() uint {
	return uint(len(rs.diffs))
}
