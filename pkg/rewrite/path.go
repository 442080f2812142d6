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
)

// Path is a replayable trace of primitive rewriting operations deriving one
// term from an equivalent term.  Paths grow only by appending during
// construction; a path built for an operation which turns out to be a no-op
// is truncated back to its starting length.
type Path struct {
	steps []Step
}

// Len returns the number of steps in this path.  A nil path has no steps,
// matching its use as an absent proof.
func (p *Path) Len() uint {
	if p == nil {
		return 0
	}
	//
	return uint(len(p.steps))
}

// Step returns the ith step of this path.
func (p *Path) Step(index uint) Step {
	return p.steps[index]
}

// Steps returns the steps of this path.  The returned slice must not be
// mutated.
func (p *Path) Steps() []Step {
	return p.steps
}

// Add appends a step to this path.
func (p *Path) Add(step Step) {
	p.steps = append(p.steps, step)
}

// Truncate discards all steps beyond the given length.
func (p *Path) Truncate(length uint) {
	if length > p.Len() {
		panic("cannot truncate path beyond its length")
	}
	//
	p.steps = p.steps[:length]
}

// RollbackScaffolding truncates this path back to the given mark, checking
// that everything discarded was pure scaffolding.  A simplification which
// turns out to be a no-op appends only Decompose and Shift steps; anything
// else in the discarded region indicates a corrupted proof.  Rolling back a
// nil path does nothing.
func (p *Path) RollbackScaffolding(mark uint) {
	if p == nil {
		return
	}
	//
	for i := mark; i < p.Len(); i++ {
		if kind := p.steps[i].Kind(); kind != Shift && kind != Decompose {
			panic(fmt.Sprintf("unexpected %s step in no-op proof region", kind))
		}
	}
	//
	p.Truncate(mark)
}

// Invert returns the reversal of this path: step order is reversed and every
// step is individually inverted.  If this path derives t2 from t1 then the
// inverted path derives t1 from t2, and inverting twice yields a path
// step-for-step identical to the original.
func (p *Path) Invert() Path {
	steps := make([]Step, len(p.steps))
	//
	for i, s := range p.steps {
		steps[len(steps)-1-i] = s.Invert()
	}
	//
	return Path{steps}
}

//nolint:revive
func (p *Path) String() string {
	var builder strings.Builder
	//
	for i, s := range p.steps {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(s.String())
	}
	//
	return builder.String()
}
