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
	"testing"

	"github.com/va5ve/swift/pkg/util"
	"github.com/va5ve/swift/pkg/util/assert"
)

func Test_Reduce_01(t *testing.T) {
	var (
		rs   = NewSystem()
		path Path
	)
	//
	term, changed := rs.Reduce(tm(name("a")), &path)
	//
	assert.False(t, changed)
	assert.True(t, term.Equals(tm(name("a"))))
	assert.Equal(t, uint(0), path.Len())
}

func Test_Reduce_02(t *testing.T) {
	var (
		rs   = NewSystem()
		path Path
	)
	//
	rs.AddRule(tm(name("a")), tm(name("b")), util.None[Path]())
	//
	term, changed := rs.Reduce(tm(name("x"), name("a"), name("y")), &path)
	//
	assert.True(t, changed)
	assert.True(t, term.Equals(tm(name("x"), name("b"), name("y"))))
	// One application, with whiskers both sides.
	assert.Equal(t, uint(1), path.Len())
	assert.Equal(t, NewApplyRuleStep(1, 1, 0, false), path.Step(0))
	// The recorded path replays to the reduced term.
	assert.True(t, rs.Replay(tm(name("x"), name("a"), name("y")), path).Equals(term))
}

func Test_Reduce_03(t *testing.T) {
	var (
		rs   = NewSystem()
		path Path
	)
	//
	rs.AddRule(tm(name("a")), tm(name("b")), util.None[Path]())
	rs.AddRule(tm(name("b")), tm(name("c")), util.None[Path]())
	//
	term, changed := rs.Reduce(tm(name("a")), &path)
	// Reduction runs to the fixed point.
	assert.True(t, changed)
	assert.True(t, term.Equals(tm(name("c"))))
	assert.Equal(t, uint(2), path.Len())
	assert.True(t, rs.Replay(tm(name("a")), path).Equals(term))
}

func Test_Reduce_04(t *testing.T) {
	rs := NewSystem()
	// Two rules match the same position; the lower identifier wins.
	rs.AddRule(tm(name("a")), tm(name("b")), util.None[Path]())
	rs.AddRule(tm(name("a")), tm(name("c")), util.None[Path]())
	//
	term, _ := rs.Reduce(tm(name("a")), nil)
	assert.True(t, term.Equals(tm(name("b"))))
	// Amongst positions, the leftmost wins.
	var path Path
	//
	rs.Reduce(tm(name("x"), name("a"), name("a")), &path)
	assert.Equal(t, uint(1), path.Step(0).StartOffset())
}

func Test_Reduce_05(t *testing.T) {
	var (
		rs   = NewSystem()
		path Path
	)
	//
	rs.AddRule(tm(name("a")), tm(name("b")), util.None[Path]())
	//
	term, _ := rs.Reduce(tm(name("a")), &path)
	length := path.Len()
	// Reducing a normal form is a no-op, leaving the path untouched.
	again, changed := rs.Reduce(term, &path)
	//
	assert.False(t, changed)
	assert.True(t, again.Equals(term))
	assert.Equal(t, length, path.Len())
}
