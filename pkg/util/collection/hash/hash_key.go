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
package hash

// A reasonably simple hashmap implementation which permits collisions.
// Off-the-shelf hashset libraries are *not* a suitable replacement here, since
// they typically assume the hash function uniquely identifies the data in
// question.  We don't want to make that assumption, since keys here are
// arbitrary symbol sequences.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashmap.  Equality is included since hashcodes alone cannot
// distinguish colliding keys.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Combine an existing hashcode with another value, using an FNV1a-style mixing
// step.  Useful for implementations of Hasher which fold over their
// components.
func Combine(hash uint64, item uint64) uint64 {
	hash ^= item
	hash *= prime64

	return hash
}

// Init returns the initial hashcode for implementations of Hasher built
// around Combine.
func Init() uint64 {
	return offset64
}
