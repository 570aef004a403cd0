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
package bit

import "math/bits"

// Set provides a straightforward bitset implementation. That is, a set of
// (unsigned) integer values implemented as an array of bits.  The set grows as
// needed.
type Set struct {
	words []uint64
}

// NewSet creates a Set with initial capacity for values up to a given size.
func NewSet(size uint) *Set {
	return &Set{make([]uint64, (size+63)/64)}
}

// Insert a given value into this set, returning true if it was not already
// present.
func (p *Set) Insert(val uint) bool {
	word := val / 64
	mask := uint64(1) << (val % 64)
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	//
	if p.words[word]&mask != 0 {
		return false
	}
	//
	p.words[word] |= mask
	//
	return true
}

// Contains checks whether a given value is contained, or not.
func (p *Set) Contains(val uint) bool {
	word := val / 64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	//
	return p.words[word]&(uint64(1)<<(val%64)) != 0
}

// Count returns the number of values in this set.
func (p *Set) Count() uint {
	var count uint
	//
	for _, word := range p.words {
		count += uint(bits.OnesCount64(word))
	}
	//
	return count
}
