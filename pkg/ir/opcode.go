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
package ir

import "fmt"

// Opcode identifies the operation computing a value.  Opcodes form a closed
// set; ANY is a wildcard which may only appear inside patterns.
type Opcode uint8

// REF is a plain named value, such as a program input, involving no
// computation.
const REF Opcode = 0

// ADD is binary addition.
const ADD Opcode = 1

// MUL is binary multiplication.
const MUL Opcode = 2

// SUB is binary subtraction.
const SUB Opcode = 3

// ANY is the pattern wildcard, matching every opcode.
const ANY Opcode = 4

// OPCODES lists every concrete (i.e. non-wildcard) opcode.
var OPCODES = []Opcode{REF, ADD, MUL, SUB}

// Matches implements pattern-aware opcode equality.  ANY matches every opcode
// (on either side), whilst two concrete opcodes match only when identical.
// Plain == on opcodes is identity and should not be used for matching.
func (op Opcode) Matches(other Opcode) bool {
	switch {
	case op == ANY || other == ANY:
		return true
	default:
		return op == other
	}
}

// IsBinary determines whether this opcode defines a value from exactly two
// operands.
func (op Opcode) IsBinary() bool {
	switch op {
	case ADD, MUL, SUB:
		return true
	default:
		return false
	}
}

func (op Opcode) String() string {
	switch op {
	case REF:
		return "ref"
	case ADD:
		return "add"
	case MUL:
		return "mul"
	case SUB:
		return "sub"
	case ANY:
		return "*"
	default:
		return fmt.Sprintf("opcode(%d)", uint8(op))
	}
}

// ParseOpcode parses an opcode mnemonic.  The wildcard may be written as "any"
// or "*".
func ParseOpcode(mnemonic string) (Opcode, bool) {
	switch mnemonic {
	case "ref":
		return REF, true
	case "add":
		return ADD, true
	case "mul":
		return MUL, true
	case "sub":
		return SUB, true
	case "any", "*":
		return ANY, true
	default:
		return ANY, false
	}
}
