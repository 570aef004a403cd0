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
package dag

import "fmt"

// ReferenceError arises when an instruction reads a name which is not bound,
// and which cannot be introduced as a fresh leaf.  This includes forward
// references to names defined later in the program.
type ReferenceError struct {
	name string
	// Index of the offending instruction.
	index uint
}

// Name returns the unbound name.
func (p *ReferenceError) Name() string {
	return p.name
}

// Index returns the index of the instruction which read the unbound name.
func (p *ReferenceError) Index() uint {
	return p.index
}

func (p *ReferenceError) Error() string {
	return fmt.Sprintf("unknown value \"%s\"", p.name)
}

// RebindError arises when a destination name is bound more than once.
type RebindError struct {
	name string
	// Index of the offending instruction.
	index uint
}

// Name returns the name being rebound.
func (p *RebindError) Name() string {
	return p.name
}

// Index returns the index of the instruction attempting to rebind the name, or
// math.MaxUint when a declared input clashes with another declaration.
func (p *RebindError) Index() uint {
	return p.index
}

func (p *RebindError) Error() string {
	return fmt.Sprintf("value \"%s\" already defined", p.name)
}

// InstructionError arises when an instruction cannot define a value at all,
// for example because its opcode is not a binary operation.
type InstructionError struct {
	name  string
	index uint
	msg   string
}

// Name returns the destination of the offending instruction.
func (p *InstructionError) Name() string {
	return p.name
}

// Index returns the index of the offending instruction.
func (p *InstructionError) Index() uint {
	return p.index
}

func (p *InstructionError) Error() string {
	return fmt.Sprintf("invalid instruction defining \"%s\": %s", p.name, p.msg)
}
