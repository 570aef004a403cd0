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

import (
	"fmt"
	"strings"
)

// Instruction is a single three-address operation "Dst = Op Lhs, Rhs".
type Instruction struct {
	Op  Opcode
	Dst string
	Lhs string
	Rhs string
}

// NewInstruction constructs a new three-address instruction.
func NewInstruction(op Opcode, dst, lhs, rhs string) Instruction {
	return Instruction{op, dst, lhs, rhs}
}

func (p Instruction) String() string {
	return fmt.Sprintf("%s = %s %s, %s", p.Dst, p.Op.String(), p.Lhs, p.Rhs)
}

// Program is an ordered sequence of instructions, along with an (optional)
// list of declared inputs.  A program is constructed once and not modified
// after being handed to the graph builder.
type Program struct {
	// Inputs lists the names declared as program inputs, in declaration order.
	Inputs []string
	// Instructions in program order.
	Instructions []Instruction
}

// NewProgram constructs a program from a given sequence of instructions,
// without any declared inputs.
func NewProgram(instructions ...Instruction) Program {
	return Program{nil, instructions}
}

// WithInputs returns a copy of this program with the given declared inputs.
func (p Program) WithInputs(inputs ...string) Program {
	return Program{inputs, p.Instructions}
}

// Len returns the number of instructions in this program.
func (p Program) Len() uint {
	return uint(len(p.Instructions))
}

// Definition returns the index of the last instruction defining a given name,
// or false if no instruction defines it (e.g. it is an input).
func (p Program) Definition(name string) (uint, bool) {
	for i := len(p.Instructions) - 1; i >= 0; i-- {
		if p.Instructions[i].Dst == name {
			return uint(i), true
		}
	}
	//
	return 0, false
}

func (p Program) String() string {
	var builder strings.Builder
	//
	if len(p.Inputs) > 0 {
		builder.WriteString("input ")
		builder.WriteString(strings.Join(p.Inputs, ", "))
		builder.WriteString("\n")
	}
	//
	for _, insn := range p.Instructions {
		builder.WriteString(insn.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
