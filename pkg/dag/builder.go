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

import (
	"math"
	"slices"

	"github.com/consensys/go-isel/pkg/ir"
	log "github.com/sirupsen/logrus"
)

// RebindPolicy determines what happens when an instruction defines a name
// which is already bound.
type RebindPolicy uint8

// RebindReject rejects every redefinition with a RebindError.
const RebindReject RebindPolicy = 0

// RebindReuse accepts a redefinition which is identical to the existing
// binding (same opcode, same operands), in which case the existing node is
// reused.  Conflicting redefinitions are still rejected.
const RebindReuse RebindPolicy = 1

// BuildOption configures the graph builder.
type BuildOption func(*builder)

// WithImplicitLeaves determines whether names which are never defined in the
// program become fresh leaves on first mention (the default).  When disabled,
// only the declared inputs of a program may be used as leaves.
func WithImplicitLeaves(enable bool) BuildOption {
	return func(b *builder) {
		b.implicitLeaves = enable
	}
}

// WithRebindPolicy determines how redefinitions of a name are handled.  The
// default is RebindReject.
func WithRebindPolicy(policy RebindPolicy) BuildOption {
	return func(b *builder) {
		b.rebind = policy
	}
}

// Build converts a program into a value graph.  Operands referring to the same
// name become the same (shared) node.  Declared inputs are added first, in
// declaration order, followed by implicit leaves and instruction destinations
// in the order they are first encountered.  Errors are terminal, and no graph
// is returned.
func Build(program ir.Program, options ...BuildOption) (*Graph, error) {
	b := &builder{
		graph:          NewGraph(),
		implicitLeaves: true,
		rebind:         RebindReject,
		defined:        make(map[string]bool),
	}
	//
	for _, option := range options {
		option(b)
	}
	//
	if err := b.build(program); err != nil {
		return nil, err
	}
	//
	return b.graph, nil
}

type builder struct {
	graph          *Graph
	implicitLeaves bool
	rebind         RebindPolicy
	// Names defined as destinations somewhere in the program.
	defined map[string]bool
}

func (p *builder) build(program ir.Program) error {
	for _, insn := range program.Instructions {
		p.defined[insn.Dst] = true
	}
	// Declared inputs
	for _, input := range program.Inputs {
		if _, ok := p.graph.Lookup(input); ok || p.defined[input] {
			return &RebindError{input, math.MaxUint}
		}
		//
		p.graph.Leaf(input)
	}
	//
	for i, insn := range program.Instructions {
		if err := p.buildInstruction(uint(i), insn); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *builder) buildInstruction(index uint, insn ir.Instruction) error {
	if !insn.Op.IsBinary() {
		return &InstructionError{insn.Dst, index, "opcode " + insn.Op.String() + " is not a binary operation"}
	}
	//
	lhs, err := p.resolve(index, insn.Lhs)
	if err != nil {
		return err
	}
	//
	rhs, err := p.resolve(index, insn.Rhs)
	if err != nil {
		return err
	}
	//
	if id, ok := p.graph.Lookup(insn.Dst); ok {
		node := p.graph.Node(id)
		// Only an identical redefinition can be reused.
		if p.rebind == RebindReuse && node.Opcode() == insn.Op && slices.Equal(node.Operands(), []NodeId{lhs, rhs}) {
			log.Debugf("reusing identical definition of %s", insn.Dst)
			p.graph.setRoot(id)
			//
			return nil
		}
		//
		return &RebindError{insn.Dst, index}
	}
	//
	p.graph.Binary(insn.Dst, insn.Op, lhs, rhs)
	//
	return nil
}

// Resolve a name read by an instruction, creating a fresh leaf for it when
// permitted.
func (p *builder) resolve(index uint, name string) (NodeId, error) {
	if id, ok := p.graph.Lookup(name); ok {
		return id, nil
	} else if p.defined[name] || !p.implicitLeaves {
		// Either a forward reference to a value defined later, or an
		// undeclared input.
		return 0, &ReferenceError{name, index}
	}
	//
	log.Debugf("introducing leaf %s", name)
	//
	return p.graph.Leaf(name), nil
}
