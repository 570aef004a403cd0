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
package pattern

import (
	"strings"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/ir"
)

// Pattern is a tree-shaped matcher over value graph nodes.  It constrains the
// opcode of a node and, optionally, the shape of its operands.  A nil
// sub-pattern is a boundary: anything is accepted there, and the operand will
// be covered independently.
type Pattern struct {
	Op    ir.Opcode
	Left  *Pattern
	Right *Pattern
}

// Leaf constructs a pattern with no sub-patterns, matching any node whose
// opcode matches.
func Leaf(op ir.Opcode) *Pattern {
	return &Pattern{op, nil, nil}
}

// Binary constructs a pattern with (optional) sub-patterns for both operands.
func Binary(op ir.Opcode, left *Pattern, right *Pattern) *Pattern {
	return &Pattern{op, left, right}
}

// IsLeaf determines whether this pattern has no sub-patterns.
func (p *Pattern) IsLeaf() bool {
	return p.Left == nil && p.Right == nil
}

// Matches determines whether this pattern matches the subtree rooted at a given
// node.  Opcodes are compared with wildcard-aware equality.
func (p *Pattern) Matches(g *dag.Graph, id dag.NodeId) bool {
	node := g.Node(id)
	//
	if !p.Op.Matches(node.Opcode()) {
		return false
	} else if p.IsLeaf() {
		return true
	} else if len(node.Operands()) < 2 {
		// Constrained operands, but no operands to constrain.
		return false
	}
	//
	if p.Left != nil && !p.Left.Matches(g, node.Lhs()) {
		return false
	}
	//
	return p.Right == nil || p.Right.Matches(g, node.Rhs())
}

// Depth returns the number of levels in this pattern, where a leaf pattern has
// depth 1.
func (p *Pattern) Depth() uint {
	var depth uint
	//
	if p.Left != nil {
		depth = p.Left.Depth()
	}
	//
	if p.Right != nil {
		depth = max(depth, p.Right.Depth())
	}
	//
	return depth + 1
}

// Boundary appends the ids of every operand which this pattern leaves
// uncovered when matched against a given node, together with the ids of
// interior nodes it absorbs.  This assumes the pattern matches.
func (p *Pattern) Boundary(g *dag.Graph, id dag.NodeId) (inputs []dag.NodeId, interior []dag.NodeId) {
	return p.boundary(g, id, nil, nil)
}

func (p *Pattern) boundary(g *dag.Graph, id dag.NodeId, inputs, interior []dag.NodeId) ([]dag.NodeId,
	[]dag.NodeId) {
	node := g.Node(id)
	//
	if p.IsLeaf() {
		// Matching stops here, so every operand is covered elsewhere.
		return append(inputs, node.Operands()...), interior
	}
	//
	for i, sub := range []*Pattern{p.Left, p.Right} {
		operand := node.Operands()[i]
		//
		if sub == nil {
			inputs = append(inputs, operand)
		} else {
			interior = append(interior, operand)
			inputs, interior = sub.boundary(g, operand, inputs, interior)
		}
	}
	//
	return inputs, interior
}

func (p *Pattern) String() string {
	var builder strings.Builder
	//
	p.write(&builder, true)
	//
	return builder.String()
}

func (p *Pattern) write(builder *strings.Builder, outermost bool) {
	switch {
	case p.IsLeaf() && outermost:
		builder.WriteString("(")
		builder.WriteString(p.Op.String())
		builder.WriteString(")")
	case p.IsLeaf():
		builder.WriteString(p.Op.String())
	default:
		builder.WriteString("(")
		builder.WriteString(p.Op.String())
		//
		for _, sub := range []*Pattern{p.Left, p.Right} {
			builder.WriteString(" ")
			//
			if sub == nil {
				builder.WriteString(UNCONSTRAINED)
			} else {
				sub.write(builder, false)
			}
		}
		//
		builder.WriteString(")")
	}
}
