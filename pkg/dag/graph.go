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
	"fmt"

	"github.com/consensys/go-isel/pkg/ir"
)

// NodeId is a stable index identifying a node within its graph.
type NodeId uint

// Node is a single value in a value graph.  A node is either a leaf (opcode
// REF, no operands) or a binary operation with exactly two ordered operands.
// Operands are held by id, hence a node may be shared by any number of
// consumers without being copied.
type Node struct {
	id       NodeId
	name     string
	opcode   ir.Opcode
	operands []NodeId
}

// Id returns the identifier of this node within its graph.
func (p *Node) Id() NodeId {
	return p.id
}

// Name returns the (unique) name of the value this node represents.
func (p *Node) Name() string {
	return p.name
}

// Opcode returns the operation computing this node.
func (p *Node) Opcode() ir.Opcode {
	return p.opcode
}

// Operands returns the operands of this node, in order (lhs then rhs).  This
// is empty for a leaf.
func (p *Node) Operands() []NodeId {
	return p.operands
}

// IsLeaf determines whether this node has no operands.
func (p *Node) IsLeaf() bool {
	return len(p.operands) == 0
}

// Lhs returns the left operand of a binary node.
func (p *Node) Lhs() NodeId {
	return p.operands[0]
}

// Rhs returns the right operand of a binary node.
func (p *Node) Rhs() NodeId {
	return p.operands[1]
}

func (p *Node) String() string {
	return p.name
}

// Graph is an arena of value nodes addressed by NodeId.  Since nodes are only
// ever added, and operands must exist before their consumers, every graph is
// acyclic by construction.
type Graph struct {
	nodes []Node
	// Maps names to the node they are bound to.
	names map[string]NodeId
	// Last defined destination, or nil if no instruction was built.
	root *NodeId
}

// NewGraph constructs an initially empty graph.
func NewGraph() *Graph {
	return &Graph{nil, make(map[string]NodeId), nil}
}

// Len returns the number of nodes in this graph.
func (p *Graph) Len() uint {
	return uint(len(p.nodes))
}

// Node returns the node with the given identifier.
func (p *Graph) Node(id NodeId) *Node {
	return &p.nodes[id]
}

// Lookup returns the node bound to a given name, if one exists.
func (p *Graph) Lookup(name string) (NodeId, bool) {
	id, ok := p.names[name]
	return id, ok
}

// Root returns the last destination defined in this graph, if any.  This is
// typically the value a caller wants selected.
func (p *Graph) Root() (NodeId, bool) {
	if p.root == nil {
		return 0, false
	}
	//
	return *p.root, true
}

// Nodes returns the identifiers of all nodes, in creation order.
func (p *Graph) Nodes() []NodeId {
	ids := make([]NodeId, len(p.nodes))
	//
	for i := range ids {
		ids[i] = NodeId(i)
	}
	//
	return ids
}

// Leaf adds a new leaf node for a given name.  The name must not already be
// bound.
func (p *Graph) Leaf(name string) NodeId {
	return p.add(name, ir.REF, nil)
}

// Binary adds a new binary node for a given name, whose operands must already
// exist.  The name must not already be bound.
func (p *Graph) Binary(name string, op ir.Opcode, lhs NodeId, rhs NodeId) NodeId {
	if !op.IsBinary() {
		panic(fmt.Sprintf("opcode %s is not binary", op.String()))
	} else if uint(lhs) >= p.Len() || uint(rhs) >= p.Len() {
		panic("unknown operand")
	}
	//
	id := p.add(name, op, []NodeId{lhs, rhs})
	p.setRoot(id)
	//
	return id
}

func (p *Graph) setRoot(id NodeId) {
	p.root = &id
}

func (p *Graph) add(name string, op ir.Opcode, operands []NodeId) NodeId {
	if _, ok := p.names[name]; ok {
		panic(fmt.Sprintf("name %s already bound", name))
	}
	//
	id := NodeId(len(p.nodes))
	p.nodes = append(p.nodes, Node{id, name, op, operands})
	p.names[name] = id
	//
	return id
}
