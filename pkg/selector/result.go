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
package selector

import (
	"fmt"
	"math"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util/collection/bit"
)

// Annotation records the tile selected for a node, the resource it executes on
// and the total cost of covering the node's subtree.
type Annotation struct {
	Node dag.NodeId
	Tile *tile.Tile
	Loc  tile.Loc
	Cost uint
}

// Instance is one occurrence of a selected tile in the final cover of a graph.
type Instance struct {
	// Node at which the tile is rooted.
	Node dag.NodeId
	Tile *tile.Tile
	// Operands left at the tile's boundary, each of which is the root of
	// another instance.
	Inputs []dag.NodeId
	// Interior nodes computed by this tile.
	Covered []dag.NodeId
}

// Result holds the outcome of selection over a graph.  Annotations are held
// separately from the graph, which is never modified.
type Result struct {
	graph *dag.Graph
	root  dag.NodeId
	// Annotations indexed by node, where nil means unannotated.
	memo []*Annotation
	// Annotated nodes in the order they were first visited.
	order []dag.NodeId
}

func newResult(g *dag.Graph, root dag.NodeId) *Result {
	return &Result{g, root, make([]*Annotation, g.Len()), nil}
}

// Graph returns the graph on which selection was performed.
func (p *Result) Graph() *dag.Graph {
	return p.graph
}

// Root returns the node from which selection was performed.
func (p *Result) Root() dag.NodeId {
	return p.root
}

// Annotation returns the annotation of a given node, if it was reachable from
// the root.
func (p *Result) Annotation(id dag.NodeId) (Annotation, bool) {
	if uint(id) >= uint(len(p.memo)) || p.memo[id] == nil {
		return Annotation{}, false
	}
	//
	return *p.memo[id], true
}

// Lookup returns the annotation of the node bound to a given name, if any.
func (p *Result) Lookup(name string) (Annotation, bool) {
	if id, ok := p.graph.Lookup(name); ok {
		return p.Annotation(id)
	}
	//
	return Annotation{}, false
}

// Annotations returns every annotation, in the order nodes were first visited
// (i.e. operands before their consumers).
func (p *Result) Annotations() []Annotation {
	annotations := make([]Annotation, len(p.order))
	//
	for i, id := range p.order {
		annotations[i] = *p.memo[id]
	}
	//
	return annotations
}

// Cover returns the tile instances needed to compute the root, in dependency
// order.  Starting from the root, each instance contributes the instances of
// its boundary inputs.  Every node appears at most once as the root of an
// instance, even when reached from several boundaries.
func (p *Result) Cover() []Instance {
	var (
		instances []Instance
		emitted   = bit.NewSet(uint(len(p.memo)))
	)
	//
	p.cover(p.root, emitted, &instances)
	//
	return instances
}

func (p *Result) cover(id dag.NodeId, emitted *bit.Set, instances *[]Instance) {
	if !emitted.Insert(uint(id)) {
		return
	}
	//
	annotation := p.memo[id]
	inputs, covered := annotation.Tile.Pattern.Boundary(p.graph, id)
	//
	for _, input := range inputs {
		p.cover(input, emitted, instances)
	}
	//
	*instances = append(*instances, Instance{id, annotation.Tile, inputs, covered})
}

// TotalCost returns the sum of intrinsic costs over the cover of the root.
// Unlike the cost of an annotation, this charges each shared instance exactly
// once.
func (p *Result) TotalCost() uint {
	var total uint
	//
	for _, instance := range p.Cover() {
		total = addCost(total, instance.Tile.Cost)
	}
	//
	return total
}

// Determine the cost of the operands left uncovered by a tile at a given node.
func (p *Result) boundaryCost(candidate *tile.Tile, id dag.NodeId) uint {
	var (
		cost      uint
		inputs, _ = candidate.Pattern.Boundary(p.graph, id)
	)
	//
	for _, input := range inputs {
		if p.memo[input] == nil {
			panic(fmt.Sprintf("operand %s selected after its consumer", p.graph.Node(input).Name()))
		}
		//
		cost = addCost(cost, p.memo[input].Cost)
	}
	//
	return cost
}

func (p *Result) annotate(annotation Annotation) {
	if p.memo[annotation.Node] != nil {
		panic(fmt.Sprintf("node %s annotated twice", p.graph.Node(annotation.Node).Name()))
	}
	//
	p.memo[annotation.Node] = &annotation
	p.order = append(p.order, annotation.Node)
}

// Add two costs, saturating at math.MaxUint rather than wrapping.
func addCost(lhs uint, rhs uint) uint {
	if sum := lhs + rhs; sum >= lhs {
		return sum
	}
	//
	return math.MaxUint
}
