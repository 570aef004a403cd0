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

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/tile"
	log "github.com/sirupsen/logrus"
)

// NoCoverError arises when no tile in the catalog matches some node reachable
// from the root.
type NoCoverError struct {
	name   string
	opcode ir.Opcode
}

// Name returns the name of the node which could not be covered.
func (p *NoCoverError) Name() string {
	return p.name
}

// Opcode returns the opcode of the node which could not be covered.
func (p *NoCoverError) Opcode() ir.Opcode {
	return p.opcode
}

func (p *NoCoverError) Error() string {
	return fmt.Sprintf("no tile covers \"%s\" (%s)", p.name, p.opcode.String())
}

// Select chooses, for every node reachable from a given root, the tile of
// minimum total cost covering it.  The total cost of a tile at a node is its
// intrinsic cost plus the (already selected) cost of every operand left at its
// boundary.  Nodes consumed by a tile's pattern are not charged to it.  Since a
// shared operand is charged at every boundary reaching it, costs can grow
// exponentially with sharing depth and saturate at math.MaxUint.  When
// several tiles achieve the minimum, the first in catalog order is chosen.
// Failure to cover any node is terminal, and no partial result is returned.
func Select(g *dag.Graph, root dag.NodeId, catalog *tile.Catalog) (*Result, error) {
	result := newResult(g, root)
	//
	for _, id := range dag.PostorderUnique(g, root) {
		annotation, err := selectNode(result, id, catalog)
		if err != nil {
			return nil, err
		}
		//
		result.annotate(annotation)
	}
	//
	return result, nil
}

func selectNode(result *Result, id dag.NodeId, catalog *tile.Catalog) (Annotation, error) {
	var (
		node = result.graph.Node(id)
		best *Annotation
	)
	//
	for i := range catalog.Len() {
		candidate := catalog.Get(i)
		//
		if !candidate.Pattern.Matches(result.graph, id) {
			continue
		}
		//
		cost := addCost(candidate.Cost, result.boundaryCost(candidate, id))
		//
		log.Debugf("%s: candidate %s at %s costs %d", node.Name(), candidate.Name, candidate.Loc.String(), cost)
		// Strict comparison, so ties keep the earliest tile.
		if best == nil || cost < best.Cost {
			best = &Annotation{id, candidate, candidate.Loc, cost}
		}
	}
	//
	if best == nil {
		return Annotation{}, &NoCoverError{node.Name(), node.Opcode()}
	}
	//
	log.Debugf("%s: selected %s at %s costing %d", node.Name(), best.Tile.Name, best.Loc.String(), best.Cost)
	//
	return *best, nil
}
