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
package tile

import (
	"fmt"

	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/pattern"
)

// Tile describes one instruction encoding: the shape of the subtree it
// implements, the resource it executes on and its intrinsic cost.
type Tile struct {
	Name    string
	Pattern *pattern.Pattern
	Loc     Loc
	Cost    uint
}

// NewTile constructs a tile whose cost is the unit cost of its resource.
func NewTile(name string, loc Loc, pattern *pattern.Pattern) Tile {
	return Tile{name, pattern, loc, loc.UnitCost()}
}

func (p Tile) String() string {
	return fmt.Sprintf("%s %s@%s:%d", p.Name, p.Pattern.String(), p.Loc.String(), p.Cost)
}

// Catalog is an ordered sequence of tiles.  Order is significant: when two
// tiles achieve the same cost for a node, the earlier one is chosen.
type Catalog struct {
	tiles []Tile
}

// NewCatalog constructs a catalog from zero or more tiles, in order.
func NewCatalog(tiles ...Tile) *Catalog {
	return &Catalog{tiles}
}

// Add appends a tile to the end of this catalog.
func (p *Catalog) Add(tile Tile) {
	p.tiles = append(p.tiles, tile)
}

// Len returns the number of tiles in this catalog.
func (p *Catalog) Len() uint {
	return uint(len(p.tiles))
}

// Get returns the ith tile of this catalog.
func (p *Catalog) Get(i uint) *Tile {
	return &p.tiles[i]
}

// Tiles returns the tiles of this catalog, in order.
func (p *Catalog) Tiles() []Tile {
	return p.tiles
}

// Covers determines whether some tile can cover a node of the given opcode
// independently of its operands.  Such a tile has a pattern without
// sub-patterns whose opcode matches.
func (p *Catalog) Covers(op ir.Opcode) bool {
	for _, tile := range p.tiles {
		if tile.Pattern.IsLeaf() && tile.Pattern.Op.Matches(op) {
			return true
		}
	}
	//
	return false
}

// Check returns every concrete opcode which this catalog does not cover.  A
// program containing such an opcode may fail selection.
func (p *Catalog) Check() []ir.Opcode {
	var missing []ir.Opcode
	//
	for _, op := range ir.OPCODES {
		if !p.Covers(op) {
			missing = append(missing, op)
		}
	}
	//
	return missing
}

// DefaultCatalog returns a small catalog targeting all three resources, which
// covers every binary opcode.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Tile{"madd", pattern.Binary(ir.ADD, pattern.Leaf(ir.MUL), nil), DSP, 1},
		Tile{"add", pattern.Leaf(ir.ADD), LUT, 3},
		Tile{"mul", pattern.Leaf(ir.MUL), DSP, 1},
		Tile{"sub", pattern.Leaf(ir.SUB), LUT, 2},
		NewTile("add.generic", GENERIC, pattern.Leaf(ir.ADD)),
		NewTile("mul.generic", GENERIC, pattern.Leaf(ir.MUL)),
		NewTile("sub.generic", GENERIC, pattern.Leaf(ir.SUB)),
		Tile{"ref", pattern.Leaf(ir.REF), GENERIC, 0},
	)
}
