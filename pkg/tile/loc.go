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

import "fmt"

// Loc identifies the hardware resource on which a tile executes.
type Loc uint8

// GENERIC is the general purpose datapath.
const GENERIC Loc = 0

// LUT is the lookup-table fabric.
const LUT Loc = 1

// DSP is a dedicated arithmetic block.
const DSP Loc = 2

// LOCS lists every resource, in declaration order.
var LOCS = []Loc{GENERIC, LUT, DSP}

// UnitCost returns the intrinsic cost of using this resource, where lower is
// preferred.
func (p Loc) UnitCost() uint {
	switch p {
	case GENERIC:
		return 3
	case LUT:
		return 2
	case DSP:
		return 1
	default:
		panic(fmt.Sprintf("unknown resource %d", uint8(p)))
	}
}

func (p Loc) String() string {
	switch p {
	case GENERIC:
		return "generic"
	case LUT:
		return "lut"
	case DSP:
		return "dsp"
	default:
		return fmt.Sprintf("loc(%d)", uint8(p))
	}
}

// ParseLoc parses the name of a resource, accepting "gen" as shorthand for
// the generic datapath.
func ParseLoc(name string) (Loc, bool) {
	if name == "gen" {
		return GENERIC, true
	}
	//
	for _, loc := range LOCS {
		if loc.String() == name {
			return loc, true
		}
	}
	//
	return 0, false
}
