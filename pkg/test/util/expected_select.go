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
package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-isel/pkg/tile"
	"github.com/consensys/go-isel/pkg/util/source"
)

// Expectation describes the outcome expected of selection, either for a single
// value (";;select:NAME:TILE:LOC:COST") or for the overall cover
// (";;total:COST").
type Expectation struct {
	// Name of the value, or empty for the total.
	Name string
	Tile string
	Loc  tile.Loc
	Cost uint
}

func (p Expectation) String() string {
	if p.Name == "" {
		return fmt.Sprintf("total %d", p.Cost)
	}
	//
	return fmt.Sprintf("%s selects %s@%s:%d", p.Name, p.Tile, p.Loc.String(), p.Cost)
}

func extractSelection(lineno int, lines []source.Line, _ *source.File) (bool, Expectation, error) {
	var (
		contents = lines[lineno].String()
		splits   = strings.Split(contents, ":")
	)
	//
	switch {
	case strings.HasPrefix(contents, ";;select:") && len(splits) == 5:
		loc, ok := tile.ParseLoc(splits[3])
		if !ok {
			return true, Expectation{}, fmt.Errorf("unknown resource in \"%s\"", contents)
		}
		//
		cost, err := strconv.ParseUint(splits[4], 10, 32)
		//
		return true, Expectation{splits[1], splits[2], loc, uint(cost)}, err
	case strings.HasPrefix(contents, ";;total:") && len(splits) == 2:
		cost, err := strconv.ParseUint(splits[1], 10, 32)
		//
		return true, Expectation{Cost: uint(cost)}, err
	case strings.HasPrefix(contents, ";;select") || strings.HasPrefix(contents, ";;total"):
		return true, Expectation{}, fmt.Errorf("malformed expectation \"%s\"", contents)
	default:
		return false, Expectation{}, nil
	}
}
