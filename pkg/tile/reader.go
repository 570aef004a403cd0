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
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/consensys/go-isel/pkg/pattern"
	"github.com/consensys/go-isel/pkg/util/source"
	"github.com/consensys/go-isel/pkg/util/source/sexp"
)

// ReadCatalogFile reads a catalog from a file whose format is determined by its
// extension: ".lisp" for s-expressions, ".json" or ".yaml"/".yml" otherwise.
// Syntax errors in s-expression catalogs are returned separately, such that
// they can be reported against the original text.
func ReadCatalogFile(filename string) (*Catalog, []source.SyntaxError, error) {
	srcfile, err := source.ReadFile(filename)
	//
	if err != nil {
		return nil, nil, err
	}
	//
	switch ext := filepath.Ext(filename); ext {
	case ".lisp":
		catalog, errs := FromLisp(srcfile)
		return catalog, errs, nil
	case ".json":
		catalog, err := FromJson([]byte(string(srcfile.Contents())))
		return catalog, nil, err
	case ".yaml", ".yml":
		catalog, err := FromYaml([]byte(string(srcfile.Contents())))
		return catalog, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown catalog format \"%s\"", ext)
	}
}

// FromLisp parses a catalog written as a sequence of declarations of the form
// "(tile NAME LOC [COST] PATTERN)".  When the cost is omitted, the unit cost of
// the resource is used.
func FromLisp(srcfile *source.File) (*Catalog, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	var (
		catalog = NewCatalog()
		errs    []source.SyntaxError
	)
	//
	for _, term := range terms {
		tile, err := parseTile(term, srcmap)
		//
		if err != nil {
			errs = append(errs, *err)
		} else {
			catalog.Add(tile)
		}
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return catalog, nil
}

func parseTile(term sexp.SExp, srcmap *source.Map[sexp.SExp]) (Tile, *source.SyntaxError) {
	var (
		list = term.AsList()
		cost uint
	)
	//
	if list == nil || !list.MatchSymbols(4, "tile") || list.Len() > 5 {
		return Tile{}, srcmap.SyntaxError(term, "expected (tile name loc [cost] pattern)")
	}
	//
	name := list.Get(1).AsSymbol()
	if name == nil {
		return Tile{}, srcmap.SyntaxError(list.Get(1), "invalid tile name")
	}
	//
	loc, ok := parseLoc(list.Get(2))
	if !ok {
		return Tile{}, srcmap.SyntaxError(list.Get(2), "unknown resource")
	}
	//
	cost = loc.UnitCost()
	//
	if list.Len() == 5 {
		if cost, ok = parseCost(list.Get(3)); !ok {
			return Tile{}, srcmap.SyntaxError(list.Get(3), "invalid cost")
		}
	}
	//
	p, err := pattern.Parse(list.Get(list.Len() - 1))
	//
	var perr *pattern.Error
	if errors.As(err, &perr) {
		return Tile{}, perr.SyntaxError(srcmap)
	}
	//
	return Tile{name.Value, p, loc, cost}, nil
}

func parseLoc(term sexp.SExp) (Loc, bool) {
	if symbol := term.AsSymbol(); symbol != nil {
		return ParseLoc(symbol.Value)
	}
	//
	return 0, false
}

func parseCost(term sexp.SExp) (uint, bool) {
	if symbol := term.AsSymbol(); symbol != nil {
		if cost, err := strconv.ParseUint(symbol.Value, 10, 32); err == nil {
			return uint(cost), true
		}
	}
	//
	return 0, false
}
