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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consensys/go-isel/pkg/pattern"
	"github.com/consensys/go-isel/pkg/util/source"
	"github.com/consensys/go-isel/pkg/util/source/sexp"
	"gopkg.in/yaml.v3"
)

// catalogFile is the document layout shared by JSON and YAML catalogs.
type catalogFile struct {
	Tiles []tileEntry `json:"tiles" yaml:"tiles"`
}

type tileEntry struct {
	Name string `json:"name" yaml:"name"`
	Loc  string `json:"loc" yaml:"loc"`
	// Optional, defaulting to the unit cost of the resource.
	Cost *uint `json:"cost,omitempty" yaml:"cost,omitempty"`
	// Pattern in s-expression form, e.g. "(add mul _)".
	Pattern string `json:"pattern" yaml:"pattern"`
}

// FromJson reads a catalog from its JSON encoding.
func FromJson(bytes []byte) (*Catalog, error) {
	var file catalogFile
	//
	if err := json.Unmarshal(bytes, &file); err != nil {
		return nil, err
	}
	//
	return file.catalog()
}

// FromYaml reads a catalog from its YAML encoding, which uses the same layout
// as the JSON encoding.
func FromYaml(bytes []byte) (*Catalog, error) {
	var file catalogFile
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, err
	}
	//
	return file.catalog()
}

// ToJson encodes a catalog as JSON.
func ToJson(catalog *Catalog) ([]byte, error) {
	return json.MarshalIndent(encode(catalog), "", "  ")
}

// ToYaml encodes a catalog as YAML.
func ToYaml(catalog *Catalog) ([]byte, error) {
	return yaml.Marshal(encode(catalog))
}

func encode(catalog *Catalog) catalogFile {
	var file catalogFile
	//
	for _, tile := range catalog.Tiles() {
		cost := tile.Cost
		file.Tiles = append(file.Tiles, tileEntry{tile.Name, tile.Loc.String(), &cost, tile.Pattern.String()})
	}
	//
	return file
}

func (p *catalogFile) catalog() (*Catalog, error) {
	var (
		catalog = NewCatalog()
		errs    []error
	)
	//
	for i, entry := range p.Tiles {
		if tile, err := entry.tile(); err != nil {
			errs = append(errs, fmt.Errorf("tile #%d (%s): %w", i, entry.Name, err))
		} else {
			catalog.Add(tile)
		}
	}
	//
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	//
	return catalog, nil
}

func (p *tileEntry) tile() (Tile, error) {
	if p.Name == "" {
		return Tile{}, errors.New("missing name")
	}
	//
	loc, ok := ParseLoc(p.Loc)
	if !ok {
		return Tile{}, fmt.Errorf("unknown resource \"%s\"", p.Loc)
	}
	//
	terms, _, serr := sexp.ParseAll(source.NewSourceFile(p.Name, []byte(p.Pattern)))
	//
	if serr != nil {
		return Tile{}, serr
	} else if len(terms) != 1 {
		return Tile{}, fmt.Errorf("invalid pattern \"%s\"", p.Pattern)
	}
	//
	pat, err := pattern.Parse(terms[0])
	if err != nil {
		return Tile{}, err
	}
	//
	cost := loc.UnitCost()
	if p.Cost != nil {
		cost = *p.Cost
	}
	//
	return Tile{p.Name, pat, loc, cost}, nil
}
