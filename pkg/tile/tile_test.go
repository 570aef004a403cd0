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
	"testing"

	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/pattern"
	"github.com/consensys/go-isel/pkg/util/assert"
	"github.com/consensys/go-isel/pkg/util/source"
)

func Test_Loc_00(t *testing.T) {
	assert.Equal(t, 3, GENERIC.UnitCost())
	assert.Equal(t, 2, LUT.UnitCost())
	assert.Equal(t, 1, DSP.UnitCost())
	//
	for _, loc := range LOCS {
		parsed, ok := ParseLoc(loc.String())
		assert.True(t, ok)
		assert.Equal(t, loc, parsed)
	}
	//
	gen, _ := ParseLoc("gen")
	_, ok := ParseLoc("fpga")
	assert.Equal(t, GENERIC, gen)
	assert.False(t, ok)
}

func Test_Catalog_00(t *testing.T) {
	catalog := NewCatalog()
	//
	assert.Equal(t, 0, catalog.Len())
	assert.Equal(t, []ir.Opcode{ir.REF, ir.ADD, ir.MUL, ir.SUB}, catalog.Check())
	//
	catalog.Add(NewTile("add", LUT, pattern.Leaf(ir.ADD)))
	assert.Equal(t, 1, catalog.Len())
	assert.Equal(t, 2, catalog.Get(0).Cost)
	assert.True(t, catalog.Covers(ir.ADD))
	assert.False(t, catalog.Covers(ir.MUL))
}

func Test_Catalog_01(t *testing.T) {
	// Fused patterns alone do not cover their opcode.
	catalog := NewCatalog(NewTile("madd", DSP, pattern.Binary(ir.ADD, pattern.Leaf(ir.MUL), nil)))
	//
	assert.False(t, catalog.Covers(ir.ADD))
	// Wildcards cover everything.
	catalog.Add(NewTile("any", GENERIC, pattern.Leaf(ir.ANY)))
	assert.Equal(t, 0, len(catalog.Check()))
}

func Test_Catalog_Default(t *testing.T) {
	catalog := DefaultCatalog()
	//
	assert.Equal(t, 0, len(catalog.Check()))
	assert.Equal(t, "madd", catalog.Get(0).Name)
	assert.Equal(t, 8, catalog.Len())
}

func Test_Lisp_01(t *testing.T) {
	catalog := checkLisp(t, `
	; fused multiply-add
	(tile madd dsp 1 (add mul _))
	(tile add lut (add))
	(tile ref generic 0 ref)`)
	//
	assert.Equal(t, 3, catalog.Len())
	assert.Equal(t, Tile{"madd", pattern.Binary(ir.ADD, pattern.Leaf(ir.MUL), nil), DSP, 1}, *catalog.Get(0))
	// Cost defaults to unit cost
	assert.Equal(t, Tile{"add", pattern.Leaf(ir.ADD), LUT, 2}, *catalog.Get(1))
	assert.Equal(t, Tile{"ref", pattern.Leaf(ir.REF), GENERIC, 0}, *catalog.Get(2))
}

func Test_Lisp_Invalid_01(t *testing.T) {
	checkLispError(t, "(tile madd dsp)", "(tile madd dsp)")
	checkLispError(t, "(tiles madd dsp add)", "(tiles madd dsp add)")
	checkLispError(t, "(tile madd dsp 1 2 add)", "(tile madd dsp 1 2 add)")
	checkLispError(t, "tile", "tile")
}

func Test_Lisp_Invalid_02(t *testing.T) {
	checkLispError(t, "(tile (madd) dsp add)", "(madd)")
	checkLispError(t, "(tile madd fpga add)", "fpga")
	checkLispError(t, "(tile madd dsp -1 add)", "-1")
	checkLispError(t, "(tile madd dsp 1 (add div _))", "div")
}

func Test_Lisp_Invalid_03(t *testing.T) {
	// Errors are reported for every declaration.
	_, errs := FromLisp(source.NewSourceFile("test.lisp", []byte("(tile a dsp)\n(tile b lut add)\n(tile c gpu add)")))
	//
	assert.Equal(t, 2, len(errs))
	l0, l1 := errs[0].EnclosingLine(), errs[1].EnclosingLine()
	assert.Equal(t, 1, l0.Number())
	assert.Equal(t, 3, l1.Number())
}

func Test_Lisp_Invalid_04(t *testing.T) {
	_, errs := FromLisp(source.NewSourceFile("test.lisp", []byte("(tile a dsp add")))
	//
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "unexpected end-of-file", errs[0].Message())
}

func Test_Json_01(t *testing.T) {
	catalog, err := FromJson([]byte(`{"tiles":[
		{"name":"madd","loc":"dsp","cost":1,"pattern":"(add mul _)"},
		{"name":"add","loc":"lut","pattern":"add"},
		{"name":"ref","loc":"generic","cost":0,"pattern":"(ref)"}]}`))
	//
	assert.True(t, err == nil, "unexpected error %v", err)
	assert.Equal(t, lispCatalog(t), catalog)
}

func Test_Json_Invalid_01(t *testing.T) {
	checkJsonError(t, `{"tiles":[{"name":"add","loc":"fpga","pattern":"add"}]}`)
	checkJsonError(t, `{"tiles":[{"loc":"lut","pattern":"add"}]}`)
	checkJsonError(t, `{"tiles":[{"name":"add","loc":"lut","pattern":"(add"}]}`)
	checkJsonError(t, `{"tiles":[{"name":"add","loc":"lut","pattern":"add mul"}]}`)
	checkJsonError(t, `{"tiles":[{"name":"add","loc":"lut","pattern":"(add mul)"}]}`)
	checkJsonError(t, `{"tiles":[{"name":"add","loc":"lut","cost":-1,"pattern":"add"}]}`)
	checkJsonError(t, `{"tiles":`)
}

func Test_Yaml_01(t *testing.T) {
	catalog, err := FromYaml([]byte(`
tiles:
  - name: madd
    loc: dsp
    cost: 1
    pattern: (add mul _)
  - name: add
    loc: lut
    pattern: add
  - name: ref
    loc: generic
    cost: 0
    pattern: (ref)
`))
	//
	assert.True(t, err == nil, "unexpected error %v", err)
	assert.Equal(t, lispCatalog(t), catalog)
}

func Test_Yaml_Invalid_01(t *testing.T) {
	_, err := FromYaml([]byte("tiles:\n  - name: add\n    loc: gpu\n    pattern: add\n"))
	//
	assert.True(t, err != nil)
}

func Test_Encode_01(t *testing.T) {
	// Encoding preserves every tile.
	bytes, err := ToJson(DefaultCatalog())
	assert.True(t, err == nil)
	//
	catalog, err := FromJson(bytes)
	assert.True(t, err == nil, "unexpected error %v", err)
	assert.Equal(t, DefaultCatalog(), catalog)
	//
	bytes, err = ToYaml(DefaultCatalog())
	assert.True(t, err == nil)
	//
	catalog, err = FromYaml(bytes)
	assert.True(t, err == nil, "unexpected error %v", err)
	assert.Equal(t, DefaultCatalog(), catalog)
}

// ===================================================================
// Test Helpers
// ===================================================================

func lispCatalog(t *testing.T) *Catalog {
	return checkLisp(t, "(tile madd dsp 1 (add mul _)) (tile add lut add) (tile ref gen 0 (ref))")
}

func checkLisp(t *testing.T, input string) *Catalog {
	catalog, errs := FromLisp(source.NewSourceFile("test.lisp", []byte(input)))
	//
	for _, err := range errs {
		t.Error(err.Error())
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	return catalog
}

// Check a catalog is rejected, with the error spanning the given text.
func checkLispError(t *testing.T, input string, text string) {
	srcfile := source.NewSourceFile("test.lisp", []byte(input))
	catalog, errs := FromLisp(srcfile)
	//
	assert.True(t, catalog == nil)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, text, srcfile.Text(errs[0].Span()))
}

func checkJsonError(t *testing.T, input string) {
	catalog, err := FromJson([]byte(input))
	//
	assert.True(t, catalog == nil)
	assert.True(t, err != nil, "expected error for %s", input)
}
