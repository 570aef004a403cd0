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
	"errors"
	"testing"

	"github.com/consensys/go-isel/pkg/dag"
	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/util/assert"
	"github.com/consensys/go-isel/pkg/util/source"
	"github.com/consensys/go-isel/pkg/util/source/sexp"
)

func Test_Match_00(t *testing.T) {
	g := mulAdd(t)
	// Bare patterns match on opcode only.
	assert.True(t, Leaf(ir.ADD).Matches(g, id(t, g, "t1")))
	assert.False(t, Leaf(ir.MUL).Matches(g, id(t, g, "t1")))
	assert.True(t, Leaf(ir.MUL).Matches(g, id(t, g, "t0")))
	assert.True(t, Leaf(ir.REF).Matches(g, id(t, g, "c")))
	assert.False(t, Leaf(ir.REF).Matches(g, id(t, g, "t0")))
}

func Test_Match_01(t *testing.T) {
	g := mulAdd(t)
	fused := Binary(ir.ADD, Leaf(ir.MUL), nil)
	//
	assert.True(t, fused.Matches(g, id(t, g, "t1")))
	assert.False(t, fused.Matches(g, id(t, g, "t0")))
	// Operand order is significant.
	assert.False(t, Binary(ir.ADD, nil, Leaf(ir.MUL)).Matches(g, id(t, g, "t1")))
	assert.True(t, Binary(ir.ADD, nil, Leaf(ir.REF)).Matches(g, id(t, g, "t1")))
}

func Test_Match_02(t *testing.T) {
	g := mulAdd(t)
	// Constrained operands cannot match a leaf.
	assert.False(t, Binary(ir.REF, Leaf(ir.ANY), nil).Matches(g, id(t, g, "a")))
	assert.False(t, Binary(ir.ANY, nil, Leaf(ir.ANY)).Matches(g, id(t, g, "a")))
}

func Test_Match_03(t *testing.T) {
	g := mulAdd(t)
	deep := Binary(ir.ADD, Binary(ir.MUL, Leaf(ir.REF), Leaf(ir.REF)), Leaf(ir.REF))
	//
	assert.True(t, deep.Matches(g, id(t, g, "t1")))
	assert.False(t, Binary(ir.ADD, Binary(ir.MUL, Leaf(ir.MUL), nil), nil).Matches(g, id(t, g, "t1")))
}

func Test_Match_Wildcard(t *testing.T) {
	g := mulAdd(t)
	// A wildcard leaf matches every node.
	for _, node := range g.Nodes() {
		assert.True(t, Leaf(ir.ANY).Matches(g, node))
	}
	//
	assert.True(t, Binary(ir.ANY, Leaf(ir.ANY), Leaf(ir.ANY)).Matches(g, id(t, g, "t1")))
	assert.True(t, Binary(ir.ADD, Leaf(ir.ANY), Leaf(ir.REF)).Matches(g, id(t, g, "t1")))
	assert.False(t, Binary(ir.ANY, Leaf(ir.ANY), Leaf(ir.MUL)).Matches(g, id(t, g, "t1")))
}

func Test_Depth(t *testing.T) {
	assert.Equal(t, 1, Leaf(ir.ADD).Depth())
	assert.Equal(t, 1, Binary(ir.ADD, nil, nil).Depth())
	assert.Equal(t, 2, Binary(ir.ADD, Leaf(ir.MUL), nil).Depth())
	assert.Equal(t, 3, Binary(ir.ADD, nil, Binary(ir.MUL, Leaf(ir.REF), nil)).Depth())
}

func Test_Boundary_01(t *testing.T) {
	g := mulAdd(t)
	// Bare add on t1 leaves both operands as inputs.
	inputs, interior := Leaf(ir.ADD).Boundary(g, id(t, g, "t1"))
	//
	assert.Equal(t, []string{"t0", "c"}, names(g, inputs))
	assert.Equal(t, 0, len(interior))
}

func Test_Boundary_02(t *testing.T) {
	g := mulAdd(t)
	// Fused mul-add absorbs t0, but its operands are inputs.
	inputs, interior := Binary(ir.ADD, Leaf(ir.MUL), nil).Boundary(g, id(t, g, "t1"))
	//
	assert.Equal(t, []string{"a", "b", "c"}, names(g, inputs))
	assert.Equal(t, []string{"t0"}, names(g, interior))
}

func Test_Boundary_03(t *testing.T) {
	g := mulAdd(t)
	inputs, interior := Leaf(ir.REF).Boundary(g, id(t, g, "a"))
	//
	assert.Equal(t, 0, len(inputs))
	assert.Equal(t, 0, len(interior))
}

func Test_Parse_01(t *testing.T) {
	checkParse(t, "add", Leaf(ir.ADD))
	checkParse(t, "(mul)", Leaf(ir.MUL))
	checkParse(t, "*", Leaf(ir.ANY))
	checkParse(t, "(any)", Leaf(ir.ANY))
}

func Test_Parse_02(t *testing.T) {
	checkParse(t, "(add _ _)", Binary(ir.ADD, nil, nil))
	checkParse(t, "(add mul _)", Binary(ir.ADD, Leaf(ir.MUL), nil))
	checkParse(t, "(add _ (mul))", Binary(ir.ADD, nil, Leaf(ir.MUL)))
	checkParse(t, "(sub (mul ref *) ref)", Binary(ir.SUB, Binary(ir.MUL, Leaf(ir.REF), Leaf(ir.ANY)), Leaf(ir.REF)))
}

func Test_Parse_Invalid_01(t *testing.T) {
	checkParseError(t, "_", "_")
	checkParseError(t, "()", "()")
	checkParseError(t, "(add mul)", "(add mul)")
	checkParseError(t, "(add _ _ _)", "(add _ _ _)")
}

func Test_Parse_Invalid_02(t *testing.T) {
	checkParseError(t, "div", "div")
	checkParseError(t, "(add (div) _)", "div")
	checkParseError(t, "((add) _ _)", "(add)")
}

func Test_Pattern_String(t *testing.T) {
	for _, input := range []string{"(add)", "(add mul _)", "(mul _ ref)", "(sub (mul ref *) _)"} {
		p := parse(t, input)
		//
		assert.Equal(t, input, p.String())
		// String is parseable
		assert.Equal(t, p, parse(t, p.String()))
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// t0 = mul a, b; t1 = add t0, c
func mulAdd(t *testing.T) *dag.Graph {
	g, err := dag.Build(ir.NewProgram(
		ir.NewInstruction(ir.MUL, "t0", "a", "b"),
		ir.NewInstruction(ir.ADD, "t1", "t0", "c")))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return g
}

func id(t *testing.T, g *dag.Graph, name string) dag.NodeId {
	id, ok := g.Lookup(name)
	//
	if !ok {
		t.Fatalf("unknown node %s", name)
	}
	//
	return id
}

func names(g *dag.Graph, ids []dag.NodeId) []string {
	var result []string
	//
	for _, id := range ids {
		result = append(result, g.Node(id).Name())
	}
	//
	return result
}

func parseTerm(t *testing.T, input string) sexp.SExp {
	terms, _, err := sexp.ParseAll(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Fatal(err.Message())
	} else if len(terms) != 1 {
		t.Fatalf("expected one term, got %d", len(terms))
	}
	//
	return terms[0]
}

func parse(t *testing.T, input string) *Pattern {
	p, err := Parse(parseTerm(t, input))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return p
}

func checkParse(t *testing.T, input string, expected *Pattern) {
	assert.Equal(t, expected, parse(t, input))
}

// Check parsing fails, blaming the given term.
func checkParseError(t *testing.T, input string, term string) {
	var perr *Error
	//
	p, err := Parse(parseTerm(t, input))
	//
	assert.True(t, p == nil)
	assert.True(t, errors.As(err, &perr), "expected pattern error for %s", input)
	assert.Equal(t, term, perr.Term().String())
}
