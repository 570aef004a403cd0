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
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/consensys/go-isel/pkg/ir"
	"github.com/consensys/go-isel/pkg/util/assert"
)

func Test_Build_00(t *testing.T) {
	g := checkBuild(t, ir.NewProgram())
	//
	_, ok := g.Root()
	assert.Equal(t, 0, g.Len())
	assert.False(t, ok)
}

func Test_Build_01(t *testing.T) {
	g := checkBuild(t, mulAdd())
	// Leaves are created on first mention: a, b, t0, c, t1.
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []string{"a", "b", "t0", "c", "t1"}, names(g, g.Nodes()))
	//
	t1 := lookup(t, g, "t1")
	root, _ := g.Root()
	assert.Equal(t, t1, root)
	assert.Equal(t, ir.ADD, g.Node(t1).Opcode())
	assert.Equal(t, []string{"t0", "c"}, names(g, g.Node(t1).Operands()))
	assert.True(t, g.Node(lookup(t, g, "c")).IsLeaf())
	assert.Equal(t, ir.REF, g.Node(lookup(t, g, "c")).Opcode())
}

func Test_Build_02(t *testing.T) {
	// Both operands of t1 are the same node.
	g := checkBuild(t, ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "t0")))
	t1 := g.Node(lookup(t, g, "t1"))
	//
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, t1.Lhs(), t1.Rhs())
}

func Test_Build_03(t *testing.T) {
	// Operand order is significant.
	g := checkBuild(t, ir.NewProgram(ir.NewInstruction(SUB, "t0", "b", "a")))
	t0 := g.Node(lookup(t, g, "t0"))
	//
	assert.Equal(t, "b", g.Node(t0.Lhs()).Name())
	assert.Equal(t, "a", g.Node(t0.Rhs()).Name())
}

func Test_Build_04(t *testing.T) {
	// Declared inputs come first, in declaration order.
	program := ir.NewProgram(ir.NewInstruction(ADD, "t0", "b", "a")).WithInputs("a", "b")
	g := checkBuild(t, program, WithImplicitLeaves(false))
	//
	assert.Equal(t, []string{"a", "b", "t0"}, names(g, g.Nodes()))
}

func Test_Build_Reference_01(t *testing.T) {
	program := ir.NewProgram(ir.NewInstruction(ADD, "t1", "x", "c")).WithInputs("c")
	//
	checkReferenceError(t, program, "x", 0, WithImplicitLeaves(false))
}

func Test_Build_Reference_02(t *testing.T) {
	// Forward reference to a value defined later
	program := ir.NewProgram(
		ir.NewInstruction(ADD, "t1", "t0", "c"),
		ir.NewInstruction(MUL, "t0", "a", "b"))
	//
	checkReferenceError(t, program, "t0", 0)
}

func Test_Build_Reference_03(t *testing.T) {
	// Self reference
	program := ir.NewProgram(ir.NewInstruction(ADD, "t0", "t0", "a"))
	//
	checkReferenceError(t, program, "t0", 0)
}

func Test_Build_Reference_04(t *testing.T) {
	program := ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "c"))
	//
	checkReferenceError(t, program.WithInputs("a", "b"), "c", 1, WithImplicitLeaves(false))
}

func Test_Build_Rebind_01(t *testing.T) {
	program := ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(MUL, "t0", "a", "b"))
	//
	checkRebindError(t, program, "t0", 1)
}

func Test_Build_Rebind_02(t *testing.T) {
	// Identical redefinitions can be reused
	program := ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "c"),
		ir.NewInstruction(MUL, "t0", "a", "b"))
	g := checkBuild(t, program, WithRebindPolicy(RebindReuse))
	root, _ := g.Root()
	//
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, lookup(t, g, "t0"), root)
}

func Test_Build_Rebind_03(t *testing.T) {
	// Conflicting redefinitions are rejected, even when reusing.
	program := ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(MUL, "t0", "b", "a"))
	//
	checkRebindError(t, program, "t0", 1, WithRebindPolicy(RebindReuse))
}

func Test_Build_Rebind_04(t *testing.T) {
	// Declared input clashing with a destination
	program := ir.NewProgram(ir.NewInstruction(MUL, "a", "b", "c")).WithInputs("a")
	//
	checkRebindError(t, program, "a", math.MaxUint)
}

func Test_Build_Rebind_05(t *testing.T) {
	program := ir.NewProgram().WithInputs("a", "a")
	//
	checkRebindError(t, program, "a", math.MaxUint)
}

func Test_Build_Instruction_01(t *testing.T) {
	var ierr *InstructionError
	//
	_, err := Build(ir.NewProgram(ir.NewInstruction(ir.ANY, "t0", "a", "b")))
	//
	assert.True(t, errors.As(err, &ierr))
	assert.Equal(t, "t0", ierr.Name())
	assert.Equal(t, 0, ierr.Index())
}

func Test_Postorder_01(t *testing.T) {
	g := checkBuild(t, mulAdd())
	order := Postorder(g, lookup(t, g, "t1"))
	//
	assert.Equal(t, []string{"a", "b", "t0", "c", "t1"}, names(g, order))
}

func Test_Postorder_02(t *testing.T) {
	// Shared subtree appears once per path.
	g := checkBuild(t, ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "t0")))
	order := Postorder(g, lookup(t, g, "t1"))
	//
	assert.Equal(t, []string{"a", "b", "t0", "a", "b", "t0", "t1"}, names(g, order))
}

func Test_Postorder_03(t *testing.T) {
	// Unreachable nodes are not visited, and a leaf root is visited alone.
	g := checkBuild(t, mulAdd())
	//
	assert.Equal(t, []string{"a", "b", "t0"}, names(g, Postorder(g, lookup(t, g, "t0"))))
	assert.Equal(t, []string{"c"}, names(g, Postorder(g, lookup(t, g, "c"))))
}

func Test_Postorder_04(t *testing.T) {
	// Every node appears after its operands.
	g := checkBuild(t, ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "c"),
		ir.NewInstruction(SUB, "t2", "t1", "t0"),
		ir.NewInstruction(MUL, "t3", "t2", "t1")))
	root, _ := g.Root()
	seen := make(map[NodeId]bool)
	//
	for _, id := range Postorder(g, root) {
		for _, operand := range g.Node(id).Operands() {
			assert.True(t, seen[operand], "%s visited before operand", g.Node(id).Name())
		}
		//
		seen[id] = true
	}
	//
	assert.True(t, seen[root])
}

func Test_PostorderUnique_01(t *testing.T) {
	g := checkBuild(t, mulAdd())
	order := PostorderUnique(g, lookup(t, g, "t1"))
	//
	assert.Equal(t, []string{"a", "b", "t0", "c", "t1"}, names(g, order))
}

func Test_PostorderUnique_02(t *testing.T) {
	// Shared subtree appears once.
	g := checkBuild(t, ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "t0")))
	order := PostorderUnique(g, lookup(t, g, "t1"))
	//
	assert.Equal(t, []string{"a", "b", "t0", "t1"}, names(g, order))
}

func Test_PostorderUnique_03(t *testing.T) {
	// A doubled chain has an exponential walk, but is visited linearly.
	g := checkBuild(t, doubledChain(64))
	root, _ := g.Root()
	order := PostorderUnique(g, root)
	seen := make(map[NodeId]bool)
	//
	assert.Equal(t, 65, len(order))
	//
	for _, id := range order {
		assert.False(t, seen[id], "%s visited twice", g.Node(id).Name())
		//
		for _, operand := range g.Node(id).Operands() {
			assert.True(t, seen[operand], "%s visited before operand", g.Node(id).Name())
		}
		//
		seen[id] = true
	}
}

func Test_PostorderUnique_04(t *testing.T) {
	// Same nodes as the walk, in order of first appearance.
	g := checkBuild(t, ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "c"),
		ir.NewInstruction(SUB, "t2", "t1", "t0"),
		ir.NewInstruction(MUL, "t3", "t2", "t1")))
	root, _ := g.Root()
	//
	var (
		expected []NodeId
		seen     = make(map[NodeId]bool)
	)
	//
	for _, id := range Postorder(g, root) {
		if !seen[id] {
			expected = append(expected, id)
			seen[id] = true
		}
	}
	//
	assert.Equal(t, expected, PostorderUnique(g, root))
}

// ===================================================================
// Test Helpers
// ===================================================================

const ADD = ir.ADD
const MUL = ir.MUL
const SUB = ir.SUB

// t0 = mul a, b; t1 = add t0, c
func mulAdd() ir.Program {
	return ir.NewProgram(
		ir.NewInstruction(MUL, "t0", "a", "b"),
		ir.NewInstruction(ADD, "t1", "t0", "c"))
}

func checkBuild(t *testing.T, program ir.Program, options ...BuildOption) *Graph {
	g, err := Build(program, options...)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return g
}

func checkReferenceError(t *testing.T, program ir.Program, name string, index uint, options ...BuildOption) {
	var rerr *ReferenceError
	//
	g, err := Build(program, options...)
	//
	assert.True(t, g == nil)
	assert.True(t, errors.As(err, &rerr), "expected reference error, got %v", err)
	assert.Equal(t, name, rerr.Name())
	assert.Equal(t, index, rerr.Index())
}

func checkRebindError(t *testing.T, program ir.Program, name string, index uint, options ...BuildOption) {
	var rerr *RebindError
	//
	g, err := Build(program, options...)
	//
	assert.True(t, g == nil)
	assert.True(t, errors.As(err, &rerr), "expected rebind error, got %v", err)
	assert.Equal(t, name, rerr.Name())
	assert.Equal(t, index, rerr.Index())
}

func lookup(t *testing.T, g *Graph, name string) NodeId {
	id, ok := g.Lookup(name)
	//
	if !ok {
		t.Fatalf("unknown node %s", name)
	}
	//
	return id
}

func names(g *Graph, ids []NodeId) []string {
	var result []string
	//
	for _, id := range ids {
		result = append(result, g.Node(id).Name())
	}
	//
	return result
}

// t0 = add a, a; t1 = add t0, t0; ...
func doubledChain(n int) ir.Program {
	var insns = []ir.Instruction{ir.NewInstruction(ADD, "t0", "a", "a")}
	//
	for i := 1; i < n; i++ {
		prev := fmt.Sprintf("t%d", i-1)
		insns = append(insns, ir.NewInstruction(ADD, fmt.Sprintf("t%d", i), prev, prev))
	}
	//
	return ir.NewProgram(insns...)
}
