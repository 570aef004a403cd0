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
	"github.com/consensys/go-isel/pkg/util/collection/bit"
	"github.com/consensys/go-isel/pkg/util/collection/stack"
)

// Postorder walks the graph reachable from a given root, producing a sequence
// in which every node appears after both of its operands (lhs subtree first,
// then rhs subtree, then the node).  This is a walk rather than a set: a node
// shared by several consumers appears once per path reaching it.
func Postorder(g *Graph, root NodeId) []NodeId {
	var (
		order []NodeId
		// Each frame holds a node and whether its operands were pushed already.
		frames = stack.NewStack[frame](g.Len())
	)
	//
	frames.Push(frame{root, false})
	//
	for !frames.IsEmpty() {
		top := frames.Pop()
		node := g.Node(top.id)
		//
		if top.expanded || node.IsLeaf() {
			order = append(order, top.id)
			continue
		}
		// Revisit this node once both operands are done.  The rhs is pushed
		// first so that the lhs is walked first.
		frames.Push(frame{top.id, true})
		frames.Push(frame{node.Rhs(), false})
		frames.Push(frame{node.Lhs(), false})
	}
	//
	return order
}

// PostorderUnique walks the graph reachable from a given root in the same order
// as Postorder, except that a shared node is expanded only on the first path
// reaching it.  Thus, every reachable node appears exactly once, and the walk is
// linear in the size of the graph.
func PostorderUnique(g *Graph, root NodeId) []NodeId {
	var (
		order  []NodeId
		seen   = bit.NewSet(g.Len())
		frames = stack.NewStack[frame](g.Len())
	)
	//
	frames.Push(frame{root, false})
	//
	for !frames.IsEmpty() {
		top := frames.Pop()
		node := g.Node(top.id)
		//
		if top.expanded {
			order = append(order, top.id)
			continue
		} else if !seen.Insert(uint(top.id)) {
			// Already emitted, since operands cannot reach their consumers.
			continue
		} else if node.IsLeaf() {
			order = append(order, top.id)
			continue
		}
		//
		frames.Push(frame{top.id, true})
		frames.Push(frame{node.Rhs(), false})
		frames.Push(frame{node.Lhs(), false})
	}
	//
	return order
}

type frame struct {
	id       NodeId
	expanded bool
}
