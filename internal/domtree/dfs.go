// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.
package domtree

import "github.com/AleutianAI/domtree/cfg"

// dfsFrame is one level of the explicit DFS stack. CFGs in real compilers
// can be deep, so the numbering pass never recurses.
type dfsFrame struct {
	edges []cfg.Node
	pos   int
	// dfIndex is the DF-index of the node whose children this frame scans.
	dfIndex int
}

// dfsNeighbors returns the nodes explored during DFS numbering: exception
// edges before normal edges, and, in post-dominator mode, predecessor
// lists in place of successor lists throughout.
func dfsNeighbors(mode Mode, n cfg.Node) []cfg.Node {
	if mode == PostDominators {
		return concatNodes(n.ExceptionPredecessors(), n.Predecessors())
	}
	return concatNodes(n.ExceptionSuccessors(), n.Successors())
}

// semiNeighbors returns the edges entering w used to compute w's
// semidominator in the main Lengauer-Tarjan pass: predecessors in
// dominator mode, successors in post-dominator mode.
func semiNeighbors(mode Mode, n cfg.Node) []cfg.Node {
	if mode == PostDominators {
		return concatNodes(n.ExceptionSuccessors(), n.Successors())
	}
	return concatNodes(n.ExceptionPredecessors(), n.Predecessors())
}

func concatNodes(a, b []cfg.Node) []cfg.Node {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]cfg.Node, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// numberDFS assigns DF-numbers 0..N-1 in pre-order to every block reachable
// from root, using an explicit stack. b.dfIndexOf maps a block ID to its
// assigned DF-index (1-based; 0 means "not yet visited") so neighbors can be
// looked up without a second pass.
func (b *builder) numberDFS(root cfg.Node) {
	b.visit(root, 0)

	stack := []dfsFrame{{edges: dfsNeighbors(b.mode, root), dfIndex: 1}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		next := top.edges[top.pos]
		top.pos++

		if b.dfIndexOf[next.ID()] != 0 {
			continue // already visited; advance to the next edge at this level
		}
		childIndex := b.visit(next, top.dfIndex)
		stack = append(stack, dfsFrame{edges: dfsNeighbors(b.mode, next), dfIndex: childIndex})
	}
}

// visit assigns the next DF-index to n, records its DFS parent, and
// initializes its NodeInfo row. Returns the assigned DF-index.
func (b *builder) visit(n cfg.Node, parentDFIndex int) int {
	b.topDFIndex++
	idx := b.topDFIndex
	b.dfIndexOf[n.ID()] = idx
	b.table[idx] = nodeInfo{
		block:    n,
		parent:   parentDFIndex,
		sdno:     idx,
		idom:     parentDFIndex,
		label:    idx,
		ancestor: 0,
		child:    0,
		size:     1,
		bucket:   newBucket(b.capacity),
	}
	if b.traceLogger != nil {
		b.traceLogger.Debug("domtree df-number assigned",
			"mode", b.mode.String(), "block_id", n.ID(), "df_index", idx, "parent_df_index", parentDFIndex)
	}
	return idx
}
