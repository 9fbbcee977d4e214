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

import "github.com/bits-and-blooms/bitset"

func newBucket(capacity int) *bitset.BitSet {
	return bitset.New(uint(capacity))
}

// eval returns the label, among v and v's proper ancestors in the
// link/eval forest, whose semidominator number is smallest, compressing
// the path from v to its forest root along the way. With ancestor == 0
// (v is a forest root) v's own label is already the answer; otherwise the
// forest root's label, which compress never folds into v, still has to be
// weighed against v's.
func (b *builder) eval(v int) int {
	if b.table[v].ancestor == 0 {
		return b.table[v].label
	}
	b.compress(v)
	vLabel := b.table[v].label
	ancLabel := b.table[b.table[v].ancestor].label
	if b.table[ancLabel].sdno >= b.table[vLabel].sdno {
		return vLabel
	}
	return ancLabel
}

// compress collapses v's path to the forest root to a single hop,
// propagating the label with the smallest semidominator number down the
// path. The recursive formulation walks to the root and updates labels on
// the way back out, and real CFGs can make that path thousands of nodes
// long, so this version gathers the path first and then replays the
// updates in reverse.
func (b *builder) compress(v int) {
	var path []int
	for b.table[b.table[v].ancestor].ancestor != 0 {
		path = append(path, v)
		v = b.table[v].ancestor
	}
	for i := len(path) - 1; i >= 0; i-- {
		w := path[i]
		a := b.table[w].ancestor
		if b.table[b.table[a].label].sdno < b.table[b.table[w].label].sdno {
			b.table[w].label = b.table[a].label
		}
		b.table[w].ancestor = b.table[a].ancestor
	}
}

// link attaches w's forest tree below v, rebalancing by subtree size so
// that later eval/compress calls stay shallow. This is the weight-balanced
// variant of link, using the child/size fields alongside ancestor/label.
// The sentinel row keeps the walk terminating: sdno(label(0)) is 0, below
// any real semidominator number.
func (b *builder) link(v, w int) {
	wLabel := b.table[w].label
	sdno := b.table[wLabel].sdno
	s := w
	for sdno < b.table[b.table[b.table[s].child].label].sdno {
		cc := b.table[s].child
		if b.table[s].size+b.table[b.table[cc].child].size >= 2*b.table[cc].size {
			b.table[cc].ancestor = s
			b.table[s].child = b.table[cc].child
		} else {
			b.table[cc].size = b.table[s].size
			b.table[s].ancestor = cc
			s = cc
		}
	}
	b.table[s].label = wLabel
	b.table[v].size += b.table[w].size
	if b.table[v].size < 2*b.table[w].size {
		s, b.table[v].child = b.table[v].child, s
	}
	for s != 0 {
		b.table[s].ancestor = v
		s = b.table[s].child
	}
}

// computeDominators runs the main Lengauer-Tarjan pass over DF-indices
// n..2 (the root at DF-index 1 never needs a semidominator), then
// finalizes immediate dominators with the standard correction pass, run in
// increasing DF-index order so each idom(idom(w)) is already final.
func (b *builder) computeDominators() {
	n := b.topDFIndex

	for w := n; w >= 2; w-- {
		block := b.table[w].block
		for _, predNode := range semiNeighbors(b.mode, block) {
			v := b.dfIndexOf[predNode.ID()]
			if v == 0 {
				continue // predecessor unreachable from root; Lengauer-Tarjan ignores it
			}
			u := b.eval(v)
			if b.table[u].sdno < b.table[w].sdno {
				b.table[w].sdno = b.table[u].sdno
			}
		}

		b.table[b.table[w].sdno].bucket.Set(uint(w))
		parent := b.table[w].parent
		b.link(parent, w)

		bucket := b.table[parent].bucket
		for e, ok := bucket.NextSet(0); ok; e, ok = bucket.NextSet(e + 1) {
			v := int(e)
			u := b.eval(v)
			if b.table[u].sdno < b.table[v].sdno {
				b.table[v].idom = u
			} else {
				b.table[v].idom = parent
			}
			if b.traceLogger != nil {
				b.traceLogger.Debug("domtree idom candidate resolved",
					"mode", b.mode.String(), "block_id", b.table[v].block.ID(), "idom_df_index", b.table[v].idom)
			}
		}
		bucket.ClearAll()
	}

	for w := 2; w <= n; w++ {
		if b.table[w].idom != b.table[w].sdno {
			b.table[w].idom = b.table[b.table[w].idom].idom
		}
		// sdno(v) never exceeds v's own DF-index, and idom(v) strictly
		// precedes v in DF order. A violation here means the algorithm's
		// bookkeeping is broken, not that the CFG is malformed, so it is an
		// assertion rather than a returned error.
		assertf(b.table[w].sdno <= w, "semidominator number exceeds DF-index")
		assertf(b.table[w].idom < w, "immediate dominator does not precede block in DF order")
		if b.traceLogger != nil {
			b.traceLogger.Debug("domtree idom finalized",
				"mode", b.mode.String(), "block_id", b.table[w].block.ID(), "idom_df_index", b.table[w].idom)
		}
	}
}
