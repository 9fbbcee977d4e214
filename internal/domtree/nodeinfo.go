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

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/AleutianAI/domtree/cfg"
)

// nodeInfo is the Lengauer-Tarjan scratch record for one DF-index. Index 0
// of the owning table is a sentinel row whose ancestor and label are left at
// their zero values, which removes special-casing from eval/compress/link.
type nodeInfo struct {
	block cfg.Node

	parent   int // DF-index of the DFS parent (0 for the root)
	sdno     int // semidominator number (DF-index); starts as self
	idom     int // DF-index of current best immediate-dominator candidate
	ancestor int // link/eval forest parent (0 = unlinked)
	label    int // link/eval label (DF-index of best semidominator seen)
	child    int // child link used for weighted balancing
	size     int // subtree size used for weighted balancing
	bucket   *bitset.BitSet
}

// table is the arena-allocated NodeInfo array, indexed 1..N (0 is the
// sentinel). It is sized to the CFG's NextNodeID()+1 at construction, the
// worst case where every block is reachable, and is never resized
// afterwards. The caller releases it (sets it to nil) once the public
// dfNumber/idom maps have been populated; the table is pure scratch state
// and has no reason to outlive Build.
type table []nodeInfo

func newTable(capacity int) table {
	t := make(table, capacity)
	// t[0] is the sentinel row: block=nil, parent=sdno=idom=ancestor=label=
	// child=size=0, bucket=nil. Every field is already at its zero value;
	// eval/compress/link rely on exactly this.
	return t
}
