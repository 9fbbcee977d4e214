// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package controldep derives control dependence from a post-dominator
// tree: block Y is control dependent on block X when X has at least one
// successor edge that can reach Y without first passing back through X's
// own immediate post-dominator.
package controldep

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/domtree/cfg"
	"github.com/AleutianAI/domtree/internal/domtree"
)

// ControlDependence is the control-dependence relation over a CFG, derived
// once from a post-dominator Result and then queried repeatedly.
type ControlDependence struct {
	capacity int
	controls map[int][]int
}

// Build walks every branching block's successor edges up the post-dominator
// tree to collect its direct control dependents, following the rule: for
// edge (x, s), every block visited walking from s up to (but not including)
// x's immediate post-dominator is directly controlled by x.
func Build(ctx context.Context, graph cfg.Graph, postdom *domtree.Result) (*ControlDependence, error) {
	if err := initMetrics(); err != nil {
		return nil, err
	}
	if postdom == nil {
		return nil, ErrNilResult
	}
	if postdom.Mode() != domtree.PostDominators {
		return nil, ErrWrongMode
	}
	if !postdom.IsValid() {
		return nil, ErrInvalidPostDominators
	}

	ctx, span := tracer.Start(ctx, "controldep.Build")
	defer span.End()

	capacity := graph.NextNodeID() + 1
	cd := &ControlDependence{
		capacity: capacity,
		controls: make(map[int][]int),
	}

	edges := 0
	for _, n := range graph.Nodes() {
		succs := append(append([]cfg.Node{}, n.ExceptionSuccessors()...), n.Successors()...)
		edges += len(succs)
		if len(succs) < 2 {
			continue // a block with at most one successor forces that edge; nothing is conditional on it
		}

		ipdom, hasIpdom := postdom.ImmediateDominator(n.ID())
		seen := bitset.New(uint(capacity))

		for _, s := range succs {
			cd.walkUp(s.ID(), n.ID(), ipdom, hasIpdom, postdom, seen)
		}
	}

	span.SetAttributes(
		attribute.Int("block_count", len(graph.Nodes())),
		attribute.Int("edge_count", edges),
	)
	edgesWalked.Add(ctx, int64(edges))

	return cd, nil
}

// walkUp climbs the post-dominator tree from start, recording every block
// it visits as directly controlled by controller, until it reaches stop (x's
// immediate post-dominator) or the root of the tree.
func (cd *ControlDependence) walkUp(start, controller, stop int, hasStop bool, postdom *domtree.Result, seen *bitset.BitSet) {
	cur := start
	for {
		if hasStop && cur == stop {
			return
		}
		if seen.Test(uint(cur)) {
			return
		}
		seen.Set(uint(cur))
		cd.controls[controller] = append(cd.controls[controller], cur)

		next, ok := postdom.ImmediateDominator(cur)
		if !ok {
			return // reached the post-dominator tree's root
		}
		cur = next
	}
}

// DirectlyControls returns the block IDs directly control-dependent on
// blockID, in the order they were discovered. Returns nil if blockID
// controls nothing (including blocks with fewer than two successors).
func (cd *ControlDependence) DirectlyControls(blockID int) []int {
	return cd.controls[blockID]
}

// NumberOfBlocksControlled returns the number of distinct blocks
// transitively control-dependent on blockID: everything blockID directly
// controls, plus everything those blocks control, and so on. Diagnostics
// only; the relation can contain cycles, so a visited set bounds the walk.
func (cd *ControlDependence) NumberOfBlocksControlled(blockID int) int {
	visited := bitset.New(uint(cd.capacity))
	stack := []int{blockID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range cd.controls[id] {
			if visited.Test(uint(child)) {
				continue
			}
			visited.Set(uint(child))
			stack = append(stack, child)
		}
	}
	return int(visited.Count())
}
