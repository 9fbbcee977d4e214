// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package domtree builds dominator and post-dominator trees over a
// read-only control-flow graph using the near-linear Lengauer-Tarjan
// algorithm, and exposes the result as an immutable Result.
package domtree

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/domtree/cfg"
	"github.com/AleutianAI/domtree/internal/telemetry"
)

// builder holds the scratch state for a single Build call. It is discarded
// once Build returns; nothing about it escapes into Result.
type builder struct {
	mode  Mode
	table table

	// dfIndexOf maps a block ID to its DF-index (1-based; 0 = unvisited).
	// The engine owns this scratch array instead of asking the cfg.Graph
	// adapter to track visitation, since the adapter contract is read-only.
	dfIndexOf []int

	topDFIndex int
	capacity   int

	// traceLogger is non-nil only when the caller enabled WithTrace; it
	// receives one record per DF-assignment during numbering.
	traceLogger *slog.Logger
}

// Build computes the dominator tree (mode == Dominators) or post-dominator
// tree (mode == PostDominators) of graph. The graph must already be frozen;
// Build never mutates it.
//
// Build returns ErrNilGraph or ErrEmptyGraph for a degenerate graph, and
// ErrMultipleUnreachable in Dominators mode when any block other than the
// designated exit cannot be reached from entry. PostDominators mode never
// fails on unreachability: every block exit cannot reach is tolerated and
// reported through Result.ExtraUnreachable and Result.IsValid instead.
func Build(ctx context.Context, graph cfg.Graph, mode Mode, opts ...Option) (res *Result, err error) {
	if err := initMetrics(); err != nil {
		return nil, fmt.Errorf("domtree: initializing metrics: %w", err)
	}

	o := newBuildOptions(opts...)
	logger := telemetry.LoggerWithTrace(ctx, o.logger)
	modeAttr := attribute.String("mode", mode.String())

	ctx, span := tracer.Start(ctx, "domtree.Build", trace.WithAttributes(modeAttr))
	defer span.End()

	start := time.Now()
	defer func() {
		buildTotal.Add(ctx, 1, metric.WithAttributes(modeAttr))
		buildLatency.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(modeAttr))

		if r := recover(); r != nil {
			ae, ok := r.(*AssertionError)
			if !ok {
				panic(r)
			}
			span.RecordError(ae)
			err = ae
			res = nil
		}
	}()

	if graph == nil {
		return nil, ErrNilGraph
	}
	nodes := graph.Nodes()
	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	root := graph.Entry()
	if mode == PostDominators {
		root = graph.Exit()
	}

	capacity := graph.NextNodeID() + 1
	b := &builder{
		mode:      mode,
		table:     newTable(capacity),
		dfIndexOf: make([]int, capacity),
		capacity:  capacity,
	}

	if o.trace {
		b.traceLogger = logger
	}
	b.numberDFS(root)
	blocksAnalyzed.Record(ctx, int64(b.topDFIndex), metric.WithAttributes(modeAttr))

	var unreached []int
	for _, n := range nodes {
		if b.dfIndexOf[n.ID()] == 0 {
			unreached = append(unreached, n.ID())
		}
	}
	sort.Ints(unreached)

	exitID := graph.Exit().ID()
	valid := true
	var extraUnreachable []int

	switch mode {
	case PostDominators:
		// Post-dominator mode tolerates any number of blocks unreachable
		// from exit (most commonly just the entry, for an infinite loop
		// with no path out). Every one of them gets a DF-number past the
		// end, in deterministic block-ID order, but the result is marked
		// invalid whenever at least one block could not reach exit.
		// Control dependence built on an invalid tree would silently
		// under-report, so callers must check IsValid.
		if len(unreached) > 0 {
			extraUnreachable = unreached
			valid = false
			unreachableTotal.Add(ctx, int64(len(unreached)), metric.WithAttributes(modeAttr))
			invalidResultTotal.Add(ctx, 1, metric.WithAttributes(modeAttr))
		}
	default:
		// Forward mode only ever tolerates the designated exit being
		// unreachable (dead return block, etc). Any other unreachable
		// block is caller corruption, surfaced here as a returned error
		// rather than a bare assertion panic.
		var nonExit []int
		for _, id := range unreached {
			if id != exitID {
				nonExit = append(nonExit, id)
			}
		}
		if len(nonExit) > 0 {
			unreachableTotal.Add(ctx, int64(len(nonExit)), metric.WithAttributes(modeAttr))
			return nil, fmt.Errorf("%w: block IDs %v", ErrMultipleUnreachable, nonExit)
		}
		if len(unreached) == 1 {
			extraUnreachable = unreached
			unreachableTotal.Add(ctx, 1, metric.WithAttributes(modeAttr))
		}
	}

	b.computeDominators()

	order := make([]int, capacity)
	idom := make(map[int]int, b.topDFIndex)
	for i := 1; i <= b.topDFIndex; i++ {
		row := b.table[i]
		order[row.block.ID()] = i
		if row.idom != 0 {
			idom[row.block.ID()] = b.table[row.idom].block.ID()
		}
	}

	// Blocks the DFS never reached (the tolerated exit in forward mode, or
	// every unreached block in post-dominator mode) still get a DF-number,
	// past every reachable block's, so DFNumber/Blocks report them as known
	// rather than absent. They have no immediate (post-)dominator.
	next := b.topDFIndex + 1
	for _, id := range extraUnreachable {
		order[id] = next
		next++
	}

	b.table = nil // release the scratch arena; only order/idom survive

	if o.trace {
		for blockID := range order {
			if order[blockID] == 0 {
				continue
			}
			dom, has := idom[blockID]
			logger.Debug("domtree block resolved",
				"mode", mode.String(), "block_id", blockID, "df_index", order[blockID],
				"immediate_dominator", dom, "has_immediate_dominator", has)
		}
	}

	return &Result{
		mode:             mode,
		rootID:           root.ID(),
		order:            order,
		idom:             idom,
		valid:            valid,
		extraUnreachable: extraUnreachable,
	}, nil
}
