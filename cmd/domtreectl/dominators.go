// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"

	"github.com/AleutianAI/domtree/internal/domtree"
)

// BlockDominance is one row of a dominators/postdominators report.
type BlockDominance struct {
	BlockID               int  `json:"block_id"`
	DFNumber              int  `json:"df_number"`
	ImmediateDominator    int  `json:"immediate_dominator"`
	HasImmediateDominator bool `json:"has_immediate_dominator"`
}

// DominanceReport is the JSON shape printed by the dominators and
// postdominators subcommands.
type DominanceReport struct {
	Mode             string           `json:"mode"`
	Valid            bool             `json:"valid"`
	ExtraUnreachable []int            `json:"extra_unreachable,omitempty"`
	Blocks           []BlockDominance `json:"blocks"`
}

var dominatorsCmd = &cobra.Command{
	Use:   "dominators",
	Short: "Print the forward dominator tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDominance(domtree.Dominators)
	},
}

var postdominatorsCmd = &cobra.Command{
	Use:   "postdominators",
	Short: "Print the post-dominator tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDominance(domtree.PostDominators)
	},
}

func runDominance(mode domtree.Mode) error {
	ctx, logger := runContext()

	graph, err := loadGraph(fixturePath)
	if err != nil {
		return err
	}

	result, err := domtree.Build(ctx, graph, mode, domtree.WithTrace(traceFlag), domtree.WithLogger(logger))
	if err != nil {
		return err
	}

	report := DominanceReport{
		Mode:  mode.String(),
		Valid: result.IsValid(),
	}
	if extra, ok := result.ExtraUnreachable(); ok {
		report.ExtraUnreachable = extra
	}
	for _, id := range result.Blocks() {
		dfNumber, _ := result.DFNumber(id)
		idom, hasIdom := result.ImmediateDominator(id)
		report.Blocks = append(report.Blocks, BlockDominance{
			BlockID:               id,
			DFNumber:              dfNumber,
			ImmediateDominator:    idom,
			HasImmediateDominator: hasIdom,
		})
	}

	return printJSON(report)
}
