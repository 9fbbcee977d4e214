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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/domtree/internal/controldep"
	"github.com/AleutianAI/domtree/internal/domtree"
)

// BlockControl is one row of a controldeps report: the blocks directly
// control-dependent on a single block.
type BlockControl struct {
	BlockID          int   `json:"block_id"`
	DirectlyControls []int `json:"directly_controls"`
	BlocksControlled int   `json:"blocks_controlled"`
}

// ControlDependenceReport is the JSON shape printed by the controldeps
// subcommand.
type ControlDependenceReport struct {
	Blocks []BlockControl `json:"blocks"`
}

var controldepsCmd = &cobra.Command{
	Use:   "controldeps",
	Short: "Print the control-dependence relation derived from the post-dominator tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, logger := runContext()

		graph, err := loadGraph(fixturePath)
		if err != nil {
			return err
		}

		postdom, err := domtree.Build(ctx, graph, domtree.PostDominators, domtree.WithTrace(traceFlag), domtree.WithLogger(logger))
		if err != nil {
			return err
		}
		if !postdom.IsValid() {
			return fmt.Errorf("domtreectl: post-dominator result is not valid; refusing to derive control dependence")
		}

		cd, err := controldep.Build(ctx, graph, postdom)
		if err != nil {
			return err
		}

		report := ControlDependenceReport{}
		for _, id := range postdom.Blocks() {
			report.Blocks = append(report.Blocks, BlockControl{
				BlockID:          id,
				DirectlyControls: cd.DirectlyControls(id),
				BlocksControlled: cd.NumberOfBlocksControlled(id),
			})
		}

		return printJSON(report)
	},
}
