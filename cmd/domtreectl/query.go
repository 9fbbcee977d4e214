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

	"github.com/AleutianAI/domtree/internal/config"
	"github.com/AleutianAI/domtree/internal/domtree"
)

var (
	queryMode string
	queryA    int
	queryB    int
)

// DominanceQueryReport is the JSON shape printed by the query subcommand.
type DominanceQueryReport struct {
	Mode      string `json:"mode"`
	A         int    `json:"a"`
	B         int    `json:"b"`
	Dominates bool   `json:"dominates"`
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Answer a single dominates(a, b) query",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("mode") && config.Global.DefaultMode != "" {
			queryMode = config.Global.DefaultMode
		}
		mode, err := parseMode(queryMode)
		if err != nil {
			return err
		}

		ctx, logger := runContext()

		graph, err := loadGraph(fixturePath)
		if err != nil {
			return err
		}

		result, err := domtree.Build(ctx, graph, mode, domtree.WithTrace(traceFlag), domtree.WithLogger(logger))
		if err != nil {
			return err
		}

		return printJSON(DominanceQueryReport{
			Mode:      mode.String(),
			A:         queryA,
			B:         queryB,
			Dominates: result.Dominates(queryA, queryB),
		})
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryMode, "mode", "dominators", `"dominators" or "postdominators"`)
	queryCmd.Flags().IntVar(&queryA, "a", 0, "candidate (post-)dominator block ID")
	queryCmd.Flags().IntVar(&queryB, "b", 0, "block ID to test for (post-)dominance")
}

func parseMode(s string) (domtree.Mode, error) {
	switch s {
	case "dominators", "":
		return domtree.Dominators, nil
	case "postdominators":
		return domtree.PostDominators, nil
	default:
		return 0, fmt.Errorf("domtreectl: unknown --mode %q (want dominators or postdominators)", s)
	}
}
