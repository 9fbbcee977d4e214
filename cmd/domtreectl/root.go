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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/domtree/cfg"
	"github.com/AleutianAI/domtree/internal/config"
	"github.com/AleutianAI/domtree/internal/telemetry"
)

var (
	fixturePath string
	traceFlag   bool

	rootCmd = &cobra.Command{
		Use:   "domtreectl",
		Short: "Compute dominator trees, post-dominator trees, and control dependence over a CFG",
		Long: `domtreectl reads a control-flow graph described as a JSON fixture and runs
the Lengauer-Tarjan dominator algorithm over it, in either the forward
(dominators) or reversed (post-dominators) direction, and derives control
dependence from the result.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Flags the user didn't set fall back to the on-disk config.
			if !cmd.Flags().Changed("trace") {
				traceFlag = config.Global.Trace
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&fixturePath, "file", "", "path to a JSON CFG fixture (required)")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "log per-block progress during the build")
	rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(dominatorsCmd, postdominatorsCmd, controldepsCmd, queryCmd)
}

// runContext attaches a per-invocation correlation ID to the logger so
// repeated runs can be told apart in logs and spans.
func runContext() (context.Context, *slog.Logger) {
	ctx := context.Background()
	runID := uuid.New().String()
	logger := telemetry.LoggerWithTrace(ctx, slog.Default()).With(slog.String("run_id", runID))
	return ctx, logger
}

func loadGraph(path string) (cfg.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()
	return cfg.Decode(f)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
