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
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter, one pair per package.
var (
	tracer = otel.Tracer("aleutian.domtree")
	meter  = otel.Meter("aleutian.domtree")
)

var (
	buildLatency       metric.Float64Histogram
	buildTotal         metric.Int64Counter
	blocksAnalyzed     metric.Int64Histogram
	unreachableTotal   metric.Int64Counter
	invalidResultTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics lazily creates the package's instruments. Safe to call
// multiple times; only the first call does work.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		buildLatency, err = meter.Float64Histogram(
			"domtree_build_duration_seconds",
			metric.WithDescription("Duration of dominator/post-dominator builds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		buildTotal, err = meter.Int64Counter(
			"domtree_build_total",
			metric.WithDescription("Total number of Build calls, by mode"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		blocksAnalyzed, err = meter.Int64Histogram(
			"domtree_blocks_total",
			metric.WithDescription("Number of blocks analyzed per build"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		unreachableTotal, err = meter.Int64Counter(
			"domtree_unreachable_total",
			metric.WithDescription("Count of unreachable blocks observed across builds"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		invalidResultTotal, err = meter.Int64Counter(
			"domtree_invalid_result_total",
			metric.WithDescription("Count of post-dominator builds that returned Valid=false"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}
