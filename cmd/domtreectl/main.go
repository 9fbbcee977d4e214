// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command domtreectl computes dominator trees, post-dominator trees, and
// control dependence over a control-flow graph described as a JSON fixture.
//
// Usage:
//
//	domtreectl dominators --file cfg.json
//	domtreectl postdominators --file cfg.json
//	domtreectl controldeps --file cfg.json
//	domtreectl query --file cfg.json --mode dominators --a 3 --b 7
package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AleutianAI/domtree/internal/config"
)

func main() {
	shutdown, err := setupTelemetry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "domtreectl: telemetry setup failed: %v\n", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())

	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "domtreectl: config load failed: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupTelemetry wires OTel's stdout exporters as the process-wide trace
// and metric providers. A real deployment would point these at an OTLP
// collector instead; domtreectl is a single-shot CLI, so human-readable
// stdout output is the more useful default.
func setupTelemetry() (func(context.Context) error, error) {
	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	otel.SetTracerProvider(tp)

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}
