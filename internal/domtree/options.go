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

import "log/slog"

// buildOptions holds the per-Build configuration. The core engine takes
// these directly as functional options rather than reading a config file,
// since config is a cmd/ concern (see internal/config), not a library
// concern.
type buildOptions struct {
	trace  bool
	logger *slog.Logger
}

// Option configures a Build call.
type Option func(*buildOptions)

// WithTrace enables verbose human-readable progress logging: one record per
// DF-assignment, per semidominator/idom resolution, and a final per-block
// summary. The exact log format is not part of this package's contract.
func WithTrace(enabled bool) Option {
	return func(o *buildOptions) { o.trace = enabled }
}

// WithLogger overrides the logger used when tracing is enabled. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) { o.logger = logger }
}

func newBuildOptions(opts ...Option) *buildOptions {
	o := &buildOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
