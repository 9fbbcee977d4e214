// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package controldep

import "errors"

var (
	// ErrNilResult is returned when Build is given a nil post-dominator Result.
	ErrNilResult = errors.New("controldep: nil post-dominator result")

	// ErrInvalidPostDominators is returned when the supplied Result did not
	// cover every block (Result.IsValid reports false). Control dependence
	// derived from a partial post-dominator tree would silently under-report.
	ErrInvalidPostDominators = errors.New("controldep: post-dominator result is not valid")

	// ErrWrongMode is returned when the supplied Result was built in
	// Dominators mode instead of PostDominators mode.
	ErrWrongMode = errors.New("controldep: result was not built in post-dominator mode")
)
