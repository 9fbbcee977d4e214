// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.
package cfg

import "errors"

// Sentinel errors for building and querying in-memory CFGs.
var (
	// ErrGraphFrozen is returned when attempting to modify a frozen graph.
	ErrGraphFrozen = errors.New("cfg: graph is frozen and cannot be modified")

	// ErrNodeNotFound is returned when an edge references a non-existent block.
	ErrNodeNotFound = errors.New("cfg: block not found")

	// ErrDuplicateNode is returned when adding a block ID that already exists.
	ErrDuplicateNode = errors.New("cfg: duplicate block ID")

	// ErrNoEntry is returned when Freeze is called before an entry block is set.
	ErrNoEntry = errors.New("cfg: no entry block set")

	// ErrNoExit is returned when Freeze is called before an exit block is set.
	ErrNoExit = errors.New("cfg: no exit block set")
)
