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

import (
	"encoding/json"
	"fmt"
	"io"
)

// fixtureEdge is the wire shape of one edge in a JSON CFG fixture.
type fixtureEdge struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Kind string `json:"kind,omitempty"` // "normal" (default) or "exception"
}

// fixture is the wire shape accepted by Decode: an explicit block-ID list,
// designated entry/exit, and an edge list.
type fixture struct {
	Entry  int           `json:"entry"`
	Exit   int           `json:"exit"`
	Blocks []int         `json:"blocks"`
	Edges  []fixtureEdge `json:"edges"`
}

// Decode reads a JSON-encoded control-flow graph fixture and builds a
// frozen Graph from it. This is the format domtreectl's subcommands read
// from disk.
func Decode(r io.Reader) (Graph, error) {
	var f fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("cfg: decoding fixture: %w", err)
	}

	b := NewBuilder()
	for _, id := range f.Blocks {
		if err := b.AddBlock(id); err != nil {
			return nil, err
		}
	}
	if err := b.SetEntry(f.Entry); err != nil {
		return nil, err
	}
	if err := b.SetExit(f.Exit); err != nil {
		return nil, err
	}
	for _, e := range f.Edges {
		kind := EdgeNormal
		if e.Kind == "exception" {
			kind = EdgeException
		}
		if err := b.AddEdge(e.From, e.To, kind); err != nil {
			return nil, err
		}
	}

	return b.Freeze()
}
