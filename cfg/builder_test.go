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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Lifecycle(t *testing.T) {
	b := NewBuilder()
	for _, id := range []int{0, 1, 2, 3} {
		require.NoError(t, b.AddBlock(id))
	}
	require.NoError(t, b.SetEntry(0))
	require.NoError(t, b.SetExit(3))
	require.NoError(t, b.AddEdge(0, 1, EdgeNormal))
	require.NoError(t, b.AddEdge(1, 2, EdgeNormal))
	require.NoError(t, b.AddEdge(2, 3, EdgeException))

	g, err := b.Freeze()
	require.NoError(t, err)

	assert.Equal(t, 0, g.Entry().ID())
	assert.Equal(t, 3, g.Exit().ID())
	assert.Equal(t, 4, g.NextNodeID())
	assert.Len(t, g.Nodes(), 4)

	n0 := g.Nodes()[0]
	require.Len(t, n0.Successors(), 1)
	assert.Equal(t, 1, n0.Successors()[0].ID())
	assert.Empty(t, n0.Predecessors())
	assert.Empty(t, n0.ExceptionSuccessors())

	n2 := g.Nodes()[2]
	require.Len(t, n2.ExceptionSuccessors(), 1)
	assert.Equal(t, 3, n2.ExceptionSuccessors()[0].ID())
	assert.Empty(t, n2.Successors())

	n3 := g.Nodes()[3]
	require.Len(t, n3.ExceptionPredecessors(), 1)
	assert.Equal(t, 2, n3.ExceptionPredecessors()[0].ID())
}

func TestBuilder_NodesPreservesInsertionOrder(t *testing.T) {
	b := NewBuilder()
	for _, id := range []int{5, 2, 8, 0} {
		require.NoError(t, b.AddBlock(id))
	}
	require.NoError(t, b.SetEntry(5))
	require.NoError(t, b.SetExit(0))
	g, err := b.Freeze()
	require.NoError(t, err)

	var ids []int
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []int{5, 2, 8, 0}, ids)
	assert.Equal(t, 9, g.NextNodeID())
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("duplicate block", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddBlock(0))
		assert.ErrorIs(t, b.AddBlock(0), ErrDuplicateNode)
	})

	t.Run("edge references missing block", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddBlock(0))
		assert.ErrorIs(t, b.AddEdge(0, 1, EdgeNormal), ErrNodeNotFound)
		assert.ErrorIs(t, b.AddEdge(1, 0, EdgeNormal), ErrNodeNotFound)
	})

	t.Run("entry references missing block", func(t *testing.T) {
		b := NewBuilder()
		assert.ErrorIs(t, b.SetEntry(0), ErrNodeNotFound)
	})

	t.Run("freeze without entry or exit", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddBlock(0))
		_, err := b.Freeze()
		assert.ErrorIs(t, err, ErrNoEntry)

		require.NoError(t, b.SetEntry(0))
		_, err = b.Freeze()
		assert.ErrorIs(t, err, ErrNoExit)
	})

	t.Run("frozen graph rejects mutation", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.AddBlock(0))
		require.NoError(t, b.SetEntry(0))
		require.NoError(t, b.SetExit(0))
		_, err := b.Freeze()
		require.NoError(t, err)

		assert.ErrorIs(t, b.AddBlock(1), ErrGraphFrozen)
		assert.ErrorIs(t, b.AddEdge(0, 0, EdgeNormal), ErrGraphFrozen)
		assert.ErrorIs(t, b.SetEntry(0), ErrGraphFrozen)
		assert.ErrorIs(t, b.SetExit(0), ErrGraphFrozen)
	})
}

func TestDecode(t *testing.T) {
	fixture := `{
		"entry": 0,
		"exit": 3,
		"blocks": [0, 1, 2, 3],
		"edges": [
			{"from": 0, "to": 1},
			{"from": 0, "to": 2},
			{"from": 1, "to": 3},
			{"from": 2, "to": 3, "kind": "exception"}
		]
	}`

	g, err := Decode(strings.NewReader(fixture))
	require.NoError(t, err)

	assert.Equal(t, 0, g.Entry().ID())
	assert.Equal(t, 3, g.Exit().ID())
	assert.Len(t, g.Nodes(), 4)

	var n3 Node
	for _, n := range g.Nodes() {
		if n.ID() == 3 {
			n3 = n
		}
	}
	require.NotNil(t, n3)
	require.Len(t, n3.Predecessors(), 1)
	assert.Equal(t, 1, n3.Predecessors()[0].ID())
	require.Len(t, n3.ExceptionPredecessors(), 1)
	assert.Equal(t, 2, n3.ExceptionPredecessors()[0].ID())
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestDecode_UnknownEdgeEndpoint(t *testing.T) {
	fixture := `{"entry": 0, "exit": 0, "blocks": [0], "edges": [{"from": 0, "to": 9}]}`
	_, err := Decode(strings.NewReader(fixture))
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
