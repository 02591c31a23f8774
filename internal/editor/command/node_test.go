package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keel3d/engine/internal/scene"
)

func TestLinkNodesCommandSwapsParent(t *testing.T) {
	ctx := newTestContext(t)
	g := ctx.Scene.Graph
	a := g.AddNode(scene.NewNode("a"))
	b := g.AddNode(scene.NewNode("b"))
	child := g.AddNode(scene.NewNode("child"))
	g.LinkNodes(child, a)

	cmd := NewLinkNodesCommand(child, b)
	cmd.Execute(ctx)
	assert.Equal(t, b, g.MustNode(child).Parent())

	cmd.Revert(ctx)
	assert.Equal(t, a, g.MustNode(child).Parent())
	assert.NotContains(t, g.MustNode(b).Children(), child)

	cmd.Execute(ctx)
	assert.Equal(t, b, g.MustNode(child).Parent())
}

func TestAddNodeCommandLifecycle(t *testing.T) {
	ctx := newTestContext(t)
	g := ctx.Scene.Graph
	parent := g.AddNode(scene.NewNode("parent"))

	cmd := NewAddNodeCommand(scene.NewNode("lamp"), parent)
	assert.Equal(t, "Add Node lamp", cmd.Name(ctx))

	cmd.Execute(ctx)
	h := cmd.Handle()
	require.True(t, g.Alive(h))
	assert.Equal(t, parent, g.MustNode(h).Parent())
	assert.Contains(t, g.MustNode(parent).Children(), h)

	cmd.Revert(ctx)
	assert.False(t, g.Alive(h))
	assert.NotContains(t, g.MustNode(parent).Children(), h)

	// Re-execute must land on the exact same handle.
	cmd.Execute(ctx)
	assert.True(t, g.Alive(h))
	assert.Equal(t, h, cmd.Handle())
	assert.Equal(t, parent, g.MustNode(h).Parent())
}

func TestAddNodeCommandFinalizeFreesSlot(t *testing.T) {
	ctx := newTestContext(t)
	g := ctx.Scene.Graph

	cmd := NewAddNodeCommand(scene.NewNode("temp"), g.Root())
	cmd.Execute(ctx)
	h := cmd.Handle()
	cmd.Revert(ctx)
	cmd.Finalize(ctx)

	// The slot is free again: an unrelated add may reuse the index.
	h2 := g.AddNode(scene.NewNode("unrelated"))
	assert.Equal(t, h.Index(), h2.Index())
	assert.False(t, g.Alive(h))
}

func TestDeleteNodeCommandLifecycle(t *testing.T) {
	ctx := newTestContext(t)
	g := ctx.Scene.Graph
	parent := g.AddNode(scene.NewNode("parent"))
	h := g.AddNode(scene.NewNode("victim"))
	g.LinkNodes(h, parent)

	cmd := NewDeleteNodeCommand(h)
	cmd.Execute(ctx)
	assert.False(t, g.Alive(h))
	assert.NotContains(t, g.MustNode(parent).Children(), h)

	cmd.Revert(ctx)
	require.True(t, g.Alive(h))
	assert.Equal(t, parent, g.MustNode(h).Parent())
	assert.Equal(t, "victim", g.MustNode(h).Name())

	// Handle stays stable across any number of cycles without finalize.
	for i := 0; i < 3; i++ {
		cmd.Execute(ctx)
		cmd.Revert(ctx)
	}
	assert.True(t, g.Alive(h))
	assert.Equal(t, parent, g.MustNode(h).Parent())
}

func TestDeleteNodeCommandFinalizeForgetsOnce(t *testing.T) {
	ctx := newTestContext(t)
	g := ctx.Scene.Graph
	h := g.AddNode(scene.NewNode("victim"))

	cmd := NewDeleteNodeCommand(h)
	cmd.Execute(ctx)
	cmd.Finalize(ctx)
	assert.False(t, g.Alive(h))

	// Finalize is idempotent once the ticket is gone.
	cmd.Finalize(ctx)

	// Finalize after revert holds nothing and must not touch the node.
	h2 := g.AddNode(scene.NewNode("second"))
	cmd2 := NewDeleteNodeCommand(h2)
	cmd2.Execute(ctx)
	cmd2.Revert(ctx)
	cmd2.Finalize(ctx)
	assert.True(t, g.Alive(h2))
}
