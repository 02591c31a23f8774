package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keel3d/engine/internal/core/pool"
)

func TestAddNodeLinksUnderRoot(t *testing.T) {
	g := NewGraph()
	h := g.AddNode(NewNode("camera"))

	n := g.MustNode(h)
	assert.Equal(t, g.Root(), n.Parent())
	assert.Contains(t, g.MustNode(g.Root()).Children(), h)
}

func TestLinkNodesDetachesFromOldParent(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(NewNode("a"))
	b := g.AddNode(NewNode("b"))
	c := g.AddNode(NewNode("c"))

	g.LinkNodes(c, a)
	assert.Equal(t, a, g.MustNode(c).Parent())

	g.LinkNodes(c, b)
	assert.Equal(t, b, g.MustNode(c).Parent())
	assert.NotContains(t, g.MustNode(a).Children(), c)
	assert.Contains(t, g.MustNode(b).Children(), c)
}

func TestTakeReservePutBackRestoresHandle(t *testing.T) {
	g := NewGraph()
	h := g.AddNode(NewNode("light"))

	ticket, node := g.TakeReserve(h)
	assert.False(t, g.Alive(h))
	assert.NotContains(t, g.MustNode(g.Root()).Children(), h)

	back := g.PutBack(ticket, node)
	require.Equal(t, h, back)
	assert.True(t, g.Alive(h))
	// Comes back unlinked; relinking is the caller's job.
	assert.True(t, g.MustNode(h).Parent().IsNone())
}

func TestTakeReserveInnerNodePanics(t *testing.T) {
	g := NewGraph()
	parent := g.AddNode(NewNode("parent"))
	g.LinkNodes(g.AddNode(NewNode("child")), parent)

	assert.Panics(t, func() { g.TakeReserve(parent) })
	assert.Panics(t, func() { g.TakeReserve(g.Root()) })
}

func TestForgetLinkedNodePanics(t *testing.T) {
	g := NewGraph()
	h := g.AddNode(NewNode("x"))
	ticket, node := g.TakeReserve(h)

	linked := node
	other := g.AddNode(NewNode("fake-parent"))
	linked.parent = other
	assert.Panics(t, func() { g.Forget(ticket, linked) })

	node.parent = pool.None
	g.Forget(ticket, node)
	assert.False(t, g.Alive(h))
}

func buildTree(g *Graph) (root, armL, armR, handL, handR pool.Handle) {
	root = g.AddNode(NewNode("body"))
	armL = g.AddNode(NewNode("arm.l"))
	armR = g.AddNode(NewNode("arm.r"))
	handL = g.AddNode(NewNode("hand.l"))
	handR = g.AddNode(NewNode("hand.r"))
	g.LinkNodes(armL, root)
	g.LinkNodes(armR, root)
	g.LinkNodes(handL, armL)
	g.LinkNodes(handR, armR)
	return
}

func TestSubGraphRoundTripPreservesTopology(t *testing.T) {
	g := NewGraph()
	body, armL, armR, handL, handR := buildTree(g)

	sg := g.TakeReserveSubGraph(body)
	assert.Equal(t, body, sg.RootHandle())
	assert.Len(t, sg.Descendants, 4)
	for _, h := range []pool.Handle{body, armL, armR, handL, handR} {
		assert.False(t, g.Alive(h))
	}
	// Reserved slots must not be claimed by unrelated adds.
	unrelated := g.AddNode(NewNode("unrelated"))
	assert.NotEqual(t, body.Index(), unrelated.Index())

	back := g.PutSubGraphBack(sg)
	require.Equal(t, body, back)
	g.LinkNodes(body, g.Root())

	assert.Equal(t, body, g.MustNode(armL).Parent())
	assert.Equal(t, body, g.MustNode(armR).Parent())
	assert.Equal(t, armL, g.MustNode(handL).Parent())
	assert.Equal(t, armR, g.MustNode(handR).Parent())
	assert.ElementsMatch(t, []pool.Handle{armL, armR}, g.MustNode(body).Children())
}

func TestForgetSubGraphFreesSlots(t *testing.T) {
	g := NewGraph()
	body, _, _, _, _ := buildTree(g)
	before := g.Len()

	sg := g.TakeReserveSubGraph(body)
	g.ForgetSubGraph(sg)

	assert.Equal(t, before-5, g.Len())
	// Slots recycle with bumped generations.
	h := g.AddNode(NewNode("new"))
	assert.True(t, g.Alive(h))
	assert.False(t, g.Alive(body))
}

func TestFindByName(t *testing.T) {
	g := NewGraph()
	body, _, _, handL, _ := buildTree(g)

	assert.Equal(t, handL, g.FindByName(body, "hand.l"))
	assert.Equal(t, pool.None, g.FindByName(body, "missing"))
}
