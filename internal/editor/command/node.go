package command

import (
	"fmt"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
)

// LinkNodesCommand re-parents child under parent. Execute and Revert are the
// same operation: record the child's current parent, relink, and keep the
// recorded parent as the next target — the swap pattern generalized to the
// parent relation.
type LinkNodesCommand struct {
	NoFinalize
	child  pool.Handle
	parent pool.Handle
}

func NewLinkNodesCommand(child, parent pool.Handle) *LinkNodesCommand {
	return &LinkNodesCommand{child: child, parent: parent}
}

func (c *LinkNodesCommand) Name(*Context) string { return "Link Nodes" }

func (c *LinkNodesCommand) link(ctx *Context) {
	g := ctx.Scene.Graph
	oldParent := g.MustNode(c.child).Parent()
	g.LinkNodes(c.child, c.parent)
	c.parent = oldParent
}

func (c *LinkNodesCommand) Execute(ctx *Context) { c.link(ctx) }
func (c *LinkNodesCommand) Revert(ctx *Context)  { c.link(ctx) }

// AddNodeCommand inserts one node under a chosen parent. Before the first
// Execute it owns a detached node; after a Revert it owns the node plus the
// ticket reserving its slot, so a later Execute reinstates the exact same
// handle.
type AddNodeCommand struct {
	node       *scene.Node
	reserved   *scene.ReservedNode
	handle     pool.Handle
	parent     pool.Handle
	cachedName string
}

// NewAddNodeCommand takes ownership of node. The display label embeds the
// node's name now, while the node is still guaranteed to exist.
func NewAddNodeCommand(node scene.Node, parent pool.Handle) *AddNodeCommand {
	return &AddNodeCommand{
		node:       &node,
		parent:     parent,
		cachedName: fmt.Sprintf("Add Node %s", node.Name()),
	}
}

func (c *AddNodeCommand) Name(*Context) string { return c.cachedName }

func (c *AddNodeCommand) Execute(ctx *Context) {
	g := ctx.Scene.Graph
	switch {
	case c.reserved != nil:
		handle := g.PutBack(c.reserved.Ticket, c.reserved.Node)
		if handle != c.handle {
			panic(fmt.Sprintf("command: add node put-back returned %v, want %v", handle, c.handle))
		}
		c.reserved = nil
	case c.node != nil:
		c.handle = g.AddNode(*c.node)
		c.node = nil
	default:
		panic("command: add node executed while owning neither node nor ticket")
	}
	g.LinkNodes(c.handle, c.parent)
}

func (c *AddNodeCommand) Revert(ctx *Context) {
	// TakeReserve also unlinks the node from its parent.
	ticket, node := ctx.Scene.Graph.TakeReserve(c.handle)
	c.reserved = &scene.ReservedNode{Ticket: ticket, Node: node}
}

func (c *AddNodeCommand) Finalize(ctx *Context) {
	if c.reserved != nil {
		ctx.Scene.Graph.Forget(c.reserved.Ticket, c.reserved.Node)
		c.reserved = nil
	}
}

// Handle returns the node's handle; valid after the first Execute.
func (c *AddNodeCommand) Handle() pool.Handle { return c.handle }

// DeleteNodeCommand is the mirror of AddNodeCommand: Execute detaches the
// node (recording its parent), Revert reinstates it at the same handle and
// relinks it, and Finalize forgets the slot if the delete was never undone.
type DeleteNodeCommand struct {
	handle   pool.Handle
	parent   pool.Handle
	reserved *scene.ReservedNode
}

func NewDeleteNodeCommand(handle pool.Handle) *DeleteNodeCommand {
	return &DeleteNodeCommand{handle: handle}
}

func (c *DeleteNodeCommand) Name(*Context) string { return "Delete Node" }

func (c *DeleteNodeCommand) Execute(ctx *Context) {
	g := ctx.Scene.Graph
	c.parent = g.MustNode(c.handle).Parent()
	ticket, node := g.TakeReserve(c.handle)
	c.reserved = &scene.ReservedNode{Ticket: ticket, Node: node}
}

func (c *DeleteNodeCommand) Revert(ctx *Context) {
	if c.reserved == nil {
		panic("command: delete node reverted while owning no ticket")
	}
	g := ctx.Scene.Graph
	handle := g.PutBack(c.reserved.Ticket, c.reserved.Node)
	if handle != c.handle {
		panic(fmt.Sprintf("command: delete node put-back returned %v, want %v", handle, c.handle))
	}
	c.reserved = nil
	g.LinkNodes(c.handle, c.parent)
}

func (c *DeleteNodeCommand) Finalize(ctx *Context) {
	if c.reserved != nil {
		ctx.Scene.Graph.Forget(c.reserved.Ticket, c.reserved.Node)
		c.reserved = nil
	}
}
