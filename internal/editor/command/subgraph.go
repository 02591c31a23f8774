package command

import (
	"fmt"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scene/animation"
)

// ReservedAnimation pairs a vacated clip with the ticket for its slot,
// mirroring scene.ReservedNode for the animation container.
type ReservedAnimation struct {
	Ticket    pool.Ticket
	Animation animation.Animation
}

// DetachModelInstance pulls a freshly instantiated model back out of the
// scene so an AddModelCommand can own it before its first Execute: the node
// sub-graph and every clip travel as one unit.
func DetachModelInstance(sc *scene.Scene, root pool.Handle, anims []pool.Handle) (scene.SubGraph, []ReservedAnimation) {
	sg := sc.Graph.TakeReserveSubGraph(root)
	reserved := make([]ReservedAnimation, 0, len(anims))
	for _, h := range anims {
		ticket, clip := sc.Animations.TakeReserve(h)
		reserved = append(reserved, ReservedAnimation{Ticket: ticket, Animation: clip})
	}
	return sg, reserved
}

// AddModelCommand admits a whole model instance — node sub-graph plus its
// animation clips — into the scene, and removes both together on revert.
type AddModelCommand struct {
	model      pool.Handle
	animations []pool.Handle
	subGraph   *scene.SubGraph
	container  []ReservedAnimation
}

// NewAddModelCommand takes ownership of a detached sub-graph and its clips.
// The clip handle list is captured during the first Execute and is immutable
// afterwards: revert/execute cycles operate on exactly that set.
func NewAddModelCommand(subGraph scene.SubGraph, container []ReservedAnimation) *AddModelCommand {
	return &AddModelCommand{subGraph: &subGraph, container: container}
}

func (c *AddModelCommand) Name(*Context) string { return "Load Model" }

func (c *AddModelCommand) Execute(ctx *Context) {
	if c.subGraph == nil {
		panic("command: add model executed while owning no sub-graph")
	}
	g := ctx.Scene.Graph
	c.model = g.PutSubGraphBack(*c.subGraph)
	c.subGraph = nil
	g.LinkNodes(c.model, g.Root())

	firstRun := c.animations == nil
	for i, ra := range c.container {
		handle := ctx.Scene.Animations.PutBack(ra.Ticket, ra.Animation)
		if firstRun {
			c.animations = append(c.animations, handle)
		} else if handle != c.animations[i] {
			panic(fmt.Sprintf("command: add model clip put-back returned %v, want %v", handle, c.animations[i]))
		}
	}
	if firstRun && c.container == nil {
		c.animations = []pool.Handle{}
	}
	c.container = nil
}

func (c *AddModelCommand) Revert(ctx *Context) {
	sg := ctx.Scene.Graph.TakeReserveSubGraph(c.model)
	c.subGraph = &sg
	c.container = make([]ReservedAnimation, 0, len(c.animations))
	for _, h := range c.animations {
		ticket, clip := ctx.Scene.Animations.TakeReserve(h)
		c.container = append(c.container, ReservedAnimation{Ticket: ticket, Animation: clip})
	}
}

func (c *AddModelCommand) Finalize(ctx *Context) {
	if c.subGraph != nil {
		ctx.Scene.Graph.ForgetSubGraph(*c.subGraph)
		c.subGraph = nil
	}
	for _, ra := range c.container {
		ctx.Scene.Animations.Forget(ra.Ticket)
	}
	c.container = nil
}

// DeleteSubGraphCommand removes one rooted subtree, remembering its parent
// link so revert reattaches it exactly where it was.
type DeleteSubGraphCommand struct {
	root     pool.Handle
	parent   pool.Handle
	subGraph *scene.SubGraph
}

func NewDeleteSubGraphCommand(root pool.Handle) *DeleteSubGraphCommand {
	return &DeleteSubGraphCommand{root: root}
}

func (c *DeleteSubGraphCommand) Name(*Context) string { return "Delete Sub Graph" }

func (c *DeleteSubGraphCommand) Execute(ctx *Context) {
	g := ctx.Scene.Graph
	c.parent = g.MustNode(c.root).Parent()
	sg := g.TakeReserveSubGraph(c.root)
	c.subGraph = &sg
}

func (c *DeleteSubGraphCommand) Revert(ctx *Context) {
	if c.subGraph == nil {
		panic("command: delete sub-graph reverted while owning no sub-graph")
	}
	g := ctx.Scene.Graph
	g.PutSubGraphBack(*c.subGraph)
	c.subGraph = nil
	g.LinkNodes(c.root, c.parent)
}

func (c *DeleteSubGraphCommand) Finalize(ctx *Context) {
	if c.subGraph != nil {
		ctx.Scene.Graph.ForgetSubGraph(*c.subGraph)
		c.subGraph = nil
	}
}
