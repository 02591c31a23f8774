package command

import (
	"fmt"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
)

// AddPropertyCommand appends one property to a node's list; its revert is a
// remove of the same entry. The append/remove pair preserves every other
// property's index.
type AddPropertyCommand struct {
	NoFinalize
	handle   pool.Handle
	property scene.Property
}

func NewAddPropertyCommand(handle pool.Handle, property scene.Property) *AddPropertyCommand {
	return &AddPropertyCommand{handle: handle, property: property}
}

func (c *AddPropertyCommand) Name(*Context) string { return "Add Property" }

func (c *AddPropertyCommand) Execute(ctx *Context) {
	n := ctx.Scene.Graph.MustNode(c.handle)
	n.Properties = append(n.Properties, c.property)
}

func (c *AddPropertyCommand) Revert(ctx *Context) {
	n := ctx.Scene.Graph.MustNode(c.handle)
	n.Properties = n.Properties[:len(n.Properties)-1]
}

// RemovePropertyCommand removes the property at one index; its revert
// reinserts it at that exact index, shifting nothing else.
type RemovePropertyCommand struct {
	NoFinalize
	handle  pool.Handle
	index   int
	removed *scene.Property
}

func NewRemovePropertyCommand(handle pool.Handle, index int) *RemovePropertyCommand {
	return &RemovePropertyCommand{handle: handle, index: index}
}

func (c *RemovePropertyCommand) Name(*Context) string { return "Remove Property" }

func (c *RemovePropertyCommand) Execute(ctx *Context) {
	n := ctx.Scene.Graph.MustNode(c.handle)
	p := n.Properties[c.index]
	c.removed = &p
	n.Properties = append(n.Properties[:c.index], n.Properties[c.index+1:]...)
}

func (c *RemovePropertyCommand) Revert(ctx *Context) {
	if c.removed == nil {
		panic("command: remove property reverted before execute")
	}
	n := ctx.Scene.Graph.MustNode(c.handle)
	n.Properties = append(n.Properties[:c.index],
		append([]scene.Property{*c.removed}, n.Properties[c.index:]...)...)
	c.removed = nil
}

// SetPropertyValueCommand swaps the value at one index of a node's property
// list. The index must stay valid for the command's whole lifetime: no
// structural edit of that list may be interleaved while the command is live.
type SetPropertyValueCommand struct {
	NoFinalize
	Handle pool.Handle
	Index  int
	Value  scene.PropertyValue
}

func (c *SetPropertyValueCommand) Name(*Context) string { return "Set Property Value" }

func (c *SetPropertyValueCommand) swap(ctx *Context) {
	n := ctx.Scene.Graph.MustNode(c.Handle)
	if c.Index >= len(n.Properties) {
		panic(fmt.Sprintf("command: property index %d out of range for node %v", c.Index, c.Handle))
	}
	n.Properties[c.Index].Value, c.Value = c.Value, n.Properties[c.Index].Value
}

func (c *SetPropertyValueCommand) Execute(ctx *Context) { c.swap(ctx) }
func (c *SetPropertyValueCommand) Revert(ctx *Context)  { c.swap(ctx) }

// SetPropertyNameCommand swaps the name at one index of a node's property
// list.
type SetPropertyNameCommand struct {
	NoFinalize
	Handle       pool.Handle
	Index        int
	PropertyName string
}

func (c *SetPropertyNameCommand) Name(*Context) string { return "Set Property Name" }

func (c *SetPropertyNameCommand) swap(ctx *Context) {
	n := ctx.Scene.Graph.MustNode(c.Handle)
	n.Properties[c.Index].Name, c.PropertyName = c.PropertyName, n.Properties[c.Index].Name
}

func (c *SetPropertyNameCommand) Execute(ctx *Context) { c.swap(ctx) }
func (c *SetPropertyNameCommand) Revert(ctx *Context)  { c.swap(ctx) }
