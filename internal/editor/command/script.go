package command

import (
	"fmt"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scripting"
)

// scriptState is the lifecycle of a SetScriptCommand. undefined exists only
// inside a transition, never at rest.
type scriptState int

const (
	scriptUndefined scriptState = iota
	scriptNonExecuted
	scriptExecuted
	scriptReverted
)

func (s scriptState) String() string {
	switch s {
	case scriptNonExecuted:
		return "non-executed"
	case scriptExecuted:
		return "executed"
	case scriptReverted:
		return "reverted"
	default:
		return "undefined"
	}
}

// SetScriptCommand attaches (or clears, when script is nil) a node's script.
//
// On revert the script is taken off the node and serialized to bytes instead
// of being held live: the next execute deserializes it and re-resolves its
// resource references, so no stale handles survive intervening edits. The
// transition function is total; an invalid (state, operation) pair is
// reported as a typed error and escalated, because it means the command
// history and the graph have diverged.
type SetScriptCommand struct {
	NoFinalize
	handle pool.Handle
	state  scriptState
	script *scripting.Script // owned in scriptNonExecuted
	data   []byte            // owned in scriptReverted; nil encodes "no script"
}

func NewSetScriptCommand(handle pool.Handle, script *scripting.Script) *SetScriptCommand {
	return &SetScriptCommand{handle: handle, state: scriptNonExecuted, script: script}
}

func (c *SetScriptCommand) Name(*Context) string { return "Set Script" }

func (c *SetScriptCommand) Execute(ctx *Context) {
	if err := c.execute(ctx); err != nil {
		panic(err)
	}
}

func (c *SetScriptCommand) Revert(ctx *Context) {
	if err := c.revert(ctx); err != nil {
		panic(err)
	}
}

func (c *SetScriptCommand) execute(ctx *Context) error {
	node := ctx.Scene.Graph.MustNode(c.handle)

	state := c.state
	c.state = scriptExecuted
	switch state {
	case scriptNonExecuted:
		node.Script = c.script
		c.script = nil
	case scriptReverted:
		if c.data == nil {
			node.Script = nil
			break
		}
		script, err := ctx.Serialization.LoadScript(c.data)
		if err != nil {
			return fmt.Errorf("command: set script execute: %w", err)
		}
		node.Script = script
		c.data = nil
		ctx.Log.Verify(script.RestoreResources(ctx.Serialization, ctx.Resources))
	default:
		return fmt.Errorf("command: set script execute from %s state", state)
	}
	return nil
}

func (c *SetScriptCommand) revert(ctx *Context) error {
	node := ctx.Scene.Graph.MustNode(c.handle)

	state := c.state
	c.state = scriptUndefined
	if state != scriptExecuted {
		return fmt.Errorf("command: set script revert from %s state", state)
	}

	script := node.Script
	node.Script = nil
	if script != nil {
		data, err := ctx.Serialization.SaveScript(script)
		if err != nil {
			return fmt.Errorf("command: set script revert: %w", err)
		}
		c.data = data
	} else {
		c.data = nil
	}
	c.state = scriptReverted
	return nil
}

// ScriptDataBlobCommand swaps one serialized form of a node's script for
// another. Each swap deserializes the incoming blob into a live script,
// installs it, and re-resolves resources. The node must already carry a
// script; a blob edit on a scriptless node is a fatal logic error.
type ScriptDataBlobCommand struct {
	NoFinalize
	Handle   pool.Handle
	OldValue []byte
	NewValue []byte
}

func (c *ScriptDataBlobCommand) Name(*Context) string { return "Change Script Property" }

func (c *ScriptDataBlobCommand) swap(ctx *Context) {
	data := c.NewValue
	c.OldValue, c.NewValue = c.NewValue, c.OldValue

	node := ctx.Scene.Graph.MustNode(c.Handle)
	if node.Script == nil {
		panic(fmt.Sprintf("command: script blob edit on scriptless node %v", c.Handle))
	}
	script, err := ctx.Serialization.LoadScript(data)
	if err != nil {
		panic(fmt.Sprintf("command: script blob edit: %v", err))
	}
	node.Script = script
	ctx.Log.Verify(script.RestoreResources(ctx.Serialization, ctx.Resources))
}

func (c *ScriptDataBlobCommand) Execute(ctx *Context) { c.swap(ctx) }
func (c *ScriptDataBlobCommand) Revert(ctx *Context)  { c.swap(ctx) }
