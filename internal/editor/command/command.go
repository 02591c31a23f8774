// Package command implements the editor's reversible scene edits. Every edit
// is a Command whose Execute and Revert restore the graph to an observably
// identical state (same handles, same links, same field values); Finalize is
// the deferred irreversible cleanup that runs only once a command can never
// be reverted again. The Stack owns that discipline.
package command

import (
	"github.com/keel3d/engine/internal/core/event"
	"github.com/keel3d/engine/internal/logging"
	"github.com/keel3d/engine/internal/resource"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scripting"
)

// Context is everything a command may touch. Commands run synchronously on
// the thread that owns the scene; no command outlives a single call's
// exclusive access.
type Context struct {
	Scene         *scene.Scene
	Serialization *scripting.Context
	Resources     *resource.Manager
	Bus           *event.Bus
	Log           *logging.Log
}

// Command is one unit of reversible work.
//
// Execute followed by Revert must leave the scene bit-identical to the state
// before Execute; the two are involutions when alternated. Name may read the
// context but never mutates it. Finalize defaults to a no-op via NoFinalize.
type Command interface {
	Name(ctx *Context) string
	Execute(ctx *Context)
	Revert(ctx *Context)
	Finalize(ctx *Context)
}

// NoFinalize is embedded by commands that hold nothing to release.
type NoFinalize struct{}

func (NoFinalize) Finalize(*Context) {}
