// Package scene implements the node graph the engine renders and the editor
// mutates: a pool-backed tree of nodes with transforms, user properties,
// optional scripts, and payloads, plus the animation container that must
// track structural edits in lockstep.
package scene

import (
	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene/animation"
)

// Scene bundles the graph with its animation state. Commands receive the
// whole scene so bulk operations can move nodes and clips atomically.
type Scene struct {
	Graph      *Graph
	Animations *animation.Container
	Machines   *pool.Pool[animation.Machine]
}

func NewScene() *Scene {
	return &Scene{
		Graph:      NewGraph(),
		Animations: animation.NewContainer(),
		Machines:   pool.New[animation.Machine](),
	}
}
