package animation

import "github.com/keel3d/engine/internal/core/pool"

// Container owns every animation of a scene, exposing the same provisional
// removal contract as the scene graph so undo can move clips together with
// the nodes that reference them.
type Container struct {
	pool *pool.Pool[Animation]
}

func NewContainer() *Container {
	return &Container{pool: pool.New[Animation]()}
}

func (c *Container) Add(a Animation) pool.Handle { return c.pool.Add(a) }

func (c *Container) Borrow(handle pool.Handle) (*Animation, bool) { return c.pool.Borrow(handle) }

func (c *Container) MustBorrow(handle pool.Handle) *Animation { return c.pool.MustBorrow(handle) }

func (c *Container) Alive(handle pool.Handle) bool { return c.pool.Alive(handle) }

func (c *Container) Len() int { return c.pool.Len() }

func (c *Container) Each(fn func(pool.Handle, *Animation)) { c.pool.Each(fn) }

// TakeReserve vacates a clip, keeping its slot reserved for PutBack.
func (c *Container) TakeReserve(handle pool.Handle) (pool.Ticket, Animation) {
	return c.pool.TakeReserve(handle)
}

// PutBack reinstates a clip at the handle its ticket was issued for.
func (c *Container) PutBack(ticket pool.Ticket, a Animation) pool.Handle {
	return c.pool.PutBack(ticket, a)
}

// Forget permanently frees a reserved clip slot.
func (c *Container) Forget(ticket pool.Ticket) { c.pool.Forget(ticket) }
