package command

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
)

// SwapCommand is the whole family of single-field edits: it holds the old and
// new value of one node field, and Execute and Revert are the same operation,
// exchanging the two and applying whichever is now current. One generic type
// parameterized by a setter replaces a macro-generated command per field.
type SwapCommand[T any] struct {
	NoFinalize
	name string
	node pool.Handle
	old  T
	new  T
	set  func(*scene.Node, T)
}

func newSwapCommand[T any](name string, node pool.Handle, old, new T, set func(*scene.Node, T)) *SwapCommand[T] {
	return &SwapCommand[T]{name: name, node: node, old: old, new: new, set: set}
}

func (c *SwapCommand[T]) Name(*Context) string { return c.name }

func (c *SwapCommand[T]) swap() T {
	value := c.new
	c.new, c.old = c.old, c.new
	return value
}

func (c *SwapCommand[T]) apply(ctx *Context) {
	c.set(ctx.Scene.Graph.MustNode(c.node), c.swap())
}

func (c *SwapCommand[T]) Execute(ctx *Context) { c.apply(ctx) }
func (c *SwapCommand[T]) Revert(ctx *Context)  { c.apply(ctx) }

// ── Transform ──────────────────────────────────────────────────────

func NewMoveNodeCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Move Node", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetPosition(v)
	})
}

func NewScaleNodeCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Scale Node", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetScale(v)
	})
}

func NewRotateNodeCommand(node pool.Handle, old, new mgl32.Quat) Command {
	return newSwapCommand("Rotate Node", node, old, new, func(n *scene.Node, q mgl32.Quat) {
		n.LocalTransform().SetRotation(q)
	})
}

// ── Simple fields ──────────────────────────────────────────────────

func NewSetNameCommand(node pool.Handle, old, new string) Command {
	return newSwapCommand("Set Name", node, old, new, (*scene.Node).SetName)
}

func NewSetTagCommand(node pool.Handle, old, new string) Command {
	return newSwapCommand("Set Tag", node, old, new, (*scene.Node).SetTag)
}

func NewSetVisibleCommand(node pool.Handle, old, new bool) Command {
	return newSwapCommand("Set Visible", node, old, new, (*scene.Node).SetVisibility)
}

func NewSetFrustumCullingCommand(node pool.Handle, old, new bool) Command {
	return newSwapCommand("Set Frustum Culling", node, old, new, (*scene.Node).SetFrustumCulling)
}

func NewSetCastShadowsCommand(node pool.Handle, old, new bool) Command {
	return newSwapCommand("Set Cast Shadows", node, old, new, (*scene.Node).SetCastShadows)
}

func NewSetMobilityCommand(node pool.Handle, old, new scene.Mobility) Command {
	return newSwapCommand("Set Mobility", node, old, new, (*scene.Node).SetMobility)
}

func NewSetDepthOffsetCommand(node pool.Handle, old, new float32) Command {
	return newSwapCommand("Set Depth Offset", node, old, new, (*scene.Node).SetDepthOffsetFactor)
}

// ── Pivot/offset transform decomposition ───────────────────────────

func NewSetPostRotationCommand(node pool.Handle, old, new mgl32.Quat) Command {
	return newSwapCommand("Set Post Rotation", node, old, new, func(n *scene.Node, q mgl32.Quat) {
		n.LocalTransform().SetPostRotation(q)
	})
}

func NewSetPreRotationCommand(node pool.Handle, old, new mgl32.Quat) Command {
	return newSwapCommand("Set Pre Rotation", node, old, new, func(n *scene.Node, q mgl32.Quat) {
		n.LocalTransform().SetPreRotation(q)
	})
}

func NewSetRotationOffsetCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Set Rotation Offset", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetRotationOffset(v)
	})
}

func NewSetRotationPivotCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Set Rotation Pivot", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetRotationPivot(v)
	})
}

func NewSetScalingOffsetCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Set Scaling Offset", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetScalingOffset(v)
	})
}

func NewSetScalingPivotCommand(node pool.Handle, old, new mgl32.Vec3) Command {
	return newSwapCommand("Set Scaling Pivot", node, old, new, func(n *scene.Node, v mgl32.Vec3) {
		n.LocalTransform().SetScalingPivot(v)
	})
}
