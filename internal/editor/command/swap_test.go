package command

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/keel3d/engine/internal/scene"
)

func TestMoveNodeCommand(t *testing.T) {
	ctx := newTestContext(t)
	h := ctx.Scene.Graph.AddNode(scene.NewNode("a"))
	node := ctx.Scene.Graph.MustNode(h)

	cmd := NewMoveNodeCommand(h, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, 3})
	assert.Equal(t, "Move Node", cmd.Name(ctx))

	cmd.Execute(ctx)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, node.LocalTransform().Position())

	cmd.Revert(ctx)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, node.LocalTransform().Position())

	cmd.Execute(ctx)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, node.LocalTransform().Position())
}

func TestRotateNodeCommandBitIdentical(t *testing.T) {
	ctx := newTestContext(t)
	h := ctx.Scene.Graph.AddNode(scene.NewNode("a"))
	node := ctx.Scene.Graph.MustNode(h)

	old := node.LocalTransform().Rotation()
	next := mgl32.QuatRotate(1.5, mgl32.Vec3{0, 1, 0})

	cmd := NewRotateNodeCommand(h, old, next)
	cmd.Execute(ctx)
	first := node.LocalTransform().Rotation()

	cmd.Revert(ctx)
	assert.Equal(t, old, node.LocalTransform().Rotation())

	cmd.Execute(ctx)
	assert.Equal(t, first, node.LocalTransform().Rotation())
}

func TestSimpleFieldSwapCommands(t *testing.T) {
	ctx := newTestContext(t)
	h := ctx.Scene.Graph.AddNode(scene.NewNode("old-name"))
	node := ctx.Scene.Graph.MustNode(h)

	cases := []struct {
		cmd     Command
		applied func() any
		before  any
		after   any
	}{
		{NewSetNameCommand(h, "old-name", "new-name"), func() any { return node.Name() }, "old-name", "new-name"},
		{NewSetTagCommand(h, "", "enemy"), func() any { return node.Tag() }, "", "enemy"},
		{NewSetVisibleCommand(h, true, false), func() any { return node.Visibility() }, true, false},
		{NewSetFrustumCullingCommand(h, true, false), func() any { return node.FrustumCulling() }, true, false},
		{NewSetCastShadowsCommand(h, true, false), func() any { return node.CastShadows() }, true, false},
		{NewSetMobilityCommand(h, scene.MobilityStatic, scene.MobilityDynamic), func() any { return node.Mobility() }, scene.MobilityStatic, scene.MobilityDynamic},
		{NewSetDepthOffsetCommand(h, 0, 0.25), func() any { return node.DepthOffsetFactor() }, float32(0), float32(0.25)},
	}

	for _, tc := range cases {
		name := tc.cmd.Name(ctx)
		tc.cmd.Execute(ctx)
		assert.Equal(t, tc.after, tc.applied(), name)
		tc.cmd.Revert(ctx)
		assert.Equal(t, tc.before, tc.applied(), name)
		tc.cmd.Execute(ctx)
		assert.Equal(t, tc.after, tc.applied(), name)
	}
}

func TestPivotOffsetSwapCommands(t *testing.T) {
	ctx := newTestContext(t)
	h := ctx.Scene.Graph.AddNode(scene.NewNode("a"))
	tr := ctx.Scene.Graph.MustNode(h).LocalTransform()

	v := mgl32.Vec3{1, 2, 3}
	q := mgl32.QuatRotate(0.7, mgl32.Vec3{1, 0, 0})

	NewSetRotationOffsetCommand(h, tr.RotationOffset(), v).Execute(ctx)
	assert.Equal(t, v, tr.RotationOffset())

	NewSetRotationPivotCommand(h, tr.RotationPivot(), v).Execute(ctx)
	assert.Equal(t, v, tr.RotationPivot())

	NewSetScalingOffsetCommand(h, tr.ScalingOffset(), v).Execute(ctx)
	assert.Equal(t, v, tr.ScalingOffset())

	NewSetScalingPivotCommand(h, tr.ScalingPivot(), v).Execute(ctx)
	assert.Equal(t, v, tr.ScalingPivot())

	pre := NewSetPreRotationCommand(h, tr.PreRotation(), q)
	pre.Execute(ctx)
	assert.Equal(t, q, tr.PreRotation())
	pre.Revert(ctx)
	assert.Equal(t, mgl32.QuatIdent(), tr.PreRotation())

	post := NewSetPostRotationCommand(h, tr.PostRotation(), q)
	post.Execute(ctx)
	assert.Equal(t, q, tr.PostRotation())
}
