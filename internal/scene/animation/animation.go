// Package animation holds animation clips, their pool container, and
// blending machines. Clips reference scene nodes by handle; the editor moves
// clips in and out of the container in lockstep with the node sub-graphs they
// target.
package animation

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/keel3d/engine/internal/core/pool"
)

// Keyframe is one sample of a track.
type Keyframe struct {
	Time     float32
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Quat
}

// Track animates the local transform of a single node.
type Track struct {
	// Node is the animated node. Retargeting rewrites this handle when a clip
	// is instantiated onto a different hierarchy.
	Node pool.Handle

	// TargetName is the node name the track was authored against; used to
	// re-resolve Node during retargeting.
	TargetName string

	Keyframes []Keyframe
}

// Animation is one clip: a named set of tracks over a shared timeline.
type Animation struct {
	Name    string
	Length  float32
	Speed   float32
	Looped  bool
	Enabled bool
	Tracks  []Track
}

// New creates an empty clip with engine defaults.
func New(name string) Animation {
	return Animation{Name: name, Speed: 1, Looped: true, Enabled: true}
}
