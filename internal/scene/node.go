package scene

import (
	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scripting"
)

// Mobility tells the renderer how often a node's world transform may change.
type Mobility int

const (
	MobilityStatic Mobility = iota
	MobilityStationary
	MobilityDynamic
)

func (m Mobility) String() string {
	switch m {
	case MobilityStatic:
		return "static"
	case MobilityStationary:
		return "stationary"
	case MobilityDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Node is one entity of the scene graph. Nodes live in the graph's pool and
// are referenced everywhere else by pool.Handle only. Parent/child links are
// stored as handles and maintained by Graph, never mutated directly.
type Node struct {
	name              string
	tag               string
	visibility        bool
	frustumCulling    bool
	castShadows       bool
	depthOffsetFactor float32
	mobility          Mobility
	localTransform    Transform

	// Properties is the indexed user property list. Commands address it by
	// index, so edits must keep unrelated indices stable.
	Properties []Property

	// Script is the optional attached behavior. Nil means no script.
	Script *scripting.Script

	// Payload carries the engine-specific part of the node (light, listener).
	Payload Payload

	parent   pool.Handle
	children []pool.Handle
}

// NewNode creates an unlinked node with engine defaults.
func NewNode(name string) Node {
	return Node{
		name:           name,
		visibility:     true,
		frustumCulling: true,
		castShadows:    true,
		mobility:       MobilityStatic,
		localTransform: NewTransform(),
	}
}

func (n *Node) Name() string { return n.name }
func (n *Node) SetName(name string) {
	n.name = name
}

func (n *Node) Tag() string { return n.tag }
func (n *Node) SetTag(tag string) {
	n.tag = tag
}

func (n *Node) Visibility() bool { return n.visibility }
func (n *Node) SetVisibility(v bool) {
	n.visibility = v
}

func (n *Node) FrustumCulling() bool { return n.frustumCulling }
func (n *Node) SetFrustumCulling(v bool) {
	n.frustumCulling = v
}

func (n *Node) CastShadows() bool { return n.castShadows }
func (n *Node) SetCastShadows(v bool) {
	n.castShadows = v
}

func (n *Node) DepthOffsetFactor() float32 { return n.depthOffsetFactor }
func (n *Node) SetDepthOffsetFactor(f float32) {
	n.depthOffsetFactor = f
}

func (n *Node) Mobility() Mobility { return n.mobility }
func (n *Node) SetMobility(m Mobility) {
	n.mobility = m
}

// LocalTransform returns the mutable local transform.
func (n *Node) LocalTransform() *Transform { return &n.localTransform }

// Parent returns the parent handle, pool.None for unlinked nodes.
func (n *Node) Parent() pool.Handle { return n.parent }

// Children returns the child handles. The slice is owned by the graph.
func (n *Node) Children() []pool.Handle { return n.children }
