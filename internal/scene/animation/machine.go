package animation

import "github.com/keel3d/engine/internal/core/pool"

// State is one node of a blending machine; it plays a single clip.
type State struct {
	Name      string
	Animation pool.Handle
}

// Transition is a timed blend between two states.
type Transition struct {
	Source   string
	Dest     string
	Duration float32
}

// Machine is an instantiated animation blending state machine. It owns
// nothing: the clips its states reference live in the scene's Container and
// must be deleted alongside the machine.
type Machine struct {
	Name        string
	Root        pool.Handle
	States      []State
	Transitions []Transition
	ActiveState string
}

// AnimationHandles returns the clip handle of every state, in state order.
func (m *Machine) AnimationHandles() []pool.Handle {
	out := make([]pool.Handle, 0, len(m.States))
	for _, s := range m.States {
		out = append(out, s.Animation)
	}
	return out
}
