package resource

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scene/animation"
)

// MachineDefinition is an animation blending machine asset. States reference
// clip assets by path; instantiation loads and retargets every clip.
type MachineDefinition struct {
	Name        string          `yaml:"name"`
	Initial     string          `yaml:"initial"`
	States      []stateDef      `yaml:"states"`
	Transitions []transitionDef `yaml:"transitions,omitempty"`
}

type stateDef struct {
	Name string `yaml:"name"`
	Clip string `yaml:"clip"` // path to a clip asset
}

type transitionDef struct {
	Source   string  `yaml:"source"`
	Dest     string  `yaml:"dest"`
	Duration float32 `yaml:"duration"`
}

// LoadMachine parses a machine definition asset.
func (m *Manager) LoadMachine(path string) (*MachineDefinition, error) {
	data, err := m.readFile(path)
	if err != nil {
		return nil, err
	}
	var def MachineDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("resource: parse machine %s: %w", path, err)
	}
	if len(def.States) == 0 {
		return nil, &InstantiationError{Asset: path, Reason: fmt.Errorf("machine has no states")}
	}
	return &def, nil
}

// clipAsset is a standalone clip file, same shape as a model's embedded clip.
type clipAsset struct {
	Animation animationDef `yaml:"animation"`
}

// Instantiate retargets every referenced clip onto the node hierarchy under
// root and builds a live machine. All clips load and retarget before the
// scene is mutated, so one faulty clip fails the whole machine and leaves the
// scene untouched.
func (def *MachineDefinition) Instantiate(m *Manager, sc *scene.Scene, root pool.Handle) (pool.Handle, error) {
	type pending struct {
		state string
		clip  animation.Animation
	}

	pendings := make([]pending, 0, len(def.States))
	for _, state := range def.States {
		data, err := m.readFile(state.Clip)
		if err != nil {
			return pool.None, &InstantiationError{Asset: def.Name, Reason: err}
		}
		var asset clipAsset
		if err := yaml.Unmarshal(data, &asset); err != nil {
			return pool.None, &InstantiationError{
				Asset:  def.Name,
				Reason: fmt.Errorf("parse clip %s: %w", state.Clip, err),
			}
		}
		clip, err := retarget(asset.Animation, sc.Graph, root)
		if err != nil {
			return pool.None, &InstantiationError{Asset: def.Name, Reason: err}
		}
		pendings = append(pendings, pending{state: state.Name, clip: clip})
	}

	machine := animation.Machine{
		Name:        def.Name,
		Root:        root,
		ActiveState: def.Initial,
	}
	for _, p := range pendings {
		handle := sc.Animations.Add(p.clip)
		machine.States = append(machine.States, animation.State{Name: p.state, Animation: handle})
	}
	for _, t := range def.Transitions {
		machine.Transitions = append(machine.Transitions, animation.Transition{
			Source: t.Source, Dest: t.Dest, Duration: t.Duration,
		})
	}
	return sc.Machines.Add(machine), nil
}

// retarget resolves every track's target name to a node under root.
func retarget(def animationDef, g *scene.Graph, root pool.Handle) (animation.Animation, error) {
	handles := make(map[string]pool.Handle, len(def.Tracks))
	for _, t := range def.Tracks {
		node := g.FindByName(root, t.Target)
		if node.IsNone() {
			return animation.Animation{}, fmt.Errorf(
				"animation %q: no node %q under retarget root", def.Name, t.Target)
		}
		handles[t.Target] = node
	}
	return buildAnimation(def, handles), nil
}
