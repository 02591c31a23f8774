package resource

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scene/animation"
)

// InstantiationError aborts a whole model or machine instantiation. The scene
// is untouched when it is returned: validation happens before any mutation.
type InstantiationError struct {
	Asset  string
	Reason error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("resource: instantiate %s: %v", e.Asset, e.Reason)
}

func (e *InstantiationError) Unwrap() error { return e.Reason }

// Model is a parsed model asset: a node tree plus its animation clips.
type Model struct {
	Name       string         `yaml:"name"`
	Root       nodeDef        `yaml:"root"`
	Animations []animationDef `yaml:"animations,omitempty"`
}

type nodeDef struct {
	Name     string         `yaml:"name"`
	Payload  string         `yaml:"payload,omitempty"`
	Position [3]float32     `yaml:"position,omitempty"`
	Scale    *[3]float32    `yaml:"scale,omitempty"`
	Rotation *[4]float32    `yaml:"rotation,omitempty"` // x, y, z, w
	Children []nodeDef      `yaml:"children,omitempty"`
	Props    map[string]any `yaml:"properties,omitempty"`
}

type animationDef struct {
	Name   string     `yaml:"name"`
	Length float32    `yaml:"length"`
	Looped bool       `yaml:"looped"`
	Tracks []trackDef `yaml:"tracks"`
}

type trackDef struct {
	Target    string        `yaml:"target"`
	Keyframes []keyframeDef `yaml:"keyframes"`
}

type keyframeDef struct {
	Time     float32     `yaml:"time"`
	Position [3]float32  `yaml:"position,omitempty"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
	Rotation *[4]float32 `yaml:"rotation,omitempty"`
}

// LoadModel parses a model asset relative to the manager root.
func (m *Manager) LoadModel(path string) (*Model, error) {
	data, err := m.readFile(path)
	if err != nil {
		return nil, err
	}
	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("resource: parse model %s: %w", path, err)
	}
	if model.Root.Name == "" {
		return nil, &InstantiationError{Asset: path, Reason: fmt.Errorf("model has no root node")}
	}
	return &model, nil
}

// Instantiate builds the model's node tree in the scene (linked under the
// graph root) and adds every clip, retargeted onto the new nodes. Either the
// whole model lands or none of it does: one clip referencing a missing
// target name fails the entire call before the scene is touched.
func (model *Model) Instantiate(sc *scene.Scene) (pool.Handle, []pool.Handle, error) {
	names := make(map[string]bool)
	collectNames(&model.Root, names)
	for _, clip := range model.Animations {
		for _, track := range clip.Tracks {
			if !names[track.Target] {
				return pool.None, nil, &InstantiationError{
					Asset:  model.Name,
					Reason: fmt.Errorf("animation %q targets unknown node %q", clip.Name, track.Target),
				}
			}
		}
	}
	for _, def := range collectPayloads(&model.Root) {
		if _, err := buildPayload(def); err != nil {
			return pool.None, nil, &InstantiationError{Asset: model.Name, Reason: err}
		}
	}

	handles := make(map[string]pool.Handle)
	root := instantiateNode(sc.Graph, &model.Root, sc.Graph.Root(), handles)

	animHandles := make([]pool.Handle, 0, len(model.Animations))
	for _, clip := range model.Animations {
		animHandles = append(animHandles, sc.Animations.Add(buildAnimation(clip, handles)))
	}
	return root, animHandles, nil
}

func collectNames(def *nodeDef, out map[string]bool) {
	out[def.Name] = true
	for i := range def.Children {
		collectNames(&def.Children[i], out)
	}
}

func collectPayloads(def *nodeDef) []string {
	var out []string
	if def.Payload != "" {
		out = append(out, def.Payload)
	}
	for i := range def.Children {
		out = append(out, collectPayloads(&def.Children[i])...)
	}
	return out
}

func buildPayload(kind string) (scene.Payload, error) {
	switch kind {
	case "":
		return nil, nil
	case "point_light":
		return scene.NewPointLight(), nil
	case "spot_light":
		return scene.NewSpotLight(), nil
	case "directional_light":
		return scene.NewDirectionalLight(), nil
	case "listener":
		return scene.Listener{}, nil
	default:
		return nil, fmt.Errorf("unknown payload kind %q", kind)
	}
}

func instantiateNode(g *scene.Graph, def *nodeDef, parent pool.Handle, handles map[string]pool.Handle) pool.Handle {
	node := scene.NewNode(def.Name)
	node.LocalTransform().SetPosition(mgl32.Vec3{def.Position[0], def.Position[1], def.Position[2]})
	if def.Scale != nil {
		node.LocalTransform().SetScale(mgl32.Vec3{def.Scale[0], def.Scale[1], def.Scale[2]})
	}
	if def.Rotation != nil {
		r := *def.Rotation
		node.LocalTransform().SetRotation(mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}})
	}
	for name, value := range def.Props {
		node.Properties = append(node.Properties, scene.Property{Name: name, Value: value})
	}
	// Validated earlier, cannot fail here.
	node.Payload, _ = buildPayload(def.Payload)

	handle := g.AddNode(node)
	g.LinkNodes(handle, parent)
	handles[def.Name] = handle

	for i := range def.Children {
		instantiateNode(g, &def.Children[i], handle, handles)
	}
	return handle
}

func buildAnimation(def animationDef, handles map[string]pool.Handle) animation.Animation {
	clip := animation.New(def.Name)
	clip.Length = def.Length
	clip.Looped = def.Looped
	for _, t := range def.Tracks {
		track := animation.Track{Node: handles[t.Target], TargetName: t.Target}
		for _, k := range t.Keyframes {
			kf := animation.Keyframe{
				Time:     k.Time,
				Position: mgl32.Vec3{k.Position[0], k.Position[1], k.Position[2]},
				Scale:    mgl32.Vec3{1, 1, 1},
				Rotation: mgl32.QuatIdent(),
			}
			if k.Scale != nil {
				kf.Scale = mgl32.Vec3{k.Scale[0], k.Scale[1], k.Scale[2]}
			}
			if k.Rotation != nil {
				r := *k.Rotation
				kf.Rotation = mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
			}
			track.Keyframes = append(track.Keyframes, kf)
		}
		clip.Tracks = append(clip.Tracks, track)
	}
	return clip
}
