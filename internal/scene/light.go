package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/keel3d/engine/internal/scripting"
)

// Payload is the engine-specific part of a node. The command layer never
// inspects payloads; they ride along through delete/undo untouched.
type Payload interface {
	Kind() string
}

// ResourceRestorer is implemented by payloads that hold resource references.
type ResourceRestorer interface {
	RestoreResources(env scripting.ResourceEnv) error
}

// BaseLight holds the parameters shared by all light payloads.
type BaseLight struct {
	color      mgl32.Vec3
	intensity  float32
	shadowBias float32
}

func NewBaseLight() BaseLight {
	return BaseLight{
		color:      mgl32.Vec3{1, 1, 1},
		intensity:  1,
		shadowBias: 0.00125,
	}
}

func (l *BaseLight) Color() mgl32.Vec3     { return l.color }
func (l *BaseLight) SetColor(c mgl32.Vec3) { l.color = c }

func (l *BaseLight) Intensity() float32     { return l.intensity }
func (l *BaseLight) SetIntensity(i float32) { l.intensity = i }

func (l *BaseLight) ShadowBias() float32 { return l.shadowBias }

// SetShadowBias clamps to non-negative; a negative bias flips shadow acne
// into peter-panning.
func (l *BaseLight) SetShadowBias(bias float32) {
	l.shadowBias = math32.Abs(bias)
}

// PointLight emits in all directions; intensity reaches zero at Radius.
type PointLight struct {
	BaseLight
	radius float32
}

func NewPointLight() *PointLight {
	return &PointLight{BaseLight: NewBaseLight(), radius: 10}
}

func (l *PointLight) Kind() string { return "point_light" }

func (l *PointLight) Radius() float32 { return l.radius }

// SetRadius clamps to non-negative. The clamping policy lives here, in the
// setter, not in the editor commands that call it.
func (l *PointLight) SetRadius(radius float32) {
	l.radius = math32.Abs(radius)
}

// SpotLight emits a cone along the node's look vector, optionally masked by a
// cookie texture.
type SpotLight struct {
	BaseLight
	distance      float32
	hotspotAngle  float32
	falloffDelta  float32
	CookieTexture string // asset path, empty for none
}

func NewSpotLight() *SpotLight {
	return &SpotLight{
		BaseLight:    NewBaseLight(),
		distance:     10,
		hotspotAngle: math32.Pi / 2,
		falloffDelta: math32.Pi / 16,
	}
}

func (l *SpotLight) Kind() string { return "spot_light" }

func (l *SpotLight) Distance() float32 { return l.distance }
func (l *SpotLight) SetDistance(d float32) {
	l.distance = math32.Abs(d)
}

func (l *SpotLight) HotspotAngle() float32 { return l.hotspotAngle }
func (l *SpotLight) SetHotspotAngle(a float32) {
	l.hotspotAngle = math32.Abs(a)
}

func (l *SpotLight) FalloffDelta() float32 { return l.falloffDelta }
func (l *SpotLight) SetFalloffDelta(d float32) {
	l.falloffDelta = math32.Abs(d)
}

// RestoreResources re-requests the cookie texture after the light crossed a
// serialization boundary.
func (l *SpotLight) RestoreResources(env scripting.ResourceEnv) error {
	if l.CookieTexture == "" {
		return nil
	}
	return env.RequestResource(l.CookieTexture)
}

// CsmOptions configures cascaded shadow maps for directional lights.
type CsmOptions struct {
	SplitCount int
	PcfRadius  float32
}

// DirectionalLight models an infinitely distant emitter (sun).
type DirectionalLight struct {
	BaseLight
	Csm CsmOptions
}

func NewDirectionalLight() *DirectionalLight {
	return &DirectionalLight{
		BaseLight: NewBaseLight(),
		Csm:       CsmOptions{SplitCount: 3, PcfRadius: 1},
	}
}

func (l *DirectionalLight) Kind() string { return "directional_light" }
