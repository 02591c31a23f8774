package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is the local transform of a node, decomposed the same way the
// matrix is built: pre/post rotations plus rotation and scaling offset/pivot
// pairs around the primary position/rotation/scale.
type Transform struct {
	position       mgl32.Vec3
	scale          mgl32.Vec3
	rotation       mgl32.Quat
	preRotation    mgl32.Quat
	postRotation   mgl32.Quat
	rotationOffset mgl32.Vec3
	rotationPivot  mgl32.Vec3
	scalingOffset  mgl32.Vec3
	scalingPivot   mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		scale:        mgl32.Vec3{1, 1, 1},
		rotation:     mgl32.QuatIdent(),
		preRotation:  mgl32.QuatIdent(),
		postRotation: mgl32.QuatIdent(),
	}
}

func (t *Transform) Position() mgl32.Vec3 { return t.position }
func (t *Transform) Scale() mgl32.Vec3    { return t.scale }
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

func (t *Transform) SetPosition(p mgl32.Vec3) { t.position = p }
func (t *Transform) SetScale(s mgl32.Vec3)    { t.scale = s }
func (t *Transform) SetRotation(q mgl32.Quat) { t.rotation = q }

func (t *Transform) PreRotation() mgl32.Quat    { return t.preRotation }
func (t *Transform) PostRotation() mgl32.Quat   { return t.postRotation }
func (t *Transform) RotationOffset() mgl32.Vec3 { return t.rotationOffset }
func (t *Transform) RotationPivot() mgl32.Vec3  { return t.rotationPivot }
func (t *Transform) ScalingOffset() mgl32.Vec3  { return t.scalingOffset }
func (t *Transform) ScalingPivot() mgl32.Vec3   { return t.scalingPivot }

func (t *Transform) SetPreRotation(q mgl32.Quat)    { t.preRotation = q }
func (t *Transform) SetPostRotation(q mgl32.Quat)   { t.postRotation = q }
func (t *Transform) SetRotationOffset(v mgl32.Vec3) { t.rotationOffset = v }
func (t *Transform) SetRotationPivot(v mgl32.Vec3)  { t.rotationPivot = v }
func (t *Transform) SetScalingOffset(v mgl32.Vec3)  { t.scalingOffset = v }
func (t *Transform) SetScalingPivot(v mgl32.Vec3)   { t.scalingPivot = v }

// Matrix composes the full local matrix:
// T * Roff * Rp * Rpre * R * Rpost^-1 * Rp^-1 * Soff * Sp * S * Sp^-1
func (t *Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	m = m.Mul4(translation(t.rotationOffset))
	m = m.Mul4(translation(t.rotationPivot))
	m = m.Mul4(t.preRotation.Mat4())
	m = m.Mul4(t.rotation.Mat4())
	m = m.Mul4(t.postRotation.Inverse().Mat4())
	m = m.Mul4(translation(t.rotationPivot.Mul(-1)))
	m = m.Mul4(translation(t.scalingOffset))
	m = m.Mul4(translation(t.scalingPivot))
	m = m.Mul4(mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z()))
	m = m.Mul4(translation(t.scalingPivot.Mul(-1)))
	return m
}

func translation(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v.X(), v.Y(), v.Z())
}
