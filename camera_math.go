package orbitcam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent is the spatial state the resolver reads and writes.
// Rotation is a unit quaternion; the camera looks down its local -Z.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform() TransformComponent {
	return TransformComponent{
		Position: mgl32.Vec3{},
		Rotation: mgl32.QuatIdent(),
	}
}

func (tr *TransformComponent) LocalX() mgl32.Vec3 {
	return tr.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

func (tr *TransformComponent) LocalY() mgl32.Vec3 {
	return tr.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (tr *TransformComponent) LocalZ() mgl32.Vec3 {
	return tr.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

func (tr *TransformComponent) Forward() mgl32.Vec3 {
	return tr.LocalZ().Mul(-1)
}

// RotateAxis rotates the transform about a world-space axis.
func (tr *TransformComponent) RotateAxis(axis mgl32.Vec3, angle float32) {
	tr.Rotation = mgl32.QuatRotate(angle, axis).Mul(tr.Rotation).Normalize()
}

type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

// ProjectionComponent is a tagged variant. Perspective uses Fov and
// AspectRatio; Orthographic uses Near, Far, Scale and the visible Area.
// The orbit camera resolver writes Scale for orthographic projections.
type ProjectionComponent struct {
	Kind ProjectionKind

	Fov         float32 // vertical field of view, radians
	AspectRatio float32

	Near       float32
	Far        float32
	Scale      float32
	AreaWidth  float32
	AreaHeight float32
}

func NewPerspectiveProjection(fov, aspectRatio float32) ProjectionComponent {
	return ProjectionComponent{
		Kind:        Perspective,
		Fov:         fov,
		AspectRatio: aspectRatio,
	}
}

func NewOrthographicProjection(near, far, areaWidth, areaHeight float32) ProjectionComponent {
	return ProjectionComponent{
		Kind:       Orthographic,
		Near:       near,
		Far:        far,
		Scale:      1,
		AreaWidth:  areaWidth,
		AreaHeight: areaHeight,
	}
}

// ViewportComponent is the camera's render-target size in physical
// pixels. A zero size means the camera is not rendering to a sized
// target yet; translators that need it skip that frame.
type ViewportComponent struct {
	Width  uint32
	Height uint32
}

func (vp ViewportComponent) Sized() bool {
	return vp.Width > 0 && vp.Height > 0
}

// PanScalingFactor converts pointer-motion pixels into world-space pan
// units so panning feels the same at any zoom level or projection.
// Returns false when the viewport size is unavailable.
func PanScalingFactor(viewport ViewportComponent, projection *ProjectionComponent, radius float32) (mgl32.Vec2, bool) {
	if !viewport.Sized() {
		return mgl32.Vec2{}, false
	}
	w := float32(viewport.Width)
	h := float32(viewport.Height)

	switch projection.Kind {
	case Orthographic:
		return mgl32.Vec2{projection.AreaWidth / w, projection.AreaHeight / h}, true
	default:
		return mgl32.Vec2{
			radius * projection.Fov * projection.AspectRatio / w,
			radius * projection.Fov / h,
		}, true
	}
}

// RotationFromDirection builds the rotation that looks along direction
// with the given up hint. Degenerate inputs fall back to -Z forward and
// +Y up instead of failing.
func RotationFromDirection(direction, up mgl32.Vec3) mgl32.Quat {
	back := tryNormalize(direction, mgl32.Vec3{0, 0, -1}).Mul(-1)
	upN := tryNormalize(up, mgl32.Vec3{0, 1, 0})

	right := upN.Cross(back)
	if right.Len() < 1e-6 {
		right = anyOrthonormal(upN)
	} else {
		right = right.Normalize()
	}
	upN = back.Cross(right)

	m := mgl32.Mat3{
		right[0], right[1], right[2],
		upN[0], upN[1], upN[2],
		back[0], back[1], back[2],
	}
	return mgl32.Mat4ToQuat(m.Mat4())
}

func tryNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}

func anyOrthonormal(v mgl32.Vec3) mgl32.Vec3 {
	other := mgl32.Vec3{1, 0, 0}
	if mgl32.Abs(v[0]) > 0.9 {
		other = mgl32.Vec3{0, 0, 1}
	}
	return v.Cross(other).Normalize()
}

// quatFromYawPitchRoll composes q = Qy(yaw) * Qx(pitch) * Qz(roll),
// the YXZ convention the up-axis lock decomposes with.
func quatFromYawPitchRoll(yaw, pitch, roll float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})).
		Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1}))
}

// yawPitchRollFromQuat inverts quatFromYawPitchRoll. Derived from the
// rotated basis vectors: the rotated Z column carries yaw and pitch,
// the rotated X/Y columns carry roll. Near the gimbal poles roll is
// folded into yaw.
func yawPitchRollFromQuat(q mgl32.Quat) (yaw, pitch, roll float32) {
	x := q.Rotate(mgl32.Vec3{1, 0, 0})
	y := q.Rotate(mgl32.Vec3{0, 1, 0})
	z := q.Rotate(mgl32.Vec3{0, 0, 1})

	sinPitch := mgl32.Clamp(-z.Y(), -1, 1)
	pitch = float32(math.Asin(float64(sinPitch)))

	if mgl32.Abs(sinPitch) > 0.99999 {
		// Looking straight up or down: yaw and roll share an axis.
		yaw = float32(math.Atan2(float64(-x.Z()), float64(x.X())))
		roll = 0
		return
	}

	yaw = float32(math.Atan2(float64(z.X()), float64(z.Z())))
	roll = float32(math.Atan2(float64(x.Y()), float64(y.Y())))
	return
}
