package orbitcam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCameraComponent orbits a camera around a focus point. Mutators
// only accumulate deltas; UpdateTransform consumes them once per frame.
type OrbitCameraComponent struct {
	// Focus is the world-space point the camera orbits and looks at.
	Focus mgl32.Vec3
	// Radius is the distance from the focus to the camera.
	Radius float32

	// Pending rotation deltas in radians, applied on the next resolve.
	DeltaYaw   float32
	DeltaPitch float32
	DeltaRoll  float32
	// Pending pan in the camera's local XY plane.
	Pan mgl32.Vec2

	// Optional inclusive radius bounds. Nil means unbounded.
	RadiusMin *float32
	RadiusMax *float32

	// LockUpAxis keeps the camera's up axis aligned with world up:
	// pitch is clamped at straight up/down and roll decays to zero.
	LockUpAxis bool
}

func NewOrbitCamera(focus mgl32.Vec3, radius float32) OrbitCameraComponent {
	return OrbitCameraComponent{
		Focus:  focus,
		Radius: radius,
	}
}

func (cam OrbitCameraComponent) WithOrbit(deltaYaw, deltaPitch, deltaRoll float32) OrbitCameraComponent {
	cam.Orbit(deltaYaw, deltaPitch, deltaRoll)
	return cam
}

func (cam OrbitCameraComponent) WithRadius(radius float32) OrbitCameraComponent {
	cam.Radius = radius
	return cam
}

func (cam OrbitCameraComponent) WithFocus(focus mgl32.Vec3) OrbitCameraComponent {
	cam.Focus = focus
	return cam
}

func (cam OrbitCameraComponent) WithRadiusLimit(min, max *float32) OrbitCameraComponent {
	cam.RadiusMin = min
	cam.RadiusMax = max
	return cam
}

// Zoom scales the radius and clamps it into the radius limit.
// The factor must be positive; callers guarantee that.
func (cam *OrbitCameraComponent) Zoom(factor float32) {
	cam.Radius *= factor
	if cam.RadiusMin != nil && cam.Radius < *cam.RadiusMin {
		cam.Radius = *cam.RadiusMin
	}
	if cam.RadiusMax != nil && cam.Radius > *cam.RadiusMax {
		cam.Radius = *cam.RadiusMax
	}
}

// PanBy accumulates a local-space pan delta.
func (cam *OrbitCameraComponent) PanBy(delta mgl32.Vec2) {
	cam.Pan = cam.Pan.Add(delta)
}

// Orbit accumulates rotation deltas. Any component may be zero.
func (cam *OrbitCameraComponent) Orbit(deltaYaw, deltaPitch, deltaRoll float32) {
	cam.DeltaYaw += deltaYaw
	cam.DeltaPitch += deltaPitch
	cam.DeltaRoll += deltaRoll
}

func (cam *OrbitCameraComponent) Yaw(delta float32) {
	cam.DeltaYaw += delta
}

func (cam *OrbitCameraComponent) Pitch(delta float32) {
	cam.DeltaPitch += delta
}

func (cam *OrbitCameraComponent) Roll(delta float32) {
	cam.DeltaRoll += delta
}

// ResetDeltas zeroes all pending deltas. Called by UpdateTransform
// after it has consumed them; translators never call this.
func (cam *OrbitCameraComponent) ResetDeltas() {
	cam.DeltaYaw = 0
	cam.DeltaPitch = 0
	cam.DeltaRoll = 0
	cam.Pan = mgl32.Vec2{}
}

// rollDamping is the per-frame decay applied to residual roll while
// the up axis is locked.
const rollDamping = 0.6

// UpdateTransform folds the pending deltas and the previous transform
// into a new transform, then clears the deltas. Step order matters:
// pan uses the pre-update orientation, the final position uses the
// post-update one.
func (cam *OrbitCameraComponent) UpdateTransform(tr *TransformComponent, projection *ProjectionComponent) {
	var distance float32
	if projection.Kind == Orthographic {
		projection.Scale = cam.Radius
		distance = (projection.Far + projection.Near) / 2
	} else {
		distance = cam.Radius
	}

	cam.Focus = cam.Focus.Add(tr.Rotation.Rotate(mgl32.Vec3{cam.Pan.X(), cam.Pan.Y(), 0}))

	if cam.LockUpAxis {
		yaw, pitch, roll := yawPitchRollFromQuat(tr.Rotation)
		// Clamping at straight up/down keeps yaw from inverting when
		// the camera would flip over the pole.
		pitch = mgl32.Clamp(pitch-cam.DeltaPitch, -math.Pi/2, math.Pi/2)
		yaw += cam.DeltaYaw
		// Roll input is discarded while locked; residual roll decays.
		roll = rollDamping * float32(math.Mod(float64(roll), 2*math.Pi))
		tr.Rotation = quatFromYawPitchRoll(yaw, pitch, roll)
	} else {
		tr.RotateAxis(tr.LocalX(), -cam.DeltaPitch)
		tr.RotateAxis(tr.LocalY(), cam.DeltaYaw)
		tr.RotateAxis(tr.LocalZ(), cam.DeltaRoll)
	}

	cam.ResetDeltas()
	tr.Position = cam.Focus.Add(tr.Rotation.Rotate(mgl32.Vec3{0, 0, distance}))
}

// OrbitCameraModule installs the transform resolver. It runs in
// PostUpdate by default so every translator has accumulated its deltas
// first; set Stage to override.
type OrbitCameraModule struct {
	Stage Stage
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	stage := m.Stage
	if stage.Name == "" {
		stage = PostUpdate
	}
	app.UseSystem(System(orbitCameraSystem).InStage(stage))
}

func orbitCameraSystem(cmd *Commands) {
	MakeQuery3[OrbitCameraComponent, TransformComponent, ProjectionComponent](cmd).
		Map(func(eid EntityId, cam *OrbitCameraComponent, tr *TransformComponent, proj *ProjectionComponent) bool {
			cam.UpdateTransform(tr, proj)
			return true
		})
}
