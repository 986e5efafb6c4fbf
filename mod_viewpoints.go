package orbitcam

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Viewpoint is a named, saved camera pose. Orientation is stored as
// yaw/pitch so a loaded viewpoint is always upright; roll never
// survives a save.
type Viewpoint struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	Focus      mgl32.Vec3 `json:"focus"`
	Radius     float32    `json:"radius"`
	Yaw        float32    `json:"yaw"`
	Pitch      float32    `json:"pitch"`
	LockUpAxis bool       `json:"lock_up_axis"`
}

type ViewpointSet struct {
	Viewpoints []Viewpoint `json:"viewpoints"`
}

// CaptureViewpoint snapshots the camera's current pose under a name.
func CaptureViewpoint(name string, cam *OrbitCameraComponent, tr *TransformComponent) Viewpoint {
	yaw, pitch, _ := yawPitchRollFromQuat(tr.Rotation)
	return Viewpoint{
		Id:         uuid.NewString(),
		Name:       name,
		Focus:      cam.Focus,
		Radius:     cam.Radius,
		Yaw:        yaw,
		Pitch:      pitch,
		LockUpAxis: cam.LockUpAxis,
	}
}

// Apply restores the pose onto a camera and resolves it immediately,
// discarding whatever deltas were pending.
func (v Viewpoint) Apply(cam *OrbitCameraComponent, tr *TransformComponent, projection *ProjectionComponent) {
	cam.Focus = v.Focus
	cam.Radius = v.Radius
	cam.LockUpAxis = v.LockUpAxis
	cam.ResetDeltas()
	tr.Rotation = quatFromYawPitchRoll(v.Yaw, v.Pitch, 0)
	cam.UpdateTransform(tr, projection)
}

// Find returns the first viewpoint with the given name.
func (s ViewpointSet) Find(name string) (Viewpoint, bool) {
	for _, v := range s.Viewpoints {
		if v.Name == name {
			return v, true
		}
	}
	return Viewpoint{}, false
}

func SaveViewpoints(filename string, s ViewpointSet) error {
	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode viewpoints: %w", err)
	}
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		return fmt.Errorf("write viewpoints: %w", err)
	}
	return nil
}

// ViewpointsModule registers a *ViewpointSet resource, seeded from
// Path when one is given. A missing or broken file is logged and the
// set starts empty.
type ViewpointsModule struct {
	Path string
}

func (m ViewpointsModule) Install(app *App, cmd *Commands) {
	set := &ViewpointSet{}
	if m.Path != "" {
		loaded, err := LoadViewpoints(m.Path)
		if err != nil {
			app.Logger().Warnf("viewpoints %s: %v, starting empty", m.Path, err)
		} else {
			app.Logger().Infof("loaded %d viewpoints from %s", len(loaded.Viewpoints), m.Path)
			*set = loaded
		}
	}
	cmd.AddResources(set)
}

func LoadViewpoints(filename string) (ViewpointSet, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return ViewpointSet{}, fmt.Errorf("read viewpoints: %w", err)
	}
	var s ViewpointSet
	if err := json.Unmarshal(bytes, &s); err != nil {
		return ViewpointSet{}, fmt.Errorf("parse viewpoints %s: %w", filename, err)
	}
	return s, nil
}
