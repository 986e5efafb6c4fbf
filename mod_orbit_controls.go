package orbitcam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControlsConfig tunes the mouse/keyboard translators. Speeds and
// flags are a permissive tuning surface; nothing here is validated.
// Trigger fields are optional: nil means always active.
type OrbitControlsConfig struct {
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	RotationSpeed float32 `yaml:"rotation_speed"`
	PanSpeed      float32 `yaml:"pan_speed"`
	RollSpeed     float32 `yaml:"roll_speed"`

	Enable         bool `yaml:"enable"`
	EnableZoom     bool `yaml:"enable_zoom"`
	EnableRotation bool `yaml:"enable_rotation"`
	EnablePan      bool `yaml:"enable_pan"`
	EnableRoll     bool `yaml:"enable_roll"`

	// ZoomSmoothness in [0,1); higher values make the visible zoom lag
	// the scroll input more.
	ZoomSmoothness float32 `yaml:"zoom_smoothness"`

	RotateButton *int    `yaml:"-"`
	ZoomKey      *int    `yaml:"-"`
	PanButton    *int    `yaml:"-"`
	RollKeys     *[2]int `yaml:"-"`
}

func DefaultControlsConfig() *OrbitControlsConfig {
	return &OrbitControlsConfig{
		ZoomSpeed:     0.2,
		RotationSpeed: math.Pi,
		PanSpeed:      1.0,
		RollSpeed:     math.Pi,

		Enable:         true,
		EnableZoom:     true,
		EnableRotation: true,
		EnablePan:      true,
		EnableRoll:     true,

		ZoomSmoothness: 0.75,

		RotateButton: KeyPtr(MouseButtonLeft),
		PanButton:    KeyPtr(MouseButtonRight),
		RollKeys:     &[2]int{KeyQ, KeyE},
	}
}

func KeyPtr(key int) *int {
	return &key
}

// TargetZoomComponent carries the smoothed-zoom accumulator. Cameras
// without it zoom unsmoothed.
type TargetZoomComponent struct {
	Target float32
}

// pixelScrollScale converts smooth pixel-unit scrolling into roughly
// line-sized steps.
const pixelScrollScale = 0.005

// OrbitControlsModule wires the zoom, rotation, pan and roll
// translators into the Update stage. Filter selects which orbit
// cameras the translators touch; nil means all of them. ConfigPath,
// when set, loads the config from a YAML file and takes precedence
// over Config.
type OrbitControlsModule struct {
	Config     *OrbitControlsConfig
	ConfigPath string
	Filter     func(EntityId) bool
}

func (m OrbitControlsModule) Install(app *App, cmd *Commands) {
	config := m.Config
	if m.ConfigPath != "" {
		loaded, err := LoadControlsConfig(m.ConfigPath)
		if err != nil {
			app.Logger().Errorf("controls config %s: %v, falling back to defaults", m.ConfigPath, err)
		} else {
			app.Logger().Infof("loaded controls config from %s", m.ConfigPath)
			config = loaded
		}
	}
	if config == nil {
		config = DefaultControlsConfig()
	}
	cmd.AddResources(config)

	filter := m.Filter
	if filter == nil {
		filter = func(EntityId) bool { return true }
	}

	app.UseSystem(
		System(func(config *OrbitControlsConfig, cmd *Commands) {
			targetZoomInitSystem(config, cmd, filter)
		}).InStage(PreUpdate),
	)
	app.UseSystem(
		System(func(config *OrbitControlsConfig, input *Input, cmd *Commands) {
			zoomControlSystem(config, input, cmd, filter)
		}).InStage(Update),
	)
	app.UseSystem(
		System(func(config *OrbitControlsConfig, input *Input, cmd *Commands) {
			rotationControlSystem(config, input, cmd, filter)
		}).InStage(Update),
	)
	app.UseSystem(
		System(func(config *OrbitControlsConfig, input *Input, cmd *Commands) {
			panControlSystem(config, input, cmd, filter)
		}).InStage(Update),
	)
	app.UseSystem(
		System(func(config *OrbitControlsConfig, input *Input, time *Time, cmd *Commands) {
			rollControlSystem(config, input, time, cmd, filter)
		}).InStage(Update),
	)
}

// targetZoomInitSystem attaches the smoothing accumulator to orbit
// cameras that don't carry one yet. While zoom is disabled nothing is
// attached; the zoom translator drops stale accumulators.
func targetZoomInitSystem(config *OrbitControlsConfig, cmd *Commands, filter func(EntityId) bool) {
	if !config.Enable || !config.EnableZoom {
		return
	}
	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, cam *OrbitCameraComponent) bool {
		if !filter(eid) {
			return true
		}
		if _, ok := cmd.app.world.get(eid, typeOf[TargetZoomComponent]()); !ok {
			cmd.AddComponents(eid, &TargetZoomComponent{Target: 1})
		}
		return true
	})
}

func zoomControlSystem(config *OrbitControlsConfig, input *Input, cmd *Commands, filter func(EntityId) bool) {
	if !config.Enable || !config.EnableZoom {
		input.DrainScroll()
		// Drop the accumulator so re-enabling starts from a clean target.
		MakeQuery2[OrbitCameraComponent, TargetZoomComponent](cmd).
			Map(func(eid EntityId, cam *OrbitCameraComponent, tz *TargetZoomComponent) bool {
				cmd.RemoveComponents(eid, TargetZoomComponent{})
				return true
			})
		return
	}
	if config.ZoomKey != nil && !input.Pressed[*config.ZoomKey] {
		input.DrainScroll()
	}

	zoomFactor := float32(1)
	for _, event := range input.Scroll {
		value := event.Y
		if event.Unit == ScrollPixel {
			value *= pixelScrollScale
		}
		zoomFactor *= 1 - value*config.ZoomSpeed
	}
	input.DrainScroll()

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, cam *OrbitCameraComponent) bool {
		if !filter(eid) {
			return true
		}
		factor := zoomFactor
		if tz, ok := cmd.app.world.get(eid, typeOf[TargetZoomComponent]()); ok {
			// The target accumulates raw input; only its fractional
			// remaining step is applied each frame, and the target is
			// divided back down so it cannot run away.
			target := tz.(*TargetZoomComponent)
			target.Target *= zoomFactor
			factor = lerp(1, target.Target, 1-config.ZoomSmoothness)
			target.Target /= factor
		}
		cam.Zoom(factor)
		return true
	})
}

func rotationControlSystem(config *OrbitControlsConfig, input *Input, cmd *Commands, filter func(EntityId) bool) {
	if !config.Enable || !config.EnableRotation {
		return
	}
	if config.RotateButton != nil && !input.Pressed[*config.RotateButton] {
		return
	}

	deltaAngle := mgl32.Vec2{float32(-input.MouseDeltaX), float32(input.MouseDeltaY)}

	MakeQuery2[OrbitCameraComponent, ViewportComponent](cmd).Map(func(eid EntityId, cam *OrbitCameraComponent, vp *ViewportComponent) bool {
		if !filter(eid) || !vp.Sized() {
			return true
		}
		minSize := float32(min(vp.Width, vp.Height))
		delta := deltaAngle.Mul(config.RotationSpeed / minSize)
		cam.Orbit(delta.X(), delta.Y(), 0)
		return true
	})
}

func panControlSystem(config *OrbitControlsConfig, input *Input, cmd *Commands, filter func(EntityId) bool) {
	if !config.Enable || !config.EnablePan {
		return
	}
	if config.PanButton != nil && !input.Pressed[*config.PanButton] {
		return
	}

	motion := mgl32.Vec2{float32(-input.MouseDeltaX), float32(input.MouseDeltaY)}

	MakeQuery3[OrbitCameraComponent, ViewportComponent, ProjectionComponent](cmd).
		Map(func(eid EntityId, cam *OrbitCameraComponent, vp *ViewportComponent, proj *ProjectionComponent) bool {
			if !filter(eid) {
				return true
			}
			factor, ok := PanScalingFactor(*vp, proj, cam.Radius)
			if !ok {
				return true
			}
			cam.PanBy(mgl32.Vec2{
				config.PanSpeed * factor.X() * motion.X(),
				config.PanSpeed * factor.Y() * motion.Y(),
			})
			return true
		})
}

// rollControlSystem is time-based rather than event-based: the roll
// angle grows while a roll key is held. Both keys held cancel out.
func rollControlSystem(config *OrbitControlsConfig, input *Input, time *Time, cmd *Commands, filter func(EntityId) bool) {
	if !config.Enable || !config.EnableRoll {
		return
	}
	if config.RollKeys == nil {
		return
	}

	var angle float32
	dt := float32(time.Dt.Seconds())
	if input.Pressed[config.RollKeys[0]] {
		angle += config.RollSpeed * dt
	}
	if input.Pressed[config.RollKeys[1]] {
		angle -= config.RollSpeed * dt
	}

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, cam *OrbitCameraComponent) bool {
		if !filter(eid) {
			return true
		}
		cam.Roll(angle)
		return true
	})
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
