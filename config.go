package orbitcam

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// controlsConfigFile is the on-disk form of OrbitControlsConfig.
// Triggers are key names ("mouse_left", "q", ...) instead of key
// codes; "none" disables a trigger, making that control always active.
type controlsConfigFile struct {
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	RotationSpeed float32 `yaml:"rotation_speed"`
	PanSpeed      float32 `yaml:"pan_speed"`
	RollSpeed     float32 `yaml:"roll_speed"`

	Enable         bool `yaml:"enable"`
	EnableZoom     bool `yaml:"enable_zoom"`
	EnableRotation bool `yaml:"enable_rotation"`
	EnablePan      bool `yaml:"enable_pan"`
	EnableRoll     bool `yaml:"enable_roll"`

	ZoomSmoothness float32 `yaml:"zoom_smoothness"`

	RotateButton string   `yaml:"rotate_button"`
	ZoomKey      string   `yaml:"zoom_key"`
	PanButton    string   `yaml:"pan_button"`
	RollKeys     []string `yaml:"roll_keys"`
}

// LoadControlsConfig reads a YAML controls file. Keys missing from the
// file keep their default values; unknown keys are ignored.
func LoadControlsConfig(path string) (*OrbitControlsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read controls config: %w", err)
	}

	file := fileFromConfig(DefaultControlsConfig())
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse controls config %s: %w", path, err)
	}

	return configFromFile(file)
}

// Save writes the config as YAML.
func (config *OrbitControlsConfig) Save(path string) error {
	data, err := yaml.Marshal(fileFromConfig(config))
	if err != nil {
		return fmt.Errorf("encode controls config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write controls config: %w", err)
	}
	return nil
}

func fileFromConfig(config *OrbitControlsConfig) controlsConfigFile {
	file := controlsConfigFile{
		ZoomSpeed:      config.ZoomSpeed,
		RotationSpeed:  config.RotationSpeed,
		PanSpeed:       config.PanSpeed,
		RollSpeed:      config.RollSpeed,
		Enable:         config.Enable,
		EnableZoom:     config.EnableZoom,
		EnableRotation: config.EnableRotation,
		EnablePan:      config.EnablePan,
		EnableRoll:     config.EnableRoll,
		ZoomSmoothness: config.ZoomSmoothness,
		RotateButton:   keyName(config.RotateButton),
		ZoomKey:        keyName(config.ZoomKey),
		PanButton:      keyName(config.PanButton),
	}
	if config.RollKeys != nil {
		file.RollKeys = []string{keyName(&config.RollKeys[0]), keyName(&config.RollKeys[1])}
	}
	return file
}

func configFromFile(file controlsConfigFile) (*OrbitControlsConfig, error) {
	config := &OrbitControlsConfig{
		ZoomSpeed:      file.ZoomSpeed,
		RotationSpeed:  file.RotationSpeed,
		PanSpeed:       file.PanSpeed,
		RollSpeed:      file.RollSpeed,
		Enable:         file.Enable,
		EnableZoom:     file.EnableZoom,
		EnableRotation: file.EnableRotation,
		EnablePan:      file.EnablePan,
		EnableRoll:     file.EnableRoll,
		ZoomSmoothness: file.ZoomSmoothness,
	}

	var err error
	if config.RotateButton, err = parseKeyName(file.RotateButton); err != nil {
		return nil, fmt.Errorf("rotate_button: %w", err)
	}
	if config.ZoomKey, err = parseKeyName(file.ZoomKey); err != nil {
		return nil, fmt.Errorf("zoom_key: %w", err)
	}
	if config.PanButton, err = parseKeyName(file.PanButton); err != nil {
		return nil, fmt.Errorf("pan_button: %w", err)
	}

	switch len(file.RollKeys) {
	case 0:
	case 2:
		first, err := parseKeyName(file.RollKeys[0])
		if err != nil {
			return nil, fmt.Errorf("roll_keys: %w", err)
		}
		second, err := parseKeyName(file.RollKeys[1])
		if err != nil {
			return nil, fmt.Errorf("roll_keys: %w", err)
		}
		if first == nil || second == nil {
			return nil, fmt.Errorf("roll_keys: %q may not contain \"none\"", file.RollKeys)
		}
		config.RollKeys = &[2]int{*first, *second}
	default:
		return nil, fmt.Errorf("roll_keys: expected exactly two keys, got %d", len(file.RollKeys))
	}

	return config, nil
}

var keyByName = map[string]int{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,
	"space":        KeySpace,
	"enter":        KeyEnter,
	"escape":       KeyEscape,
	"tab":          KeyTab,
	"right":        KeyRight,
	"left":         KeyLeft,
	"down":         KeyDown,
	"up":           KeyUp,
	"shift":        KeyShift,
	"control":      KeyControl,
	"alt":          KeyLeftAlt,
	"mouse_left":   MouseButtonLeft,
	"mouse_right":  MouseButtonRight,
	"mouse_middle": MouseButtonMiddle,
}

var nameByKey = func() map[int]string {
	res := make(map[int]string, len(keyByName))
	for name, key := range keyByName {
		res[key] = name
	}
	return res
}()

func parseKeyName(name string) (*int, error) {
	if name == "" || name == "none" {
		return nil, nil
	}
	if key, ok := keyByName[name]; ok {
		return KeyPtr(key), nil
	}
	return nil, fmt.Errorf("unknown key name %q", name)
}

func keyName(key *int) string {
	if key == nil {
		return "none"
	}
	if name, ok := nameByKey[*key]; ok {
		return name
	}
	return "none"
}
