package orbitcam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.yaml")

	config := DefaultControlsConfig()
	config.ZoomSpeed = 0.5
	config.EnableRoll = false
	config.ZoomKey = KeyPtr(KeyShift)
	require.NoError(t, config.Save(path))

	loaded, err := LoadControlsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(0.5), loaded.ZoomSpeed)
	assert.False(t, loaded.EnableRoll)
	require.NotNil(t, loaded.ZoomKey)
	assert.Equal(t, KeyShift, *loaded.ZoomKey)
	require.NotNil(t, loaded.RotateButton)
	assert.Equal(t, MouseButtonLeft, *loaded.RotateButton)
	require.NotNil(t, loaded.RollKeys)
	assert.Equal(t, [2]int{KeyQ, KeyE}, *loaded.RollKeys)
}

func TestLoadControlsConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pan_speed: 2.0\nrotate_button: none\n"), 0644))

	loaded, err := LoadControlsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(2.0), loaded.PanSpeed)
	assert.Nil(t, loaded.RotateButton)

	defaults := DefaultControlsConfig()
	assert.Equal(t, defaults.ZoomSpeed, loaded.ZoomSpeed)
	assert.Equal(t, defaults.ZoomSmoothness, loaded.ZoomSmoothness)
	assert.True(t, loaded.Enable)
	require.NotNil(t, loaded.PanButton)
	assert.Equal(t, MouseButtonRight, *loaded.PanButton)
}

func TestLoadControlsConfig_UnknownKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_such_setting: 42\n"), 0644))

	_, err := LoadControlsConfig(path)
	assert.NoError(t, err)
}

func TestLoadControlsConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadControlsConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badKey := filepath.Join(dir, "badkey.yaml")
	require.NoError(t, os.WriteFile(badKey, []byte("pan_button: mouse4\n"), 0644))
	_, err = LoadControlsConfig(badKey)
	assert.ErrorContains(t, err, "pan_button")

	badRoll := filepath.Join(dir, "badroll.yaml")
	require.NoError(t, os.WriteFile(badRoll, []byte("roll_keys: [q]\n"), 0644))
	_, err = LoadControlsConfig(badRoll)
	assert.ErrorContains(t, err, "roll_keys")
}
