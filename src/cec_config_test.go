package corgi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	var config = DefaultConfig()

	assert.Equal(t, uint8(CEC_DEVICE_PLAYBACK), config.DeviceType)
	assert.Equal(t, uint8(0x00), config.LogicalAddress, "Auto-allocate by default")
	assert.Equal(t, uint16(0x0000), config.PhysicalAddress, "From EDID by default")
	assert.NotZero(t, config.EDIDDelayMS)
	assert.Equal(t, "Volume Up", config.Keymap[0x41].Name)
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
	require.NotNil(t, config, "Errors still yield a usable configuration")
	assert.Equal(t, uint8(CEC_DEVICE_PLAYBACK), config.DeviceType)
}

func TestLoadConfigBadYAML(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "corgi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml {"), 0o644))

	config, err := LoadConfig(path)

	assert.Error(t, err)
	require.NotNil(t, config)
	assert.Equal(t, uint8(0x00), config.LogicalAddress)
}

func TestLoadConfig(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "corgi.yaml")
	var text = `
device_type: tuner
logical_address: 0x07
physical_address: 0x2200
edid_delay_ms: 250
keymap:
  - code: 0x41
    key: 0x52
  - code: 0x76
    name: "Data"
    key: 0x04
`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint8(CEC_DEVICE_TUNER), config.DeviceType)
	assert.Equal(t, uint8(0x07), config.LogicalAddress)
	assert.Equal(t, uint16(0x2200), config.PhysicalAddress)
	assert.Equal(t, uint(250), config.EDIDDelayMS)

	assert.Equal(t, uint8(0x52), config.Keymap[0x41].Key, "Override replaces the default keystroke")
	assert.Equal(t, "Volume Up", config.Keymap[0x41].Name, "The CEC name survives a keystroke override")
	assert.Equal(t, uint8(0x04), config.Keymap[0x76].Key, "Unmapped codes can be given a keystroke")

	assert.Equal(t, uint8(HID_KEY_MUTE), config.Keymap[0x43].Key, "Untouched defaults remain")
}

func TestLoadConfigUnknownDeviceType(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "corgi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device_type: toaster\n"), 0o644))

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Equal(t, uint8(CEC_DEVICE_PLAYBACK), config.DeviceType)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "corgi.yaml")

	var config = DefaultConfig()
	config.DeviceType = CEC_DEVICE_RECORDING
	config.LogicalAddress = 0x09
	config.PhysicalAddress = 0x1200
	config.Keymap[0x41] = Command{Name: "Volume Up", Key: 0x52}

	require.NoError(t, SaveConfig(config, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.DeviceType, loaded.DeviceType)
	assert.Equal(t, config.LogicalAddress, loaded.LogicalAddress)
	assert.Equal(t, config.PhysicalAddress, loaded.PhysicalAddress)
	assert.Equal(t, config.Keymap, loaded.Keymap)
}
