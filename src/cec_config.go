package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	Load and save the responder configuration.
 *
 * Description:	The firmware kept this in non-volatile storage; here it
 *		is a YAML file.  The snapshot is read once before the
 *		responder task starts and is never written by it, so no
 *		locking is needed anywhere downstream.
 *
 *		Any load problem (missing file, bad YAML, out of range
 *		values) falls back to the built-in defaults so the
 *		bridge always comes up.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CEC device types, in allocation table row order.
const (
	CEC_DEVICE_TV        = 0
	CEC_DEVICE_RECORDING = 1
	CEC_DEVICE_RESERVED  = 2
	CEC_DEVICE_TUNER     = 3
	CEC_DEVICE_PLAYBACK  = 4
	CEC_DEVICE_AUDIO     = 5
)

var device_type_names = map[string]uint8{
	"tv":        CEC_DEVICE_TV,
	"recording": CEC_DEVICE_RECORDING,
	"reserved":  CEC_DEVICE_RESERVED,
	"tuner":     CEC_DEVICE_TUNER,
	"playback":  CEC_DEVICE_PLAYBACK,
	"audio":     CEC_DEVICE_AUDIO,
}

// Command is one keymap entry: the CEC name of the key and the USB HID
// usage code sent for it.  An empty Name means the code is unmapped.
type Command struct {
	Name string `yaml:"name"`
	Key  uint8  `yaml:"key"`
}

// CecConfig is the configuration snapshot.  Immutable once the
// responder task is running.
type CecConfig struct {
	// Device type selects the logical address allocation row.
	DeviceType uint8

	// Preferred logical address.  0x00 or 0x0f mean auto-allocate.
	LogicalAddress uint8

	// Preferred physical address.  0x0000 means ask the line driver
	// (EDID / DDC) instead.
	PhysicalAddress uint16

	// How long to wait for downstream EDID to settle before bus
	// bring-up, in milliseconds.
	EDIDDelayMS uint

	// UI Command code to keystroke table.
	Keymap [256]Command
}

// On-disk form.  The keymap holds overrides on top of the built-in
// defaults rather than all 256 entries.
type cec_config_file struct {
	DeviceType      string `yaml:"device_type"`
	LogicalAddress  uint8  `yaml:"logical_address"`
	PhysicalAddress uint16 `yaml:"physical_address"`
	EDIDDelayMS     uint   `yaml:"edid_delay_ms"`
	Keymap          []struct {
		Code int    `yaml:"code"`
		Name string `yaml:"name"`
		Key  uint8  `yaml:"key"`
	} `yaml:"keymap"`
}

var config_search_locations = []string{
	"corgi.yaml", // Current working directory
	"/etc/corgi/corgi.yaml",
	"/usr/local/etc/corgi.yaml",
}

// DefaultConfig returns the built-in configuration: auto-allocated
// playback device with the stock keymap.
func DefaultConfig() *CecConfig {
	return &CecConfig{
		DeviceType:      CEC_DEVICE_PLAYBACK,
		LogicalAddress:  0x00,
		PhysicalAddress: 0x0000,
		EDIDDelayMS:     5000,
		Keymap:          default_keymap(),
	}
}

/*------------------------------------------------------------------
 *
 * Name:	LoadConfig
 *
 * Purpose:	Populate the configuration snapshot from a YAML file.
 *
 * Inputs:	path - Configuration file name.  Empty means try the
 *		       usual locations in order.
 *
 * Returns:	A usable configuration in all cases.  The error says
 *		why the defaults (or partial defaults) were used.
 *
 *------------------------------------------------------------------*/

func LoadConfig(path string) (*CecConfig, error) {
	var config = DefaultConfig()

	var locations = []string{path}
	if path == "" {
		locations = config_search_locations
	}

	var data []byte
	var err error
	for _, location := range locations {
		data, err = os.ReadFile(location)
		if err == nil {
			break
		}
	}
	if data == nil {
		return config, fmt.Errorf("no configuration file found: %w", err)
	}

	var file cec_config_file
	if err := yaml.Unmarshal(data, &file); err != nil {
		return config, fmt.Errorf("configuration did not parse: %w", err)
	}

	if file.DeviceType != "" {
		dt, ok := device_type_names[file.DeviceType]
		if !ok {
			return config, fmt.Errorf("unknown device_type %q", file.DeviceType)
		}
		config.DeviceType = dt
	}
	if file.LogicalAddress <= 0x0f {
		config.LogicalAddress = file.LogicalAddress
	}
	config.PhysicalAddress = file.PhysicalAddress
	if file.EDIDDelayMS != 0 {
		config.EDIDDelayMS = file.EDIDDelayMS
	}

	for _, entry := range file.Keymap {
		if entry.Code < 0 || entry.Code > 0xff {
			return config, fmt.Errorf("keymap code 0x%x out of range", entry.Code)
		}
		var name = entry.Name
		if name == "" {
			name = cec_user_control_name[entry.Code]
		}
		config.Keymap[entry.Code] = Command{Name: name, Key: entry.Key}
	}

	return config, nil
}

/*------------------------------------------------------------------
 *
 * Name:	SaveConfig
 *
 * Purpose:	Write the configuration back out, keymap and all.
 *
 * Description:	Counterpart of the firmware's "save to NVS" path.  The
 *		whole keymap is emitted, not just overrides, so the
 *		result is self-describing.
 *
 *------------------------------------------------------------------*/

func SaveConfig(config *CecConfig, path string) error {
	var file cec_config_file

	for name, dt := range device_type_names {
		if dt == config.DeviceType {
			file.DeviceType = name
			break
		}
	}
	file.LogicalAddress = config.LogicalAddress
	file.PhysicalAddress = config.PhysicalAddress
	file.EDIDDelayMS = config.EDIDDelayMS

	for code, command := range config.Keymap {
		if command.Name == "" {
			continue
		}
		file.Keymap = append(file.Keymap, struct {
			Code int    `yaml:"code"`
			Name string `yaml:"name"`
			Key  uint8  `yaml:"key"`
		}{Code: code, Name: command.Name, Key: command.Key})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("configuration did not marshal: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
