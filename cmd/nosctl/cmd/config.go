package cmd

import (
	"os"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PasswordEnv overrides the device password when set.
const PasswordEnv = "NOS_PASSWORD"

// DeviceConfig describes how to reach a device.
type DeviceConfig struct {
	Address  string        `yaml:"address"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
	// Target is the datastore written by edits, running or candidate.
	Target string `yaml:"target"`
	// Commit commits the target datastore after each edit.
	Commit bool `yaml:"commit"`
}

var defaultDeviceConfig = DeviceConfig{
	Timeout: 30 * time.Second,
	Target:  "running",
}

// loadDeviceConfig reads the device file at path.
func loadDeviceConfig(path string) (*DeviceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read device file")
	}
	cfg := &DeviceConfig{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse device file %s", path)
	}
	return cfg, nil
}

// resolveDeviceConfig completes flag values from the device file and defaults, then applies the environment.
func resolveDeviceConfig(flags DeviceConfig, path string) (*DeviceConfig, error) {
	resolved := flags
	if path != "" {
		file, err := loadDeviceConfig(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&resolved, file); err != nil {
			return nil, errors.Wrap(err, "failed to merge device file")
		}
	}
	if err := mergo.Merge(&resolved, defaultDeviceConfig); err != nil {
		return nil, errors.Wrap(err, "failed to apply defaults")
	}
	if password, ok := os.LookupEnv(PasswordEnv); ok {
		resolved.Password = password
	}
	if resolved.Address == "" {
		return nil, errors.New("device address is required")
	}
	return &resolved, nil
}
