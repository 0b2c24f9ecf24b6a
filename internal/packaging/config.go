// Package packaging installs a systemd unit file and activates it through the
// service manager.
package packaging

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Service manager backends.
const (
	ManagerSystemctl = "systemctl"
	ManagerDBus      = "dbus"
)

// DefaultSource is the unit file installed when none is configured.
const DefaultSource = "target_selector.service"

// DefaultUnitDir is the system unit directory.
const DefaultUnitDir = "/etc/systemd/system"

// DefaultManager is the default service manager backend.
const DefaultManager = ManagerSystemctl

// DefaultSystemctlPath is the systemctl binary, resolved through PATH.
const DefaultSystemctlPath = "systemctl"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultConfigPath is where the CLI looks for an optional config file.
const DefaultConfigPath = "/etc/unitinstall/config.yaml"

// InstallConfig holds the configuration for installing a unit.
type InstallConfig struct {
	// Source is the unit file to install.
	// Default: target_selector.service (relative to the working directory)
	Source string `yaml:"source"`

	// UnitDir is the directory the unit file is copied into.
	// Default: /etc/systemd/system
	UnitDir string `yaml:"unit_dir"`

	// Manager selects the service manager backend: "systemctl" or "dbus".
	// Default: systemctl
	Manager string `yaml:"manager"`

	// SystemctlPath is the systemctl binary used by the systemctl backend.
	// Default: systemctl
	SystemctlPath string `yaml:"systemctl_path"`

	// Timeout bounds the service manager sequence. Zero blocks indefinitely.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is the log level: "debug", "info", "warn", "error".
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *InstallConfig) ApplyDefaults() {
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.UnitDir == "" {
		c.UnitDir = DefaultUnitDir
	}
	if c.Manager == "" {
		c.Manager = DefaultManager
	}
	if c.SystemctlPath == "" {
		c.SystemctlPath = DefaultSystemctlPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks that required fields are set and values are acceptable.
func (c *InstallConfig) Validate() error {
	if c.Source == "" {
		return errors.New("packaging: config: Source is required")
	}
	if c.UnitDir == "" {
		return errors.New("packaging: config: UnitDir is required")
	}
	if c.Manager != ManagerSystemctl && c.Manager != ManagerDBus {
		return fmt.Errorf("packaging: config: invalid manager %q (must be %q or %q)", c.Manager, ManagerSystemctl, ManagerDBus)
	}
	if c.Manager == ManagerSystemctl && c.SystemctlPath == "" {
		return errors.New("packaging: config: SystemctlPath is required")
	}
	if c.Timeout < 0 {
		return errors.New("packaging: config: Timeout must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("packaging: config: invalid log level %q", c.LogLevel)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. A missing file yields the
// zero config so every field falls back to its default.
// Defaults are not applied here; callers overlay flags first.
func LoadConfig(path string) (InstallConfig, error) {
	var cfg InstallConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("packaging: config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("packaging: config: parse %s: %w", path, err)
	}
	return cfg, nil
}
