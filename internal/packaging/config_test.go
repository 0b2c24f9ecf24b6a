package packaging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInstallConfig_Defaults(t *testing.T) {
	cfg := InstallConfig{}
	cfg.ApplyDefaults()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Source", cfg.Source, "target_selector.service"},
		{"UnitDir", cfg.UnitDir, "/etc/systemd/system"},
		{"Manager", cfg.Manager, "systemctl"},
		{"SystemctlPath", cfg.SystemctlPath, "systemctl"},
		{"LogLevel", cfg.LogLevel, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 (block indefinitely)", cfg.Timeout)
	}
}

func TestInstallConfig_DefaultsPreserveExisting(t *testing.T) {
	cfg := InstallConfig{
		Source:   "custom.service",
		UnitDir:  "/lib/systemd/system",
		Manager:  ManagerDBus,
		Timeout:  30 * time.Second,
		LogLevel: "debug",
	}
	cfg.ApplyDefaults()

	if cfg.Source != "custom.service" {
		t.Errorf("Source = %q, want %q", cfg.Source, "custom.service")
	}
	if cfg.UnitDir != "/lib/systemd/system" {
		t.Errorf("UnitDir = %q, want %q", cfg.UnitDir, "/lib/systemd/system")
	}
	if cfg.Manager != ManagerDBus {
		t.Errorf("Manager = %q, want %q", cfg.Manager, ManagerDBus)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestInstallConfig_Validate(t *testing.T) {
	valid := func() InstallConfig {
		cfg := InstallConfig{}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*InstallConfig)
		wantErr string
	}{
		{"defaults", func(*InstallConfig) {}, ""},
		{"dbus", func(c *InstallConfig) { c.Manager = ManagerDBus; c.SystemctlPath = "" }, ""},
		{"empty source", func(c *InstallConfig) { c.Source = "" }, "Source"},
		{"empty unit dir", func(c *InstallConfig) { c.UnitDir = "" }, "UnitDir"},
		{"unknown manager", func(c *InstallConfig) { c.Manager = "upstart" }, "invalid manager"},
		{"empty systemctl path", func(c *InstallConfig) { c.SystemctlPath = "" }, "SystemctlPath"},
		{"negative timeout", func(c *InstallConfig) { c.Timeout = -time.Second }, "Timeout"},
		{"bad log level", func(c *InstallConfig) { c.LogLevel = "trace" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() = %v, want nil for missing file", err)
	}
	if cfg != (InstallConfig{}) {
		t.Errorf("LoadConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `source: /opt/units/target_selector.service
unit_dir: /run/systemd/system
manager: dbus
timeout: 45s
log_level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Source != "/opt/units/target_selector.service" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.UnitDir != "/run/systemd/system" {
		t.Errorf("UnitDir = %q", cfg.UnitDir)
	}
	if cfg.Manager != ManagerDBus {
		t.Errorf("Manager = %q, want %q", cfg.Manager, ManagerDBus)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("LoadConfig() = %q, want parse error", err)
	}
}
