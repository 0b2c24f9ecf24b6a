package packaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/plexsphere/unitinstall/internal/execx"
)

// disableNoopMarkers returns the systemctl messages meaning unit has nothing
// to disable. They name the unit file, so transport errors never match.
func disableNoopMarkers(unit string) []string {
	file := unitFileName(unit)
	return []string{
		"Unit file " + file + " does not exist",
		"Unit " + file + " not loaded",
	}
}

// SystemctlManager implements ServiceManager by running systemctl.
type SystemctlManager struct {
	runner execx.Runner
	path   string
}

// NewSystemctlManager returns a ServiceManager that calls the systemctl binary at path.
func NewSystemctlManager(runner execx.Runner, path string) *SystemctlManager {
	if path == "" {
		path = DefaultSystemctlPath
	}
	return &SystemctlManager{runner: runner, path: path}
}

// Disable runs systemctl disable. A unit systemctl cannot find maps to ErrUnitNotEnabled.
func (m *SystemctlManager) Disable(ctx context.Context, unit string) error {
	output, err := m.runner.CombinedOutput(ctx, m.path, "disable", unit)
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(string(output))
	for _, marker := range disableNoopMarkers(unit) {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %s", ErrUnitNotEnabled, msg)
		}
	}
	return fmt.Errorf("systemctl disable: %s: %w", msg, err)
}

// Reload runs systemctl daemon-reload.
func (m *SystemctlManager) Reload(ctx context.Context) error {
	return m.run(ctx, "daemon-reload")
}

// Enable runs systemctl enable.
func (m *SystemctlManager) Enable(ctx context.Context, unit string) error {
	return m.run(ctx, "enable", unit)
}

func (m *SystemctlManager) run(ctx context.Context, args ...string) error {
	output, err := m.runner.CombinedOutput(ctx, m.path, args...)
	if err != nil {
		return fmt.Errorf("systemctl %s: %s: %w", args[0], strings.TrimSpace(string(output)), err)
	}
	return nil
}
