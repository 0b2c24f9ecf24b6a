package packaging

import (
	"context"
	"errors"
	"fmt"
	"path"

	sddbus "github.com/coreos/go-systemd/v22/dbus"
	godbus "github.com/godbus/dbus/v5"
)

// dbusNoSuchUnit is the error systemd returns for a unit it has never heard of.
const dbusNoSuchUnit = "org.freedesktop.systemd1.NoSuchUnit"

var unitTypes = map[string]bool{
	".service": true, ".socket": true, ".device": true, ".mount": true,
	".automount": true, ".swap": true, ".target": true, ".path": true,
	".timer": true, ".slice": true, ".scope": true,
}

// dbusConn is the subset of *sddbus.Conn used by DBusManager.
type dbusConn interface {
	DisableUnitFilesContext(ctx context.Context, files []string, runtime bool) ([]sddbus.DisableUnitFileChange, error)
	ReloadContext(ctx context.Context) error
	EnableUnitFilesContext(ctx context.Context, files []string, runtime bool, force bool) (bool, []sddbus.EnableUnitFileChange, error)
	Close()
}

// DBusManager implements ServiceManager over the systemd D-Bus API.
// The system bus is dialled on first use.
type DBusManager struct {
	dial func(ctx context.Context) (dbusConn, error)
	conn dbusConn
}

// NewDBusManager returns a ServiceManager backed by the system bus.
func NewDBusManager() *DBusManager {
	return &DBusManager{dial: dialSystemBus}
}

func dialSystemBus(ctx context.Context) (dbusConn, error) {
	conn, err := sddbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Disable disables the unit's files. NoSuchUnit maps to ErrUnitNotEnabled.
func (m *DBusManager) Disable(ctx context.Context, unit string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	if _, err := conn.DisableUnitFilesContext(ctx, []string{unitFileName(unit)}, false); err != nil {
		if isDBusError(err, dbusNoSuchUnit) {
			return fmt.Errorf("%w: %v", ErrUnitNotEnabled, err)
		}
		return fmt.Errorf("dbus disable: %w", err)
	}
	return nil
}

// Reload asks systemd to reload its unit files.
func (m *DBusManager) Reload(ctx context.Context) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("dbus reload: %w", err)
	}
	return nil
}

// Enable enables the unit's files without replacing conflicting links.
func (m *DBusManager) Enable(ctx context.Context, unit string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	if _, _, err := conn.EnableUnitFilesContext(ctx, []string{unitFileName(unit)}, false, false); err != nil {
		return fmt.Errorf("dbus enable: %w", err)
	}
	return nil
}

// Close closes the bus connection if one was opened.
func (m *DBusManager) Close() error {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	return nil
}

func (m *DBusManager) connect(ctx context.Context) (dbusConn, error) {
	if m.conn != nil {
		return m.conn, nil
	}
	conn, err := m.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	m.conn = conn
	return conn, nil
}

// unitFileName appends ".service" to names without a unit type suffix,
// the way systemctl does before talking to the manager.
func unitFileName(unit string) string {
	if unitTypes[path.Ext(unit)] {
		return unit
	}
	return unit + ".service"
}

func isDBusError(err error, name string) bool {
	var e godbus.Error
	if errors.As(err, &e) {
		return e.Name == name
	}
	var pe *godbus.Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Name == name
	}
	return false
}
