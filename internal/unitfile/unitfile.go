// Package unitfile describes the systemd unit definition being installed.
package unitfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ServiceSuffix is the unit type systemctl assumes when a name has no suffix.
const ServiceSuffix = ".service"

// UnitFile is a unit definition staged from the working directory into the
// system unit directory. It is read-only input; nothing here deletes it.
type UnitFile struct {
	// Source is the path of the unit file as shipped.
	Source string

	// Dest is the installed path: the unit directory joined with Source's base name.
	Dest string

	// Name is the identifier handed to the service manager.
	Name string
}

// New builds a UnitFile for source installed under unitDir.
// The destination keeps source's base name, and Name is that base name with
// a trailing ".service" removed. Other unit types keep their suffix.
func New(source, unitDir string) (UnitFile, error) {
	if source == "" {
		return UnitFile{}, errors.New("unitfile: source path is required")
	}
	if unitDir == "" {
		return UnitFile{}, errors.New("unitfile: unit directory is required")
	}

	base := filepath.Base(source)
	switch base {
	case ".", "..", string(filepath.Separator):
		return UnitFile{}, fmt.Errorf("unitfile: source %q does not name a file", source)
	case ServiceSuffix:
		return UnitFile{}, fmt.Errorf("unitfile: source %q has an empty unit name", source)
	}

	return UnitFile{
		Source: source,
		Dest:   filepath.Join(unitDir, base),
		Name:   NameFromBase(base),
	}, nil
}

// NameFromBase returns the manager-facing unit name for a file base name.
func NameFromBase(base string) string {
	return strings.TrimSuffix(base, ServiceSuffix)
}

// String implements fmt.Stringer.
func (u UnitFile) String() string {
	return fmt.Sprintf("%s (%s -> %s)", u.Name, u.Source, u.Dest)
}
