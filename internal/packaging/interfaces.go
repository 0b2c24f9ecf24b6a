package packaging

import "context"

// ServiceManager is the narrow slice of the service manager the installer drives.
// Calls block until the manager answers or ctx is done.
type ServiceManager interface {
	// Disable removes the unit's enablement links. Implementations return an
	// error matching ErrUnitNotEnabled when there is nothing to disable.
	Disable(ctx context.Context, unit string) error

	// Reload makes the manager re-read unit definitions from disk.
	Reload(ctx context.Context) error

	// Enable registers the unit according to its [Install] section.
	Enable(ctx context.Context, unit string) error
}

// PrivilegeChecker abstracts privilege checking for testability.
type PrivilegeChecker interface {
	// IsAdmin returns true only for the administrative principal.
	IsAdmin() bool
}

// Copier stages a file at dst, replacing anything already there.
type Copier interface {
	Copy(src, dst string) error
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(src, dst string) error

// Copy calls f(src, dst).
func (f CopierFunc) Copy(src, dst string) error { return f(src, dst) }
