package packaging

import "golang.org/x/sys/unix"

// rootUID is the administrative user id.
const rootUID = 0

// RootChecker implements PrivilegeChecker using the effective user id.
type RootChecker struct {
	geteuid func() int
}

// NewRootChecker returns a PrivilegeChecker that checks the real process euid.
func NewRootChecker() *RootChecker {
	return &RootChecker{geteuid: unix.Geteuid}
}

// IsAdmin reports whether the effective uid is exactly root.
func (c *RootChecker) IsAdmin() bool {
	return c.geteuid() == rootUID
}
