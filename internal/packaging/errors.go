package packaging

import (
	"errors"
	"fmt"
)

// ErrInsufficientPrivilege is returned when the caller is not the
// administrative user. No state has been changed when it is returned.
var ErrInsufficientPrivilege = errors.New("packaging: install requires root privileges")

// ErrCopyFailed is matched by every *CopyError.
var ErrCopyFailed = errors.New("packaging: copy unit file failed")

// ErrManagerOperationFailed is matched by every *ManagerOperationError.
var ErrManagerOperationFailed = errors.New("packaging: service manager operation failed")

// ErrUnitNotEnabled is reported by a ServiceManager when Disable finds nothing
// to disable. The installer treats it as success.
var ErrUnitNotEnabled = errors.New("packaging: unit not enabled")

// Step names a service manager operation in the install sequence.
type Step string

// Service manager steps, in execution order.
const (
	StepDisable Step = "disable"
	StepReload  Step = "reload"
	StepEnable  Step = "enable"
)

// CopyError reports a failure staging the unit file.
// The destination may hold a partial write only if the copier is not atomic.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("packaging: copy %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCopyFailed.
func (e *CopyError) Is(target error) bool { return target == ErrCopyFailed }

// ManagerOperationError reports which service manager step failed.
// Steps that already ran are not undone.
type ManagerOperationError struct {
	Step Step
	Unit string
	Err  error
}

func (e *ManagerOperationError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("packaging: %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("packaging: %s %s: %v", e.Step, e.Unit, e.Err)
}

func (e *ManagerOperationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrManagerOperationFailed.
func (e *ManagerOperationError) Is(target error) bool { return target == ErrManagerOperationFailed }
