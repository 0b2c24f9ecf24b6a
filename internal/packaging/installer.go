package packaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plexsphere/unitinstall/internal/fsutil"
	"github.com/plexsphere/unitinstall/internal/unitfile"
)

// unitFilePerm is the mode of the installed unit file.
const unitFilePerm = 0o644

// Stage names, in execution order.
const (
	StagePrivilege = "privilege"
	StageCopy      = "copy"
	StageDisable   = string(StepDisable)
	StageReload    = string(StepReload)
	StageEnable    = string(StepEnable)
)

type stage struct {
	name string
	run  func(ctx context.Context) error
}

// Installer stages a unit file and re-enables it through a ServiceManager.
type Installer struct {
	cfg       InstallConfig
	unit      unitfile.UnitFile
	manager   ServiceManager
	privilege PrivilegeChecker
	copier    Copier
	logger    *slog.Logger
}

// NewInstaller creates a new Installer with defaults applied.
func NewInstaller(cfg InstallConfig, manager ServiceManager, privilege PrivilegeChecker, logger *slog.Logger) (*Installer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	unit, err := unitfile.New(cfg.Source, cfg.UnitDir)
	if err != nil {
		return nil, fmt.Errorf("packaging: %w", err)
	}
	return &Installer{
		cfg:       cfg,
		unit:      unit,
		manager:   manager,
		privilege: privilege,
		copier: CopierFunc(func(src, dst string) error {
			return fsutil.CopyFileAtomic(src, dst, unitFilePerm)
		}),
		logger: logger.With("component", "packaging"),
	}, nil
}

// SetCopier replaces the file copier. The default copies atomically.
func (ins *Installer) SetCopier(c Copier) {
	ins.copier = c
}

// Unit returns the unit file being installed.
func (ins *Installer) Unit() unitfile.UnitFile {
	return ins.unit
}

// Stages returns the stage names in the order Install runs them.
func (ins *Installer) Stages() []string {
	stages := ins.stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.name
	}
	return names
}

// Install runs every stage in order and stops at the first failure.
// Completed stages are not undone.
func (ins *Installer) Install(ctx context.Context) error {
	if ins.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ins.cfg.Timeout)
		defer cancel()
	}

	for _, s := range ins.stages() {
		if err := s.run(ctx); err != nil {
			ins.logger.Error("install stage failed", "stage", s.name, "unit", ins.unit.Name, "error", err)
			return err
		}
	}

	ins.logger.Info("unit installed and enabled", "unit", ins.unit.Name, "path", ins.unit.Dest)
	return nil
}

func (ins *Installer) stages() []stage {
	return []stage{
		{StagePrivilege, ins.checkPrivilege},
		{StageCopy, ins.copyUnit},
		{StageDisable, ins.disable},
		{StageReload, ins.reload},
		{StageEnable, ins.enable},
	}
}

func (ins *Installer) checkPrivilege(context.Context) error {
	if !ins.privilege.IsAdmin() {
		return ErrInsufficientPrivilege
	}
	ins.logger.Debug("privilege check passed")
	return nil
}

func (ins *Installer) copyUnit(context.Context) error {
	src, dst := ins.unit.Source, ins.unit.Dest
	if err := ins.copier.Copy(src, dst); err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}

	srcSum, err := fsutil.HashFile(src)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	dstSum, err := fsutil.HashFile(dst)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	if srcSum != dstSum {
		return &CopyError{Src: src, Dst: dst, Err: fmt.Errorf("checksum mismatch: source %s, installed %s", srcSum, dstSum)}
	}

	ins.logger.Info("unit file copied", "src", src, "dst", dst, "sha256", srcSum)
	return nil
}

func (ins *Installer) disable(ctx context.Context) error {
	err := ins.manager.Disable(ctx, ins.unit.Name)
	switch {
	case errors.Is(err, ErrUnitNotEnabled):
		ins.logger.Info("unit was not enabled", "unit", ins.unit.Name)
		return nil
	case err != nil:
		return &ManagerOperationError{Step: StepDisable, Unit: ins.unit.Name, Err: err}
	}
	ins.logger.Info("unit disabled", "unit", ins.unit.Name)
	return nil
}

func (ins *Installer) reload(ctx context.Context) error {
	if err := ins.manager.Reload(ctx); err != nil {
		return &ManagerOperationError{Step: StepReload, Err: err}
	}
	ins.logger.Info("service manager reloaded")
	return nil
}

func (ins *Installer) enable(ctx context.Context) error {
	if err := ins.manager.Enable(ctx, ins.unit.Name); err != nil {
		return &ManagerOperationError{Step: StepEnable, Unit: ins.unit.Name, Err: err}
	}
	ins.logger.Info("unit enabled", "unit", ins.unit.Name)
	return nil
}
