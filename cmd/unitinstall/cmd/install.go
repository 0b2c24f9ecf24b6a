package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plexsphere/unitinstall/internal/execx"
	"github.com/plexsphere/unitinstall/internal/packaging"
)

// Collaborator constructors, replaced in tests.
var (
	newPrivilegeChecker = func() packaging.PrivilegeChecker {
		return packaging.NewRootChecker()
	}
	newServiceManager = defaultServiceManager
)

func defaultServiceManager(cfg packaging.InstallConfig) (packaging.ServiceManager, func()) {
	if cfg.Manager == packaging.ManagerDBus {
		m := packaging.NewDBusManager()
		return m, func() { _ = m.Close() }
	}
	return packaging.NewSystemctlManager(execx.NewRealRunner(), cfg.SystemctlPath), func() {}
}

func runInstall(cmd *cobra.Command, _ []string) error {
	privilege := newPrivilegeChecker()
	// The config file may be root-only; report the privilege problem instead.
	if !dryRun && !privilege.IsAdmin() {
		return privilegeError(cmd, packaging.ErrInsufficientPrivilege)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("unitinstall: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	manager, closeManager := newServiceManager(cfg)
	defer closeManager()

	installer, err := packaging.NewInstaller(cfg, manager, privilege, logger)
	if err != nil {
		return fmt.Errorf("unitinstall: %w", err)
	}

	if dryRun {
		printPlan(cmd, installer, cfg)
		return nil
	}

	if err := installer.Install(cmd.Context()); err != nil {
		if errors.Is(err, packaging.ErrInsufficientPrivilege) {
			return privilegeError(cmd, err)
		}
		return fmt.Errorf("unitinstall: %w", err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s installed and enabled\n", installer.Unit().Name)
	return nil
}

func privilegeError(cmd *cobra.Command, err error) error {
	color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(),
		"unitinstall must be run as root. Re-run it with elevated privileges, e.g.: sudo unitinstall")
	return fmt.Errorf("unitinstall: %w", err)
}

// resolveConfig loads the config file and overlays flags the user set.
func resolveConfig(cmd *cobra.Command) (packaging.InstallConfig, error) {
	cfg, err := packaging.LoadConfig(cfgFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = sourcePath
	}
	if flags.Changed("unit-dir") {
		cfg.UnitDir = unitDir
	}
	if flags.Changed("manager") {
		cfg.Manager = managerName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printPlan(cmd *cobra.Command, installer *packaging.Installer, cfg packaging.InstallConfig) {
	u := installer.Unit()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "unit:    %s\n", u.Name)
	fmt.Fprintf(out, "source:  %s\n", u.Source)
	fmt.Fprintf(out, "dest:    %s\n", u.Dest)
	fmt.Fprintf(out, "manager: %s\n", cfg.Manager)
	fmt.Fprintf(out, "stages:  %s\n", strings.Join(installer.Stages(), " -> "))
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
