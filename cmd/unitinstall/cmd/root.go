// Package cmd implements the unitinstall CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexsphere/unitinstall/internal/packaging"
)

var (
	cfgFile     string
	logLevel    string
	sourcePath  string
	unitDir     string
	managerName string
	dryRun      bool
)

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("unitinstall version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

var rootCmd = &cobra.Command{
	Use:   "unitinstall",
	Short: "unitinstall installs and enables the target selector systemd unit",
	Long: "unitinstall copies a systemd unit file into the system unit directory,\n" +
		"disables any existing unit of the same name, reloads the systemd\n" +
		"configuration and enables the unit again. It must be run as root.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInstall,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", packaging.DefaultConfigPath, "config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&sourcePath, "source", "", "unit file to install (default target_selector.service)")
	rootCmd.Flags().StringVar(&unitDir, "unit-dir", "", "systemd unit directory (default /etc/systemd/system)")
	rootCmd.Flags().StringVar(&managerName, "manager", "", "service manager backend: systemctl or dbus (default systemctl)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the install plan without changing anything")

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("unitinstall version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
