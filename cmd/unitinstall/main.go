// Package main is the entry point for the unitinstall binary.
package main

import (
	"os"

	"github.com/plexsphere/unitinstall/cmd/unitinstall/cmd"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
