// Command tank is the judge orchestrator CLI: it loads a problem config,
// drives a compiled program through its cases via the cell sandbox, and
// prints a per-case verdict report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanaricc/tank/internal/config"
	"github.com/kanaricc/tank/internal/logger"
)

var (
	logLevelFlag string
	logFileFlag  string
)

func main() {
	root := &cobra.Command{
		Use:   "tank",
		Short: "tank — a sandboxed competitive-programming judge",
		Long:  "Drives compiled programs through problem test suites inside the cell sandbox, classifying each case against time/memory limits and a comparator, special judge, or interactor.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logLevelFlag, logFileFlag)
		},
	}
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also write logs to this file")

	root.AddCommand(
		runCmd(),
		problemCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// ambientConfig loads internal/config.Config, exiting on a load error.
// config.Load never errors on a missing file, so a failure here means the
// file exists but is malformed.
func ambientConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func resolveCellPath(override string) (string, error) {
	cfg := ambientConfig()
	if override == "" {
		override = cfg.CellPath
	}
	return config.CellPath(override)
}
