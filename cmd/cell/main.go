// cell is the sandbox launcher: it is spawned by the judge, never run
// directly by a submission. It applies resource limits, installs a
// syscall allow-list, then execs the target program in its own place.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanaricc/tank/internal/cell"
)

func main() {
	var memoryLimitMB uint64
	var timeLimitMs uint64
	var profileList string

	root := &cobra.Command{
		Use:                   "cell <target_path> -m <MB> -t <MS> -p <profile[,profile...]> [-- <user_args...>]",
		Short:                 "Run target_path under rlimits and a syscall allow-list",
		Args:                  cobra.MinimumNArgs(1),
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := cell.ParseProfiles(profileList)
			if err != nil {
				return err
			}
			if memoryLimitMB == 0 {
				return fmt.Errorf("cell: -m memory limit (MB) is required and must be positive")
			}
			if timeLimitMs == 0 {
				return fmt.Errorf("cell: -t time limit (ms) is required and must be positive")
			}

			target := args[0]
			userArgs := args[1:]

			err = cell.Launch(cell.Spec{
				TargetPath:    target,
				MemoryLimitMB: memoryLimitMB,
				TimeLimitMs:   timeLimitMs,
				Profile:       profile,
				UserArgs:      userArgs,
			})
			// Launch only returns on failure — a successful run replaced
			// this process image and never comes back here.
			return err
		},
	}

	root.Flags().Uint64VarP(&memoryLimitMB, "memory", "m", 0, "memory limit in MB (RLIMIT_AS = 2x this)")
	root.Flags().Uint64VarP(&timeLimitMs, "time", "t", 0, "CPU time limit in ms")
	root.Flags().StringVarP(&profileList, "profile", "p", "minimum", "syscall profile: minimum, io, or full")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cell:", err)
		os.Exit(1)
	}
}
