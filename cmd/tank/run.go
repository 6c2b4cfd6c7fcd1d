package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kanaricc/tank/internal/logger"
	"github.com/kanaricc/tank/internal/problem"
	"github.com/kanaricc/tank/internal/verdict"
)

func runCmd() *cobra.Command {
	var watch bool
	var cellOverride string

	cmd := &cobra.Command{
		Use:   "run <problem.yaml> -- <program> [args...]",
		Short: "Run a compiled program through a problem's cases",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash != 1 {
				return fmt.Errorf("usage: tank run <problem.yaml> -- <program> [args...]")
			}
			problemPath := args[0]
			program := verdict.CompiledProgram{Path: args[1], Args: args[2:]}

			cellPath, err := resolveCellPath(cellOverride)
			if err != nil {
				return fmt.Errorf("resolve cell path: %w", err)
			}

			runOnce := func() error {
				cfg, err := problem.Load(problemPath)
				if err != nil {
					return err
				}
				driver := problem.Driver{CellPath: cellPath, Program: program}
				results, runErr := driver.Run(cfg)
				printReport(cmd.OutOrStdout(), cfg, results)
				return runErr
			}

			if err := runOnce(); err != nil {
				logger.Error("run failed", "error", err)
				if !watch {
					return err
				}
			}
			if !watch {
				return nil
			}
			return watchAndRerun(problemPath, runOnce)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run every case whenever the problem config or its cases change")
	cmd.Flags().StringVar(&cellOverride, "cell", "", "Path to the cell sandbox binary (overrides config/env/$PATH)")
	return cmd
}

// watchAndRerun re-invokes runOnce whenever problemPath's directory
// receives a write, debouncing rapid successive saves the way
// codenerd's mangle watcher does for its rule files.
func watchAndRerun(problemPath string, runOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(problemPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching for changes", "dir", dir)

	const debounce = 200 * time.Millisecond
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			logger.Info("change detected, re-running")
			if err := runOnce(); err != nil {
				logger.Error("run failed", "error", err)
			}
		}
	}
}
