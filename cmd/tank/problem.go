package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanaricc/tank/internal/problem"
)

func problemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Inspect and validate problem configs",
	}
	cmd.AddCommand(validateCmd())
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <problem.yaml>",
		Short: "Load a problem config and check its cases, checker, interactor, and lint rules without running anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d case", cfg.Name, len(cfg.Cases))
			if len(cfg.Cases) != 1 {
				fmt.Fprint(cmd.OutOrStdout(), "s")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
			return nil
		},
	}
}
