package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Report required changes without importing anything",
		Long: `Plan performs read-only reconciliation for every subject. Exit code 0
means every subject already matches its artifact, exit code 1 means at least
one subject has pending changes or failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = true
			opts.Verbose = root.verbose
			opts.Out = cmd.OutOrStdout()

			return runPlan(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runPlan(opts applyOptions) error {
	tally, err := reconcileAll(opts)
	if err != nil {
		return err
	}

	if tally.failed > 0 {
		return fmt.Errorf("%d subject(s) failed", tally.failed)
	}
	if tally.pending > 0 {
		return fmt.Errorf("%d subject(s) have pending changes", tally.pending)
	}
	return nil
}
