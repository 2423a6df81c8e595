package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/regsync/internal/config"
	"github.com/alexisbeaulieu97/regsync/internal/livestore"
	"github.com/alexisbeaulieu97/regsync/internal/logger"
	"github.com/alexisbeaulieu97/regsync/internal/reconciler"
	"github.com/alexisbeaulieu97/regsync/internal/regimport"
)

type applyOptions struct {
	ConfigPath string
	DryRun     bool
	Verbose    bool
	Out        io.Writer
}

// newLiveStore builds the live-store adapter; tests swap in the in-memory
// implementation.
var newLiveStore = func(tool string) (livestore.Reader, livestore.Importer) {
	rc := livestore.NewRegCommand(tool)
	return rc, rc
}

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile every subject in a regsync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = root.dryRun
			opts.Verbose = root.verbose
			opts.Out = cmd.OutOrStdout()

			return runApply(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

type applyTally struct {
	succeeded int
	pending   int
	failed    int
	changed   int
}

func runApply(opts applyOptions) error {
	tally, err := reconcileAll(opts)
	if err != nil {
		return err
	}

	if tally.failed > 0 {
		return fmt.Errorf("%d subject(s) failed", tally.failed)
	}
	return nil
}

func reconcileAll(opts applyOptions) (applyTally, error) {
	var tally applyTally

	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return tally, err
	}

	dryRun := opts.DryRun || cfg.Settings.DryRun

	level := cfg.Settings.LogLevel
	if level == "" {
		level = "info"
	}
	if opts.Verbose || cfg.Settings.Verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, Pretty: isTerminal(os.Stderr)})
	if err != nil {
		return tally, err
	}

	reader, importer := newLiveStore(cfg.Settings.RegTool)
	engine := reconciler.New(log)
	styled := isTerminal(os.Stdout)

	ctx := context.Background()
	for _, subject := range cfg.Subjects {
		task := regimport.NewTask(subject.ID, subject.TaskSource(), subject.TaskView(), reader, importer)
		res := engine.Reconcile(ctx, task, dryRun)
		task.Cleanup()

		fmt.Fprintln(opts.Out, renderResult(res, styled))

		switch res.Outcome {
		case reconciler.OutcomeSucceeded:
			tally.succeeded++
			if res.Changed() {
				tally.changed++
			}
		case reconciler.OutcomePendingChange:
			tally.pending++
		case reconciler.OutcomeFailed:
			tally.failed++
		}
	}

	fmt.Fprintln(opts.Out, renderSummary(tally, dryRun, styled))
	return tally, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
