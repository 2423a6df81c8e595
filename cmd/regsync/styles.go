package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/regsync/internal/reconciler"
)

var (
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	summaryStyle   = lipgloss.NewStyle().Bold(true)
)

func renderResult(res reconciler.Result, styled bool) string {
	var marker string
	var style lipgloss.Style

	switch res.Outcome {
	case reconciler.OutcomeSucceeded:
		marker = "✓"
		style = succeededStyle
	case reconciler.OutcomePendingChange:
		marker = "±"
		style = pendingStyle
	default:
		marker = "✗"
		style = failedStyle
	}

	line := fmt.Sprintf("%s %s: %s", marker, res.Subject, res.Comment)
	if !styled {
		return line
	}
	return style.Render(line)
}

func renderSummary(tally applyTally, dryRun bool, styled bool) string {
	line := fmt.Sprintf("%d succeeded, %d pending, %d failed", tally.succeeded, tally.pending, tally.failed)
	if !dryRun && tally.changed > 0 {
		line += fmt.Sprintf(" (%d changed)", tally.changed)
	}
	if dryRun {
		line = "dry-run: " + line
	}
	if !styled {
		return line
	}
	return summaryStyle.Render(line)
}
