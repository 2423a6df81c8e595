// Package reconciler implements a single-shot idempotent reconciliation
// call: fetch the desired state once, compute required changes, optionally
// stop at a dry-run preview, apply, then recompute to verify the apply took.
// The collaborators that do the actual fetching, diffing, and mutating are
// supplied through the Task interface; the engine only sequences them and
// shapes their answers into a Result.
package reconciler

import (
	"context"

	"github.com/alexisbeaulieu97/regsync/internal/diff"
	"github.com/alexisbeaulieu97/regsync/internal/logger"
)

// Reference is the opaque desired-state bundle produced by
// Task.FetchReference. It is fetched exactly once per reconciliation call
// and handed back to the task's other methods unchanged.
type Reference any

// OperationData is the opaque payload ComputeRequirements hands to Apply.
// It is present exactly when the accompanying report is non-empty.
type OperationData any

// Task supplies the collaborator operations for one reconciliation subject.
// Every method may be called at most the number of times the state machine
// dictates: FetchReference once, ComputeRequirements once or twice, Apply at
// most once. Implementations must not retain or mutate the report they
// return.
type Task interface {
	// Name identifies the subject in results and logs.
	Name() string

	// FetchReference acquires the desired-state bundle.
	FetchReference(ctx context.Context) (Reference, error)

	// ComputeRequirements obtains the current observed state and returns the
	// changes required to reach the desired state, plus the opaque data
	// Apply needs when the report is non-empty.
	ComputeRequirements(ctx context.Context, ref Reference) (*diff.Report, OperationData, error)

	// Apply performs the mutating operation. It is never called in dry-run
	// mode or when no changes are required.
	Apply(ctx context.Context, data OperationData) error

	// NoChangeComment describes a subject already in its desired state.
	NoChangeComment(ref Reference) string
	// PendingComment describes drift found during a dry run.
	PendingComment(ref Reference, report *diff.Report) string
	// AppliedComment describes changes that were applied and verified.
	AppliedComment(ref Reference, report *diff.Report) string
	// RetestFailedComment describes drift that survived a successful apply.
	RetestFailedComment(ref Reference, report *diff.Report) string
}

// Engine runs reconciliation calls. Engines are stateless between calls and
// safe for concurrent use as long as distinct calls use distinct Tasks.
type Engine struct {
	log *logger.Logger
}

// New returns an Engine that logs through the supplied logger.
func New(log *logger.Logger) *Engine {
	return &Engine{log: log}
}

// Reconcile executes one reconciliation call for the task's subject.
// It always returns a terminal Result and never panics on collaborator
// errors; every collaborator failure maps 1:1 to a failed Result whose
// comment is the collaborator's own error text.
func (e *Engine) Reconcile(ctx context.Context, task Task, dryRun bool) Result {
	subject := task.Name()
	log := e.log.WithSubject(subject)

	ref, err := task.FetchReference(ctx)
	if err != nil {
		log.Error(err, "reference fetch failed")
		return failed(subject, err)
	}

	report, opData, err := task.ComputeRequirements(ctx, ref)
	if err != nil {
		log.Error(err, "requirement computation failed")
		return failed(subject, err)
	}

	if report.Empty() {
		log.Debug("no changes required")
		return Result{
			Subject: subject,
			Outcome: OutcomeSucceeded,
			Changes: report,
			Comment: task.NoChangeComment(ref),
		}
	}

	log.WithFields(map[string]any{
		"new_sections":    len(report.NewSections),
		"changed_entries": report.EntryCount(),
		"dry_run":         dryRun,
	}).Info("drift detected")

	if dryRun {
		return Result{
			Subject: subject,
			Outcome: OutcomePendingChange,
			Changes: report,
			Comment: task.PendingComment(ref, report),
		}
	}

	if err := task.Apply(ctx, opData); err != nil {
		log.Error(err, "apply operation failed")
		return failed(subject, err)
	}

	// Retest against the now-mutated store. The retest's operation data
	// is never used.
	retest, _, err := task.ComputeRequirements(ctx, ref)
	if err != nil {
		log.Error(err, "post-apply retest failed")
		return failed(subject, err)
	}

	if !retest.Empty() {
		log.Warn("drift remains after apply")
		return Result{
			Subject: subject,
			Outcome: OutcomeFailed,
			Comment: task.RetestFailedComment(ref, retest),
		}
	}

	log.Info("changes applied and verified")
	return Result{
		Subject: subject,
		Outcome: OutcomeSucceeded,
		Changes: report,
		Comment: task.AppliedComment(ref, report),
	}
}

func failed(subject string, err error) Result {
	return Result{
		Subject: subject,
		Outcome: OutcomeFailed,
		Comment: err.Error(),
	}
}
