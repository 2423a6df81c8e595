package reconciler

import (
	"github.com/alexisbeaulieu97/regsync/internal/diff"
)

// Outcome classifies how a reconciliation call ended.
type Outcome string

const (
	// OutcomeSucceeded means the subject matches its desired state, either
	// because no changes were needed or because the applied changes passed
	// the retest.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed means a collaborator failed or the retest still found
	// drift after a successful apply.
	OutcomeFailed Outcome = "failed"
	// OutcomePendingChange means dry-run found drift; nothing was mutated.
	OutcomePendingChange Outcome = "pending_change"
)

// Result is the externally observable contract of a reconciliation call.
//
// Two facts hold by construction: a failed Result never carries a non-empty
// Changes report, and a non-empty Changes report never co-occurs with an
// error comment. A succeeded Result with changes reports the pre-apply
// report, never what the retest observed.
type Result struct {
	Subject string
	Outcome Outcome
	Changes *diff.Report
	Comment string
}

// Changed reports whether the call found (and, outside dry-run, applied)
// any drift.
func (r Result) Changed() bool {
	return !r.Changes.Empty()
}
