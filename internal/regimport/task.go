// Package regimport implements the reconciler.Task for registry-export
// subjects: it fetches and parses the reference artifact, computes required
// changes against a live-store snapshot, and applies them by importing the
// artifact.
package regimport

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/regsync/internal/diff"
	"github.com/alexisbeaulieu97/regsync/internal/livestore"
	"github.com/alexisbeaulieu97/regsync/internal/reconciler"
	"github.com/alexisbeaulieu97/regsync/internal/store"
	regsyncerrors "github.com/alexisbeaulieu97/regsync/pkg/errors"
)

// OperationData carries what the import operation needs: the artifact file
// and the registry view to merge it into. Present exactly when the change
// report is non-empty.
type OperationData struct {
	ArtifactPath string
	View         livestore.View
}

// Task reconciles one registry-export subject. A Task serves a single
// reconciliation call; construct a fresh one per call.
type Task struct {
	subject  string
	source   Source
	view     livestore.View
	reader   livestore.Reader
	importer livestore.Importer

	tempDir      string
	lastObserved *store.Store
}

// NewTask builds a task for one subject.
func NewTask(subject string, source Source, view livestore.View, reader livestore.Reader, importer livestore.Importer) *Task {
	return &Task{
		subject:  subject,
		source:   source,
		view:     view,
		reader:   reader,
		importer: importer,
	}
}

var _ reconciler.Task = (*Task)(nil)

// Name returns the subject name.
func (t *Task) Name() string {
	return t.subject
}

// FetchReference acquires and parses the artifact.
func (t *Task) FetchReference(ctx context.Context) (reconciler.Reference, error) {
	ref, err := t.fetch(ctx)
	if err != nil {
		return nil, regsyncerrors.NewFetchError(t.subject, err)
	}
	return ref, nil
}

// ComputeRequirements snapshots the live store at the reference's root and
// diffs the desired store against it. Snapshot failures propagate without
// retry.
func (t *Task) ComputeRequirements(ctx context.Context, ref reconciler.Reference) (*diff.Report, reconciler.OperationData, error) {
	r, ok := ref.(*Reference)
	if !ok {
		return nil, nil, regsyncerrors.NewRequirementError(t.subject, fmt.Errorf("unexpected reference type %T", ref))
	}

	observed, err := t.reader.Snapshot(ctx, r.RootPath, r.View)
	if err != nil {
		return nil, nil, regsyncerrors.NewRequirementError(t.subject, err)
	}
	t.lastObserved = observed

	report := diff.Compute(r.Desired, observed)
	if report.Empty() {
		return report, nil, nil
	}
	return report, &OperationData{ArtifactPath: r.ArtifactPath, View: r.View}, nil
}

// Apply imports the artifact into the live store.
func (t *Task) Apply(ctx context.Context, data reconciler.OperationData) error {
	op, ok := data.(*OperationData)
	if !ok {
		return regsyncerrors.NewOperationError(t.subject, fmt.Errorf("unexpected operation data type %T", data))
	}

	if err := t.importer.Import(ctx, op.ArtifactPath, op.View); err != nil {
		return regsyncerrors.NewOperationError(t.subject, err)
	}
	return nil
}
