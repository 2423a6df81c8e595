package regimport

import (
	"fmt"
	"path/filepath"

	"github.com/alexisbeaulieu97/regsync/internal/diff"
	"github.com/alexisbeaulieu97/regsync/internal/reconciler"
	"github.com/alexisbeaulieu97/regsync/internal/regfile"
	diffpreview "github.com/alexisbeaulieu97/regsync/pkg/diff"
)

// NoChangeComment describes a subject already matching its artifact.
func (t *Task) NoChangeComment(ref reconciler.Reference) string {
	r := ref.(*Reference)
	return fmt.Sprintf("%s already matches %s", r.RootPath, filepath.Base(r.ArtifactPath))
}

// PendingComment describes drift found during a dry run, with a rendered
// preview of the observed-vs-desired export text.
func (t *Task) PendingComment(ref reconciler.Reference, report *diff.Report) string {
	r := ref.(*Reference)
	comment := fmt.Sprintf("would import %s: %s", filepath.Base(r.ArtifactPath), summarize(report))

	preview := diffpreview.Preview(regfile.Render(t.lastObserved), regfile.Render(r.Desired), "observed", "desired")
	if preview != "" {
		comment += "\n\n" + preview
	}
	return comment
}

// AppliedComment describes changes that were applied and passed the retest.
func (t *Task) AppliedComment(ref reconciler.Reference, report *diff.Report) string {
	r := ref.(*Reference)
	return fmt.Sprintf("imported %s: %s", filepath.Base(r.ArtifactPath), summarize(report))
}

// RetestFailedComment describes drift that survived a successful import.
func (t *Task) RetestFailedComment(ref reconciler.Reference, report *diff.Report) string {
	r := ref.(*Reference)
	return fmt.Sprintf("import of %s completed but %s still required", filepath.Base(r.ArtifactPath), summarize(report))
}

func summarize(report *diff.Report) string {
	superseded := 0
	for _, entries := range report.SupersededEntries {
		superseded += len(entries)
	}

	s := fmt.Sprintf("%d new %s, %d %s to write",
		len(report.NewSections), plural(len(report.NewSections), "section", "sections"),
		report.EntryCount(), plural(report.EntryCount(), "entry", "entries"))
	if superseded > 0 {
		s += fmt.Sprintf(" (%d superseded)", superseded)
	}
	return s
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
