package regimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/alexisbeaulieu97/regsync/internal/livestore"
	"github.com/alexisbeaulieu97/regsync/internal/regfile"
	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// Source locates the registry-export artifact for a subject: either a local
// file path or a file inside a git repository. Exactly one must be set.
type Source struct {
	Path string
	Git  *GitSource
}

// GitSource names an artifact inside a git repository.
type GitSource struct {
	URL  string
	Ref  string
	Path string
}

// Reference bundles everything one reconciliation call needs about the
// desired state. It is fetched exactly once and handed unchanged to the
// requirement computations and comment formatters.
type Reference struct {
	// Desired is the parsed artifact.
	Desired *store.Store
	// ArtifactPath is the local file the store was parsed from; the import
	// operation consumes this same file.
	ArtifactPath string
	// RootPath is the single section path anchoring the desired store.
	RootPath string
	// View is the registry view the subject targets.
	View livestore.View
}

// fetch materializes the artifact locally, parses it, and resolves the
// anchoring root path. Artifacts with zero sections or more than one root
// are rejected.
func (t *Task) fetch(ctx context.Context) (*Reference, error) {
	artifactPath, err := t.materialize(ctx)
	if err != nil {
		return nil, err
	}

	desired, err := regfile.ParseFile(artifactPath)
	if err != nil {
		return nil, err
	}

	roots := desired.Roots()
	if len(roots) != 1 {
		return nil, fmt.Errorf("artifact %s must be anchored at exactly one root key, found %d", filepath.Base(artifactPath), len(roots))
	}

	return &Reference{
		Desired:      desired,
		ArtifactPath: artifactPath,
		RootPath:     roots[0],
		View:         t.view,
	}, nil
}

func (t *Task) materialize(ctx context.Context) (string, error) {
	switch {
	case t.source.Path != "" && t.source.Git != nil:
		return "", fmt.Errorf("source must name a path or a git repository, not both")
	case t.source.Path != "":
		if _, err := os.Stat(t.source.Path); err != nil {
			return "", err
		}
		return t.source.Path, nil
	case t.source.Git != nil:
		return t.cloneArtifact(ctx, t.source.Git)
	default:
		return "", fmt.Errorf("source names neither a path nor a git repository")
	}
}

func (t *Task) cloneArtifact(ctx context.Context, src *GitSource) (string, error) {
	dir, err := os.MkdirTemp("", "regsync-fetch-*")
	if err != nil {
		return "", err
	}
	t.tempDir = dir

	opts := &git.CloneOptions{
		URL: src.URL,
	}
	if src.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Ref)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return "", fmt.Errorf("clone %s: %w", src.URL, err)
	}

	artifact := filepath.Join(dir, filepath.FromSlash(src.Path))
	if _, err := os.Stat(artifact); err != nil {
		return "", fmt.Errorf("artifact %s not found in %s: %w", src.Path, src.URL, err)
	}
	return artifact, nil
}

// Cleanup removes any temporary checkout created while fetching. Call it
// once the reconciliation call has fully completed; the artifact path inside
// the checkout stays valid until then.
func (t *Task) Cleanup() {
	if t.tempDir != "" {
		os.RemoveAll(t.tempDir)
		t.tempDir = ""
	}
}
