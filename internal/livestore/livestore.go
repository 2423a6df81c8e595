// Package livestore defines the collaborator interfaces for observing and
// mutating the live key/value store, plus the adapters that implement them:
// regcmd shells out to the native registry command, memory backs tests.
package livestore

import (
	"context"

	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// View selects which registry view a subject targets on 64-bit hosts.
type View string

const (
	// ViewDefault uses the process-native view.
	ViewDefault View = ""
	// View32 targets the 32-bit registry view.
	View32 View = "32"
	// View64 targets the 64-bit registry view.
	View64 View = "64"
)

// Reader obtains the current snapshot of the subtree rooted at rootPath.
// A nil store with a nil error means the root does not exist at all, which
// is distinct from an existing root with no entries.
type Reader interface {
	Snapshot(ctx context.Context, rootPath string, view View) (*store.Store, error)
}

// Importer merges a registry-export artifact into the live store. This is
// the only mutating operation in the system.
type Importer interface {
	Import(ctx context.Context, artifactPath string, view View) error
}
