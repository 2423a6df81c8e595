package livestore

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/regsync/internal/regfile"
	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// keyNotFoundMarker appears in the registry command's output when the
// requested root key does not exist.
const keyNotFoundMarker = "unable to find the specified registry key"

// runner executes an external command and returns its combined output.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// RegCommand reads and mutates the live store by shelling out to the native
// registry command (reg export / reg import). Snapshots are exported to a
// temp file and parsed with the same parser used for reference artifacts, so
// observed and desired values compare as like for like.
type RegCommand struct {
	tool string
	run  runner
}

// NewRegCommand returns an adapter invoking the given tool binary. An empty
// tool defaults to "reg".
func NewRegCommand(tool string) *RegCommand {
	if tool == "" {
		tool = "reg"
	}
	return &RegCommand{tool: tool, run: runCombined}
}

var _ Reader = (*RegCommand)(nil)
var _ Importer = (*RegCommand)(nil)

// Snapshot exports the subtree at rootPath and parses it. Returns a nil
// store when the root key does not exist.
func (r *RegCommand) Snapshot(ctx context.Context, rootPath string, view View) (*store.Store, error) {
	tmp, err := os.CreateTemp("", "regsync-snapshot-*.reg")
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	args := append([]string{"export", rootPath, tmpPath, "/y"}, viewArgs(view)...)
	output, err := r.run(ctx, r.tool, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), keyNotFoundMarker) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s export %s: %w: %s", r.tool, rootPath, err, strings.TrimSpace(string(output)))
	}

	return regfile.ParseFile(tmpPath)
}

// Import merges the artifact into the live store.
func (r *RegCommand) Import(ctx context.Context, artifactPath string, view View) error {
	abs, err := filepath.Abs(artifactPath)
	if err != nil {
		return fmt.Errorf("resolve artifact path: %w", err)
	}

	args := append([]string{"import", abs}, viewArgs(view)...)
	output, err := r.run(ctx, r.tool, args...)
	if err != nil {
		return fmt.Errorf("%s import %s: %w: %s", r.tool, abs, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func viewArgs(view View) []string {
	switch view {
	case View32:
		return []string{"/reg:32"}
	case View64:
		return []string{"/reg:64"}
	default:
		return nil
	}
}
