package livestore

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/regsync/internal/regfile"
	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// Memory is an in-memory Reader and Importer. Import parses the artifact
// file and merges its sections, which makes a full fetch/diff/apply/retest
// cycle runnable without a native registry.
type Memory struct {
	mu   sync.Mutex
	data *store.Store
}

// NewMemory returns an empty in-memory live store.
func NewMemory() *Memory {
	return &Memory{data: store.New()}
}

var _ Reader = (*Memory)(nil)
var _ Importer = (*Memory)(nil)

// Seed writes an entry directly, bypassing the import path.
func (m *Memory) Seed(sectionPath, name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Set(sectionPath, name, value)
}

// SeedSection records an empty section directly.
func (m *Memory) SeedSection(sectionPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.AddSection(sectionPath)
}

// Snapshot returns a copy of the subtree at rootPath, or nil when neither
// the root nor any descendant section exists.
func (m *Memory) Snapshot(ctx context.Context, rootPath string, view View) (*store.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := store.New()
	found := false
	for _, path := range m.data.Paths() {
		if path != rootPath && !underRoot(rootPath, path) {
			continue
		}
		found = true
		snapshot.AddSection(path)
		sec, _ := m.data.Section(path)
		for _, name := range sec.Names() {
			v, _ := sec.Value(name)
			snapshot.Set(path, name, v)
		}
	}

	if !found {
		return nil, nil
	}
	return snapshot, nil
}

// Import parses the artifact at artifactPath and merges every section and
// entry into the store.
func (m *Memory) Import(ctx context.Context, artifactPath string, view View) error {
	parsed, err := regfile.ParseFile(artifactPath)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range parsed.Paths() {
		m.data.AddSection(path)
		sec, _ := parsed.Section(path)
		for _, name := range sec.Names() {
			v, _ := sec.Value(name)
			m.data.Set(path, name, v)
		}
	}
	return nil
}

func underRoot(root, path string) bool {
	return len(path) > len(root) && path[:len(root)] == root && path[len(root)] == '\\'
}
