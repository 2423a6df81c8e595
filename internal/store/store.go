package store

import (
	"strings"
)

// Store is an ordered two-level key/value snapshot: section paths mapping to
// named entries. It represents either a desired configuration (parsed from a
// registry-export artifact) or an observed one (exported from the live
// store). Insertion order is preserved at both levels so reports and rendered
// output follow the source artifact.
//
// A nil *Store means "no such store": the target location does not exist at
// all. This is distinct from an empty Store, which exists but holds no
// sections. Consumers must not collapse the two.
//
// Stores are built once via Set and treated as read-only afterwards.
type Store struct {
	paths    []string
	sections map[string]*Section
}

// Section holds the ordered entries beneath a single section path.
type Section struct {
	names  []string
	values map[string]string
}

// New returns an empty Store ready to be populated.
func New() *Store {
	return &Store{sections: make(map[string]*Section)}
}

// AddSection ensures a section exists at path, recording it even when no
// entries follow. Registry exports legitimately contain empty keys.
func (s *Store) AddSection(path string) {
	s.section(path)
}

// Set records an entry value under the given section path, creating the
// section if needed. Setting an existing entry overwrites its value without
// disturbing entry order.
func (s *Store) Set(path, name, value string) {
	sec := s.section(path)
	if _, ok := sec.values[name]; !ok {
		sec.names = append(sec.names, name)
	}
	sec.values[name] = value
}

func (s *Store) section(path string) *Section {
	sec, ok := s.sections[path]
	if !ok {
		sec = &Section{values: make(map[string]string)}
		s.sections[path] = sec
		s.paths = append(s.paths, path)
	}
	return sec
}

// Paths returns the section paths in insertion order.
func (s *Store) Paths() []string {
	if s == nil {
		return nil
	}
	return s.paths
}

// Section returns the section at path, or false when absent. Safe to call on
// a nil Store.
func (s *Store) Section(path string) (*Section, bool) {
	if s == nil {
		return nil, false
	}
	sec, ok := s.sections[path]
	return sec, ok
}

// Len reports the number of sections.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Names returns the entry names of the section in insertion order.
func (sec *Section) Names() []string {
	if sec == nil {
		return nil
	}
	return sec.names
}

// Value returns the entry value for name, or false when the section has no
// such entry.
func (sec *Section) Value(name string) (string, bool) {
	if sec == nil {
		return "", false
	}
	v, ok := sec.values[name]
	return v, ok
}

// Len reports the number of entries in the section.
func (sec *Section) Len() int {
	if sec == nil {
		return 0
	}
	return len(sec.names)
}

// RootOf returns the first component of a backslash-separated section path.
func RootOf(path string) string {
	if idx := strings.IndexByte(path, '\\'); idx >= 0 {
		return path[:idx]
	}
	return path
}

// Roots returns, in order of first appearance, the minimal section paths of
// the store: paths that no other section path strictly contains as a key
// prefix. A registry artifact anchored at a single key has exactly one root.
func (s *Store) Roots() []string {
	if s == nil {
		return nil
	}

	var roots []string
	for _, candidate := range s.paths {
		minimal := true
		for _, other := range s.paths {
			if other != candidate && isKeyPrefix(other, candidate) {
				minimal = false
				break
			}
		}
		if minimal && !containsPath(roots, candidate) {
			roots = append(roots, candidate)
		}
	}
	return roots
}

// isKeyPrefix reports whether prefix names an ancestor key of path.
func isKeyPrefix(prefix, path string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) > len(prefix) && path[len(prefix)] == '\\'
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
