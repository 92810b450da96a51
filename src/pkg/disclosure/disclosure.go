// Package disclosure tracks the expanded/collapsed state of the file sections of a diff view.
package disclosure

import (
	"fmt"
	"strconv"
)

// Keying selects what a section's expansion state is attached to
type Keying string

const (
	// KeyByPosition attaches state to the section's index in the list.
	// Replacing the list resets everything.
	KeyByPosition Keying = "position"
	// KeyByPath attaches state to the file path. Replacing the list keeps
	// the state of paths that are still present.
	KeyByPath Keying = "path"
)

// ParseKeying validates a keying name; "" selects KeyByPosition
func ParseKeying(s string) (Keying, error) {
	switch Keying(s) {
	case "", KeyByPosition:
		return KeyByPosition, nil
	case KeyByPath:
		return KeyByPath, nil
	default:
		return "", fmt.Errorf("unknown disclosure keying %q (expected %q or %q)", s, KeyByPosition, KeyByPath)
	}
}

// State holds one expanded flag per section. Sections default to collapsed.
// The zero value is not usable; use New.
type State struct {
	keying Keying
	paths  []string
	open   map[string]bool
}

// New creates an empty state with the given keying
func New(keying Keying) *State {
	if keying == "" {
		keying = KeyByPosition
	}
	return &State{
		keying: keying,
		open:   make(map[string]bool),
	}
}

// Keying returns the configured keying
func (s *State) Keying() Keying {
	return s.keying
}

// Len returns the number of sections tracked
func (s *State) Len() int {
	return len(s.paths)
}

// Reset is called whenever the file list is replaced
func (s *State) Reset(paths []string) {
	next := make(map[string]bool)
	if s.keying == KeyByPath {
		for _, p := range paths {
			if s.open[p] {
				next[p] = true
			}
		}
	}
	s.paths = append([]string(nil), paths...)
	s.open = next
}

// IsOpen reports whether section i is expanded. Out-of-range indexes are collapsed.
func (s *State) IsOpen(i int) bool {
	if s == nil || i < 0 || i >= len(s.paths) {
		return false
	}
	return s.open[s.key(i)]
}

// Toggle flips section i and returns its new state
func (s *State) Toggle(i int) bool {
	if i < 0 || i >= len(s.paths) {
		return false
	}
	k := s.key(i)
	s.open[k] = !s.open[k]
	if !s.open[k] {
		delete(s.open, k)
	}
	return s.open[k]
}

// SetAll expands or collapses every section
func (s *State) SetAll(open bool) {
	s.open = make(map[string]bool)
	if !open {
		return
	}
	for i := range s.paths {
		s.open[s.key(i)] = true
	}
}

func (s *State) key(i int) string {
	if s.keying == KeyByPath {
		return s.paths[i]
	}
	return strconv.Itoa(i)
}
