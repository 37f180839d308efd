// Package mutelist implements the persistent set of muted group IDs.
//
// The backing file is a flat JSON object whose keys are group identifiers
// and whose values are truthy markers. The full mapping is loaded once at
// startup and rewritten on every effective mutation.
package mutelist

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Store holds the in-memory mute-list and its backing file path.
type Store struct {
	mu     sync.Mutex
	path   string
	groups map[string]bool
}

// Load reads the mute-list file at path. The file must exist and contain a
// valid JSON object; a bot without a readable mute-list must not start, so
// there is no recovery path here. An empty object `{}` is a valid file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mute-list: %w", err)
	}

	groups := make(map[string]bool)
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse mute-list %s: %w", path, err)
	}

	return &Store{path: path, groups: groups}, nil
}

// Contains reports whether groupID is muted.
func (s *Store) Contains(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups[groupID]
}

// Mute adds groupID to the mute-list and persists it. Muting an already
// muted group is a no-op and does not touch the file.
func (s *Store) Mute(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.groups[groupID] {
		return nil
	}
	s.groups[groupID] = true
	return s.save()
}

// Unmute removes groupID from the mute-list and persists it. Unmuting a
// group that is not muted is a no-op and does not touch the file.
func (s *Store) Unmute(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groups[groupID] {
		return nil
	}
	delete(s.groups, groupID)
	return s.save()
}

// Muted returns all muted group IDs in sorted order.
func (s *Store) Muted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// save rewrites the whole file. Callers must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.groups, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal mute-list: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write mute-list: %w", err)
	}
	return nil
}
