// Package kb holds the closed category set and the per-category knowledge
// fragments used to build specialist prompts. Fragments ship embedded and can
// be overridden from a JSON5 file, hot-reloaded on change.
package kb

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/titanous/json5"
)

// Category labels. The set is closed: router output outside this set is
// remapped to LabelOther.
const (
	LabelGeneral     = "general"
	LabelEntrance    = "entrance"
	LabelAttractions = "attractions"
	LabelBirthday    = "birthday"
	LabelBooking     = "booking"
	LabelMenu        = "menu"
	LabelDrinks      = "drinks"
	LabelRamadan     = "ramadan"
	LabelVacancy     = "vacancy"
	LabelComplaint   = "complaint"
	LabelOther       = "other"
)

// Labels lists every known category, in router prompt order.
var Labels = []string{
	LabelGeneral, LabelEntrance, LabelAttractions, LabelBirthday,
	LabelBooking, LabelMenu, LabelDrinks, LabelRamadan,
	LabelVacancy, LabelComplaint, LabelOther,
}

// Store serves category fragments and the router category description.
// Safe for concurrent use; Reload swaps the snapshot atomically.
type Store struct {
	mu          sync.RWMutex
	fragments   map[string]string
	description string
}

// fileFormat is the JSON5 override file shape.
type fileFormat struct {
	Description string            `json:"description"`
	Fragments   map[string]string `json:"fragments"`
}

// NewStore returns a Store seeded with the embedded defaults.
func NewStore() *Store {
	return &Store{
		fragments:   defaultFragments(),
		description: defaultDescription,
	}
}

// Known reports whether label is a member of the closed category set.
func (s *Store) Known(label string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.fragments[label]
	return ok
}

// Fragment returns the knowledge text for label, falling back to the
// "other" fragment for unknown labels.
func (s *Store) Fragment(label string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.fragments[label]; ok {
		return f
	}
	return s.fragments[LabelOther]
}

// Description returns the category description block for the router prompt.
func (s *Store) Description() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.description
}

// LoadFile overlays fragments from a JSON5 file onto the embedded defaults.
// Unknown labels in the file are rejected; the category set is closed.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read knowledge file: %w", err)
	}

	var ff fileFormat
	if err := json5.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("parse knowledge file: %w", err)
	}

	merged := defaultFragments()
	for label, text := range ff.Fragments {
		if _, ok := merged[label]; !ok {
			return fmt.Errorf("unknown category %q in knowledge file", label)
		}
		if strings.TrimSpace(text) != "" {
			merged[label] = text
		}
	}

	s.mu.Lock()
	s.fragments = merged
	if strings.TrimSpace(ff.Description) != "" {
		s.description = ff.Description
	}
	s.mu.Unlock()
	return nil
}
