package schedule

import (
	"fmt"
	"sync"
	"time"

	"navette-backend/internal/models"
)

// Row is one worker's week: the worker name, one free-text cell per weekday
// in Monday..Sunday order, and the trailing qualification field (opaque to
// the engine, carried through for display).
type Row struct {
	Worker        string    `json:"worker"`
	Cells         [7]string `json:"cells"`
	Qualification string    `json:"qualification"`
}

// Store holds the currently loaded weekly schedule and its resolved date
// map. There is exactly one loaded schedule at a time; loading a new one
// replaces rows and dates together so they can never disagree.
//
// The store is passed explicitly into handlers, no package-level session
// state.
type Store struct {
	mu    sync.RWMutex
	rows  []Row
	dates DateMap
}

// NewStore returns an empty store. Dates still resolve via the weekday
// fallback so date lookups work before any schedule is loaded.
func NewStore() *Store {
	return &Store{dates: ResolveDates(nil, time.Now())}
}

// Load replaces the current schedule. dateHints is the second header row
// (one cell per weekday, Monday first); it may be nil.
func (s *Store) Load(rows []Row, dateHints []string, now time.Time) error {
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Worker == "" {
			return fmt.Errorf("schedule row with empty worker name")
		}
		if seen[row.Worker] {
			return fmt.Errorf("duplicate worker %q in schedule", row.Worker)
		}
		seen[row.Worker] = true
	}

	dates := ResolveDates(dateHints, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.dates = dates
	return nil
}

// Rows returns a copy of the loaded schedule rows.
func (s *Store) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Dates returns the resolved date map for the loaded schedule.
func (s *Store) Dates() DateMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(DateMap, len(s.dates))
	for k, v := range s.dates {
		out[k] = v
	}
	return out
}

// DateFor returns the resolved date for one weekday label.
func (s *Store) DateFor(day string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.dates[day]; ok {
		return d
	}
	return NextOccurrence(day, time.Now())
}

// Loaded reports whether a schedule has been loaded this session.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows) > 0
}

// WorkerNames returns the ordered worker names of the loaded schedule.
func (s *Store) WorkerNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.rows))
	for _, row := range s.rows {
		names = append(names, row.Worker)
	}
	return names
}

// Classify runs one classification pass over the loaded schedule.
func (s *Store) Classify(profiles ProfileLookup, opts ClassifyOptions) (pickups, dropoffs []models.DispatchEvent) {
	return Classify(s.Rows(), s.Dates(), profiles, opts)
}
