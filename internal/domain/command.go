// Package domain defines core business entities and value objects for cmdmenu.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures: parsed history records, aggregated
// command entries, configuration, and usage statistics.
package domain

import "time"

// HistoryRecord is one raw entry read from a shell history file. Records are
// transient: they exist only for the duration of a single parse pass and are
// discarded once aggregation completes.
type HistoryRecord struct {
	Command   string
	Timestamp time.Time
}

// CommandEntry is the aggregated, user-facing unit: one entry per distinct
// normalized command text within a session.
type CommandEntry struct {
	Text     string
	Count    int
	LastUsed time.Time
	Category string
}

// SortMethod enumerates the supported display orderings.
type SortMethod string

const (
	SortFrequency    SortMethod = "frequency"
	SortRecency      SortMethod = "recency"
	SortAlphabetical SortMethod = "alphabetical"
)

// ValidSortMethod reports whether the given value names a known ordering.
func ValidSortMethod(m SortMethod) bool {
	switch m {
	case SortFrequency, SortRecency, SortAlphabetical:
		return true
	}
	return false
}

// ParseOutcome carries a parse pass result plus its non-fatal anomaly count.
// Anomalies (malformed individual records) are a debug surface only.
type ParseOutcome struct {
	Records   []HistoryRecord
	Anomalies int
}

// ExecutionEvent is one command run performed through the menu, recorded in
// the execution log after the child process finishes.
type ExecutionEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Command    string    `json:"command"`
	Category   string    `json:"category"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
}
