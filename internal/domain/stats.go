package domain

// Stats holds cross-session usage counters contributed by the tool itself,
// distinct from history-derived counts. Mutated only after a successful run.
type Stats struct {
	TotalExecutions   int              `json:"total_executions"`
	SessionCount      int              `json:"session_count"`
	CommandExecutions map[string]int   `json:"command_executions"`
	LastUsed          map[string]int64 `json:"last_used"`
}

// NewStats returns a zero-valued Stats with allocated maps.
func NewStats() Stats {
	return Stats{
		CommandExecutions: make(map[string]int),
		LastUsed:          make(map[string]int64),
	}
}

// RecordExecution bumps the counters for one run of command at the given
// epoch-seconds timestamp.
func (s *Stats) RecordExecution(command string, epoch int64) {
	if s.CommandExecutions == nil {
		s.CommandExecutions = make(map[string]int)
	}
	if s.LastUsed == nil {
		s.LastUsed = make(map[string]int64)
	}
	s.CommandExecutions[command]++
	s.TotalExecutions++
	if epoch > s.LastUsed[command] {
		s.LastUsed[command] = epoch
	}
}
