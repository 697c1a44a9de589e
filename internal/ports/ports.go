// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// These interfaces establish the contract between the application core and
// external adapters. The application depends on abstractions; concrete
// implementations live in the infrastructure layer.
package ports

import (
	"context"
	"os/exec"

	"github.com/doeshing/cmdmenu/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/cmdmenu/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistorySource reads and parses a shell history file into raw records.
// Implementations resolve the dialect-specific path and tolerate malformed
// individual records.
type HistorySource interface {
	// Dialect returns the concrete dialect the source resolved to.
	Dialect() domain.ShellName
	// Read performs one full blocking parse pass over the history file.
	Read(context.Context) (domain.ParseOutcome, error)
}

// StatsRepository persists cross-session usage counters.
type StatsRepository interface {
	Load() (domain.Stats, error)
	Save(domain.Stats) error
	Path() string
}

// ExecutionLog records one row per command run through the menu.
type ExecutionLog interface {
	Append(domain.ExecutionEvent) error
	Recent(limit int) ([]domain.ExecutionEvent, error)
	Close() error
}

// SecurityService evaluates commands against destructive-pattern signatures.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// CommandExecutor prepares selected commands for execution in the user's
// shell. The interactive loop hands the prepared process to the terminal
// (tea.ExecProcess); Prepare must therefore not start anything itself.
type CommandExecutor interface {
	// Prepare expands known aliases and builds the shell invocation for the
	// given command text. The returned process inherits the caller's streams.
	Prepare(command string) *exec.Cmd
	// Expand applies the alias table without building a process.
	Expand(command string) string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
