// Package history locates and parses shell history files for the zsh, bash
// and fish dialects.
package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/pkg/filesystem"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// ErrHistoryUnavailable marks a missing or unreadable history file. It is
// non-fatal per dialect; the caller decides whether total absence is fatal.
var ErrHistoryUnavailable = errors.New("history unavailable")

// FileSource reads one shell history file. The file is never written.
type FileSource struct {
	dialect domain.ShellName
	path    string
}

// NewFileSource resolves the history file for the requested dialect. "auto"
// detects the dialect from $SHELL, then falls back to the fixed preference
// order by file existence.
func NewFileSource(dialect domain.ShellName) (*FileSource, error) {
	if dialect == "" || dialect == domain.ShellAuto {
		dialect = detectShell()
	}
	path := historyPath(dialect)
	if path == "" {
		return nil, fmt.Errorf("%w: no path for dialect %q", ErrHistoryUnavailable, dialect)
	}
	return &FileSource{dialect: dialect, path: path}, nil
}

// NewFileSourceAt builds a source over an explicit file, used by tests and
// the HISTFILE override.
func NewFileSourceAt(dialect domain.ShellName, path string) *FileSource {
	return &FileSource{dialect: dialect, path: path}
}

// Dialect implements ports.HistorySource.
func (s *FileSource) Dialect() domain.ShellName {
	return s.dialect
}

// Path returns the resolved history file path.
func (s *FileSource) Path() string {
	return s.path
}

// Read implements ports.HistorySource: one full blocking parse pass.
// Non-UTF8 bytes are replaced rather than failing the pass.
func (s *FileSource) Read(ctx context.Context) (domain.ParseOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.ParseOutcome{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("%w: %s: %v", ErrHistoryUnavailable, s.path, err)
	}
	text := strings.ToValidUTF8(string(data), "�")

	switch s.dialect {
	case domain.ShellZsh:
		return parseZsh(text), nil
	case domain.ShellBash:
		return parseBash(text), nil
	case domain.ShellFish:
		return parseFish(text), nil
	default:
		return domain.ParseOutcome{}, fmt.Errorf("%w: unsupported dialect %q", ErrHistoryUnavailable, s.dialect)
	}
}

// detectShell inspects $SHELL first, then probes known history files in the
// fixed preference order. Bash is the final fallback.
func detectShell() domain.ShellName {
	shell := filepath.Base(os.Getenv("SHELL"))
	switch {
	case strings.Contains(shell, "zsh"):
		return domain.ShellZsh
	case strings.Contains(shell, "bash"):
		return domain.ShellBash
	case strings.Contains(shell, "fish"):
		return domain.ShellFish
	}
	for _, dialect := range domain.DialectPreference {
		if path := historyPath(dialect); path != "" {
			if _, err := os.Stat(path); err == nil {
				return dialect
			}
		}
	}
	return domain.ShellBash
}

// historyPath returns the canonical history file for the dialect. HISTFILE
// wins for zsh and bash when set.
func historyPath(dialect domain.ShellName) string {
	home := filesystem.UserHomeDir()
	switch dialect {
	case domain.ShellZsh, domain.ShellBash:
		if hf := os.Getenv("HISTFILE"); hf != "" {
			return hf
		}
		if dialect == domain.ShellZsh {
			return filepath.Join(home, ".zsh_history")
		}
		return filepath.Join(home, ".bash_history")
	case domain.ShellFish:
		return filepath.Join(home, ".local", "share", "fish", "fish_history")
	}
	return ""
}

var _ ports.HistorySource = (*FileSource)(nil)
