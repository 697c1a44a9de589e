package stats

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// SQLiteLog records one row per executed command in dir/executions.db. When
// the database cannot be opened the log degrades to a no-op: execution-event
// persistence is never allowed to break the tool.
type SQLiteLog struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteLog opens (or creates) the execution log database.
func NewSQLiteLog(dir string) *SQLiteLog {
	path := filepath.Join(dir, "executions.db")
	_ = os.MkdirAll(dir, domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteLog{path: path}
	}
	log := &SQLiteLog{db: db, path: path}
	if err := log.init(); err != nil {
		_ = db.Close()
		return &SQLiteLog{path: path}
	}
	return log
}

func (l *SQLiteLog) init() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		command TEXT,
		category TEXT,
		exit_code INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Append implements ports.ExecutionLog.
func (l *SQLiteLog) Append(event domain.ExecutionEvent) error {
	if l.db == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.db.Exec(`INSERT INTO executions
		(timestamp, command, category, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?)`,
		event.Timestamp.Format(time.RFC3339),
		event.Command,
		event.Category,
		event.ExitCode,
		event.DurationMS,
	)
	return err
}

// Recent implements ports.ExecutionLog, newest first.
func (l *SQLiteLog) Recent(limit int) ([]domain.ExecutionEvent, error) {
	if l.db == nil {
		return nil, nil
	}
	rows, err := l.db.Query(`SELECT timestamp, command, category, exit_code, duration_ms
		FROM executions ORDER BY datetime(timestamp) DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []domain.ExecutionEvent
	for rows.Next() {
		var ev domain.ExecutionEvent
		var ts string
		if err := rows.Scan(&ts, &ev.Command, &ev.Category, &ev.ExitCode, &ev.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			ev.Timestamp = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Path returns the sqlite database path.
func (l *SQLiteLog) Path() string {
	return l.path
}

// Close implements ports.ExecutionLog.
func (l *SQLiteLog) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

var _ ports.ExecutionLog = (*SQLiteLog)(nil)
