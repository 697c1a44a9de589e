// Package stats persists cross-session usage counters and the per-run
// execution log.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// FileStore keeps the usage counters in a JSON file next to the config.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at dir/stats.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "stats.json")}
}

// Load implements ports.StatsRepository. A missing file yields zero-valued
// stats; a corrupt file is an error the caller may degrade on.
func (f *FileStore) Load() (domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewStats(), nil
		}
		return domain.NewStats(), err
	}
	var s domain.Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.NewStats(), fmt.Errorf("stats %s is malformed: %w", f.path, err)
	}
	if s.CommandExecutions == nil {
		s.CommandExecutions = make(map[string]int)
	}
	if s.LastUsed == nil {
		s.LastUsed = make(map[string]int64)
	}
	return s, nil
}

// Save implements ports.StatsRepository.
func (f *FileStore) Save(s domain.Stats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, domain.SecureFilePermissions)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.StatsRepository = (*FileStore)(nil)
