// Package config loads and persists the cmdmenu YAML configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/cmdmenu/assets"
	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/pkg/filesystem"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// FileLoader loads YAML configuration from ~/.config/cmdmenu/config.yaml
// (overridable via CMDMENU_CONFIG or an explicit path).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path means resolve from the
// environment.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is replaced with the
// embedded defaults; a malformed file is a fatal configuration error.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("config %s is malformed: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := ensureConfigDir(l.resolvePath()); err != nil {
		return err
	}
	return os.WriteFile(l.resolvePath(), raw, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Dir returns the configuration directory holding config, stats and the
// execution log.
func (l *FileLoader) Dir() string {
	return filepath.Dir(l.resolvePath())
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("CMDMENU_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(configHome(), "cmdmenu", "config.yaml")
}

// configHome honors XDG_CONFIG_HOME and falls back to ~/.config.
func configHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(filesystem.UserHomeDir(), ".config")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func validate(cfg domain.Config) error {
	if !domain.ValidSortMethod(cfg.SortMethod) {
		return fmt.Errorf("unknown sort_method %q (want frequency, recency or alphabetical)", cfg.SortMethod)
	}
	if cfg.MaxCommands <= 0 {
		return fmt.Errorf("max_commands must be positive, got %d", cfg.MaxCommands)
	}
	if cfg.Shell != "" && !domain.ValidShellName(domain.ShellName(cfg.Shell)) {
		return fmt.Errorf("unknown shell %q (want auto, zsh, bash or fish)", cfg.Shell)
	}
	return nil
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Fallback if the embedded YAML is ever corrupted.
		return hydrateDefaults(domain.Config{ConfigFormatVersion: "1", ConfirmExecution: true})
	}
	if strings.HasPrefix(cfg.Security.RulesFile, "~/") {
		cfg.Security.RulesFile = filepath.Join(filesystem.UserHomeDir(), cfg.Security.RulesFile[2:])
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.MaxCommands == 0 {
		cfg.MaxCommands = domain.DefaultMaxCommands
	}
	if cfg.SortMethod == "" {
		cfg.SortMethod = domain.SortFrequency
	}
	if cfg.Shell == "" {
		cfg.Shell = string(domain.ShellAuto)
	}
	if cfg.ExcludedPatterns == nil {
		cfg.ExcludedPatterns = []string{"ls", "cd", "pwd", "clear", "exit"}
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// DefaultConfig exposes the bootstrap configuration template.
func DefaultConfig() domain.Config {
	return defaultConfig()
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
