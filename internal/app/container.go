// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"fmt"

	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/infrastructure/config"
	"github.com/doeshing/cmdmenu/internal/infrastructure/executor"
	"github.com/doeshing/cmdmenu/internal/infrastructure/history"
	"github.com/doeshing/cmdmenu/internal/infrastructure/security"
	"github.com/doeshing/cmdmenu/internal/infrastructure/stats"
	"github.com/doeshing/cmdmenu/internal/pkg/logger"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// BuildOptions carries command-line overrides into the dependency graph.
type BuildOptions struct {
	Verbose       bool
	ShellOverride string
	MaxCommands   int
	NoConfirm     bool
}

// Container holds the wired dependency graph.
type Container struct {
	MenuService  *menu.Service
	ConfigLoader *config.FileLoader
	StatsStore   *stats.FileStore
	ExecLog      *stats.SQLiteLog
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph. Configuration errors are
// fatal; everything else degrades.
func BuildContainer(ctx context.Context, opts BuildOptions) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg = applyOverrides(cfg, opts)

	log := logger.NewStd(opts.Verbose)

	statsStore := stats.NewFileStore(cfgLoader.Dir())
	execLog := stats.NewSQLiteLog(cfgLoader.Dir())

	// The guardrail is never fully off: security.enabled only controls
	// whether the user's custom rules file is consulted on top of the
	// embedded destructive-pattern defaults.
	rulesFile := ""
	if cfg.Security.Enabled {
		rulesFile = cfg.Security.RulesFile
	}
	guardrail, err := security.NewGuardrail(rulesFile)
	if err != nil {
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, fmt.Errorf("guardrail init: %w", err)
		}
	}

	shell := cfg.Execution.Shell
	menuService := &menu.Service{
		Sources: func(dialect domain.ShellName) (ports.HistorySource, error) {
			return history.NewFileSource(dialect)
		},
		Config:    cfg,
		StatsRepo: statsStore,
		ExecLog:   execLog,
		Security:  guardrail,
		Executor:  executor.NewShellExecutor(shell, cfg.Execution.ExpandAliases),
		Logger:    log,
	}

	return &Container{
		MenuService:  menuService,
		ConfigLoader: cfgLoader,
		StatsStore:   statsStore,
		ExecLog:      execLog,
		Logger:       log,
	}, nil
}

func applyOverrides(cfg domain.Config, opts BuildOptions) domain.Config {
	if opts.ShellOverride != "" {
		cfg.Shell = opts.ShellOverride
	}
	if opts.MaxCommands > 0 {
		cfg.MaxCommands = opts.MaxCommands
	}
	if opts.NoConfirm {
		cfg.ConfirmExecution = false
	}
	return cfg
}
