package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/ports"
)

// ErrNoHistory is returned when no shell dialect yields any readable history.
var ErrNoHistory = errors.New("no readable shell history for any dialect")

// SourceFactory builds a history source for one dialect.
type SourceFactory func(domain.ShellName) (ports.HistorySource, error)

// Menu is one fully-built session snapshot: the aggregated entry set plus the
// ranked view handed to the picker. Refresh builds a whole new Menu so the UI
// never observes a partially-rebuilt list.
type Menu struct {
	Dialect   domain.ShellName
	Entries   []domain.CommandEntry // aggregated, pre-ranking
	Ranked    []domain.CommandEntry // post filter/sort/cap
	Anomalies int
}

// Service orchestrates the parse → aggregate → rank pass and records
// execution events. It owns no goroutines: every operation is a synchronous
// call from the single UI-driving goroutine.
type Service struct {
	Sources   SourceFactory
	Config    domain.Config
	StatsRepo ports.StatsRepository
	ExecLog   ports.ExecutionLog
	Security  ports.SecurityService
	Executor  ports.CommandExecutor
	Logger    ports.Logger

	stats domain.Stats
}

// Start loads persisted stats and counts the session. Stats load failures
// degrade to zero-valued counters.
func (s *Service) Start() error {
	if s.Sources == nil || s.StatsRepo == nil || s.Security == nil || s.Executor == nil || s.Logger == nil {
		return errors.New("menu.Service dependencies not satisfied")
	}
	stats, err := s.StatsRepo.Load()
	if err != nil {
		s.Logger.Warn("stats load failed, starting from zero", map[string]interface{}{"error": err.Error()})
		stats = domain.NewStats()
	}
	stats.SessionCount++
	s.stats = stats
	if err := s.StatsRepo.Save(s.stats); err != nil {
		s.Logger.Warn("stats save failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// Stats returns the current in-memory counters.
func (s *Service) Stats() domain.Stats {
	return s.stats
}

// BuildMenu runs one blocking parse pass and returns the session snapshot.
// With dialect auto, every dialect in the fixed preference order is tried
// until one yields history; only total unavailability is an error.
func (s *Service) BuildMenu(ctx context.Context) (Menu, error) {
	dialect := domain.ShellName(s.Config.Shell)
	outcome, resolved, err := s.readHistory(ctx, dialect)
	if err != nil {
		return Menu{}, err
	}

	entries := Aggregate(outcome.Records, domain.DefaultCategoryRules)
	m := Menu{
		Dialect:   resolved,
		Entries:   entries,
		Ranked:    Rank(entries, s.Config),
		Anomalies: outcome.Anomalies,
	}
	s.Logger.Debug("menu built", map[string]interface{}{
		"dialect":   string(resolved),
		"records":   len(outcome.Records),
		"unique":    len(entries),
		"displayed": len(m.Ranked),
		"anomalies": outcome.Anomalies,
	})
	return m, nil
}

func (s *Service) readHistory(ctx context.Context, dialect domain.ShellName) (domain.ParseOutcome, domain.ShellName, error) {
	if dialect != "" && dialect != domain.ShellAuto {
		src, err := s.Sources(dialect)
		if err != nil {
			return domain.ParseOutcome{}, dialect, fmt.Errorf("%w: %v", ErrNoHistory, err)
		}
		outcome, err := src.Read(ctx)
		if err != nil {
			return domain.ParseOutcome{}, dialect, fmt.Errorf("%w: %v", ErrNoHistory, err)
		}
		return outcome, src.Dialect(), nil
	}

	// Auto: detected dialect first, then the remaining preference order.
	tried := make(map[domain.ShellName]bool)
	if src, err := s.Sources(domain.ShellAuto); err == nil {
		tried[src.Dialect()] = true
		if outcome, err := src.Read(ctx); err == nil {
			return outcome, src.Dialect(), nil
		} else if ctx.Err() != nil {
			return domain.ParseOutcome{}, src.Dialect(), err
		}
	}
	for _, d := range domain.DialectPreference {
		if tried[d] {
			continue
		}
		src, err := s.Sources(d)
		if err != nil {
			continue
		}
		outcome, err := src.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return domain.ParseOutcome{}, d, err
			}
			continue
		}
		return outcome, d, nil
	}
	return domain.ParseOutcome{}, domain.ShellAuto, ErrNoHistory
}

// Assess evaluates the guardrail for a candidate command.
func (s *Service) Assess(command string) domain.RiskAssessment {
	assessment, err := s.Security.Evaluate(command)
	if err != nil {
		s.Logger.Warn("guardrail evaluation failed, forcing confirmation", map[string]interface{}{"error": err.Error()})
		return domain.RiskAssessment{
			Level:   domain.RiskMedium,
			Action:  domain.ActionConfirm,
			Reasons: []string{"guardrail unavailable"},
		}
	}
	return assessment
}

// RecordExecution persists one finished run: counters, stats file and the
// execution log row. Persistence failures are logged and swallowed so they
// never mask the executed command's exit status.
func (s *Service) RecordExecution(command, category string, exitCode int, duration time.Duration) {
	now := time.Now()
	s.stats.RecordExecution(command, now.Unix())
	if err := s.StatsRepo.Save(s.stats); err != nil {
		s.Logger.Warn("stats save failed", map[string]interface{}{"error": err.Error()})
	}
	if s.ExecLog == nil {
		return
	}
	err := s.ExecLog.Append(domain.ExecutionEvent{
		Timestamp:  now,
		Command:    command,
		Category:   category,
		ExitCode:   exitCode,
		DurationMS: duration.Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("execution log append failed", map[string]interface{}{"error": err.Error()})
	}
}

// Flush writes pending stats before shutdown.
func (s *Service) Flush() {
	if err := s.StatsRepo.Save(s.stats); err != nil {
		s.Logger.Warn("stats flush failed", map[string]interface{}{"error": err.Error()})
	}
	if s.ExecLog != nil {
		if err := s.ExecLog.Close(); err != nil {
			s.Logger.Warn("execution log close failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
