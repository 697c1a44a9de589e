package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/infrastructure/executor"
	"github.com/doeshing/cmdmenu/internal/ports"
)

type fakeSource struct {
	records []domain.HistoryRecord
}

func (f *fakeSource) Dialect() domain.ShellName { return domain.ShellZsh }
func (f *fakeSource) Read(context.Context) (domain.ParseOutcome, error) {
	return domain.ParseOutcome{Records: f.records}, nil
}

type fakeStats struct {
	saved domain.Stats
}

func (f *fakeStats) Load() (domain.Stats, error) { return domain.NewStats(), nil }
func (f *fakeStats) Save(s domain.Stats) error   { f.saved = s; return nil }
func (f *fakeStats) Path() string                { return "stats.json" }

type fakeLog struct {
	events []domain.ExecutionEvent
}

func (f *fakeLog) Append(ev domain.ExecutionEvent) error {
	f.events = append(f.events, ev)
	return nil
}
func (f *fakeLog) Recent(int) ([]domain.ExecutionEvent, error) { return f.events, nil }
func (f *fakeLog) Close() error                                { return nil }

type fakeSecurity struct{}

func (fakeSecurity) Evaluate(command string) (domain.RiskAssessment, error) {
	if command == "rm -rf /" {
		return domain.RiskAssessment{
			Level:   domain.RiskCritical,
			Action:  domain.ActionBlock,
			Reasons: []string{"Deleting root directory"},
		}, nil
	}
	if command == "sudo reboot" {
		return domain.RiskAssessment{
			Level:   domain.RiskHigh,
			Action:  domain.ActionExplicitConfirm,
			Reasons: []string{"Rebooting the machine"},
		}, nil
	}
	return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func testService(t *testing.T, commands []string, cfg domain.Config) *menu.Service {
	t.Helper()
	records := make([]domain.HistoryRecord, len(commands))
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, c := range commands {
		records[i] = domain.HistoryRecord{Command: c, Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}
	svc := &menu.Service{
		Sources: func(domain.ShellName) (ports.HistorySource, error) {
			return &fakeSource{records: records}, nil
		},
		Config:    cfg,
		StatsRepo: &fakeStats{},
		ExecLog:   &fakeLog{},
		Security:  fakeSecurity{},
		Executor:  executor.NewShellExecutor("/bin/sh", false),
		Logger:    nopLogger{},
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return svc
}

func testConfig() domain.Config {
	return domain.Config{
		MaxCommands:      100,
		ConfirmExecution: true,
		SortMethod:       domain.SortFrequency,
		Shell:            "zsh",
	}
}

func newTestModel(t *testing.T, commands []string, cfg domain.Config) *Model {
	t.Helper()
	svc := testService(t, commands, cfg)
	built, err := svc.BuildMenu(context.Background())
	if err != nil {
		t.Fatalf("BuildMenu: %v", err)
	}
	m := NewModel(svc, built)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *Model, msg tea.KeyMsg) *Model {
	next, _ := m.Update(msg)
	return next.(*Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorNavigationClamps(t *testing.T) {
	m := newTestModel(t, []string{"git status", "docker ps", "make test"}, testConfig())

	if m.Cursor() != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.Cursor())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Fatalf("cursor moved above top: %d", m.Cursor())
	}
	for i := 0; i < 10; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor() != len(m.Visible())-1 {
		t.Fatalf("cursor = %d, want %d (clamped to bottom)", m.Cursor(), len(m.Visible())-1)
	}
}

func TestCursorSingleEntry(t *testing.T) {
	m := newTestModel(t, []string{"git status"}, testConfig())
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", m.Cursor())
	}
}

func TestSearchFiltersAndRestores(t *testing.T) {
	m := newTestModel(t, []string{"git status", "git stash", "docker ps"}, testConfig())

	m = press(m, runes("/"))
	if m.CurrentMode() != ModeSearching {
		t.Fatalf("mode = %v, want Searching", m.CurrentMode())
	}

	m = press(m, runes("git"))
	if len(m.Visible()) != 2 {
		t.Fatalf("filtered list has %d entries, want 2", len(m.Visible()))
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.CurrentMode() != ModeBrowsing {
		t.Fatalf("mode = %v, want Browsing after esc", m.CurrentMode())
	}
	if len(m.Visible()) != 3 {
		t.Fatalf("esc must restore the full list, got %d entries", len(m.Visible()))
	}
	if m.Cursor() < 0 || m.Cursor() >= len(m.Visible()) {
		t.Fatalf("cursor %d out of bounds after restore", m.Cursor())
	}
}

func TestSearchNoMatchesCursorIsNegative(t *testing.T) {
	m := newTestModel(t, []string{"git status"}, testConfig())
	m = press(m, runes("/"))
	m = press(m, runes("zzzz"))
	if len(m.Visible()) != 0 {
		t.Fatalf("expected no matches, got %v", m.Visible())
	}
	if m.Cursor() != -1 {
		t.Fatalf("cursor = %d, want -1 for empty list", m.Cursor())
	}
	// Enter on an empty list must be a no-op.
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentMode() != ModeSearching {
		t.Fatalf("mode = %v, want Searching", m.CurrentMode())
	}
}

func TestSelectRequiresConfirmation(t *testing.T) {
	m := newTestModel(t, []string{"git status"}, testConfig())
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentMode() != ModeConfirming {
		t.Fatalf("mode = %v, want Confirming when confirm_execution is on", m.CurrentMode())
	}
}

func TestDenyReturnsToPriorMode(t *testing.T) {
	m := newTestModel(t, []string{"git status", "git stash"}, testConfig())

	m = press(m, runes("/"))
	m = press(m, runes("stash"))
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentMode() != ModeConfirming {
		t.Fatalf("mode = %v, want Confirming", m.CurrentMode())
	}

	m = press(m, runes("n"))
	if m.CurrentMode() != ModeSearching {
		t.Fatalf("deny must return to Searching, got %v", m.CurrentMode())
	}
}

func TestDestructiveCommandForcesConfirmation(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmExecution = false
	cfg.ExcludedPatterns = nil
	m := newTestModel(t, []string{"rm -rf /"}, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentMode() != ModeConfirming {
		t.Fatalf("destructive command must confirm even with confirm_execution off, got mode %v", m.CurrentMode())
	}
}

func TestBlockedCommandNeverLaunches(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmExecution = false
	cfg.ExcludedPatterns = nil
	m := newTestModel(t, []string{"rm -rf /"}, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	// Affirming a blocked command must not start anything.
	next, cmd := m.Update(runes("y"))
	m = next.(*Model)
	if cmd != nil {
		t.Fatal("blocked command produced a launch command")
	}
	if m.CurrentMode() != ModeConfirming {
		t.Fatalf("mode = %v, want still Confirming", m.CurrentMode())
	}

	m = press(m, runes("n"))
	if m.CurrentMode() != ModeBrowsing {
		t.Fatalf("deny must return to Browsing, got %v", m.CurrentMode())
	}
	if m.Executed() != nil {
		t.Fatal("blocked command was recorded as executed")
	}
}

func TestExplicitConfirmLaunchesOnAffirm(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmExecution = false
	cfg.ExcludedPatterns = nil
	m := newTestModel(t, []string{"sudo reboot"}, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentMode() != ModeConfirming {
		t.Fatalf("mode = %v, want Confirming", m.CurrentMode())
	}
	_, cmd := m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("affirm must produce the exec command")
	}
}

func TestRefreshSwapsMenuAtomically(t *testing.T) {
	m := newTestModel(t, []string{"git status", "docker ps"}, testConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(*Model)
	if cmd == nil {
		t.Fatal("refresh must produce a command")
	}
	msg := cmd()
	loaded, ok := msg.(menuLoadedMsg)
	if !ok {
		t.Fatalf("refresh produced %T, want menuLoadedMsg", msg)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	before := m.Cursor()

	next, _ = m.Update(loaded)
	m = next.(*Model)
	if len(m.Visible()) != 2 {
		t.Fatalf("visible = %d entries after refresh, want 2", len(m.Visible()))
	}
	if m.Cursor() < 0 || m.Cursor() >= len(m.Visible()) {
		t.Fatalf("cursor %d out of bounds after refresh (was %d)", m.Cursor(), before)
	}
}

func TestExecFinishedRecordsAndQuits(t *testing.T) {
	cfg := testConfig()
	m := newTestModel(t, []string{"git status"}, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("affirm must produce the exec command")
	}

	next, quit := m.Update(execFinishedMsg{err: nil})
	m = next.(*Model)
	if quit == nil {
		t.Fatal("finishing execution must quit the program")
	}
	if m.Executed() == nil || m.Executed().Text != "git status" {
		t.Fatalf("executed entry not recorded: %+v", m.Executed())
	}
	if m.ExitCode() != 0 {
		t.Fatalf("ExitCode = %d, want 0", m.ExitCode())
	}

	log := m.service.ExecLog.(*fakeLog)
	if len(log.events) != 1 || log.events[0].Command != "git status" {
		t.Fatalf("execution log not written: %+v", log.events)
	}
}
