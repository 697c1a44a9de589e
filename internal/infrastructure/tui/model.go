// Package tui implements the full-screen interactive picker: a searchable,
// navigable list of aggregated history commands with one-key re-execution.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/infrastructure/executor"
)

// Mode is the picker's state machine: Browsing (no active query), Searching
// (query box focused, list live-filtered) and Confirming (a command is chosen
// and awaits confirm/cancel).
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeSearching
	ModeConfirming
)

type menuLoadedMsg struct {
	menu menu.Menu
	err  error
}

type execFinishedMsg struct {
	err error
}

// pendingExec holds the chosen command between confirmation and launch.
type pendingExec struct {
	entry      domain.CommandEntry
	assessment domain.RiskAssessment
	returnMode Mode
	started    time.Time
}

// Model is the bubbletea model for the picker. All state is owned by the
// single UI goroutine; the only blocking operations are the explicit refresh
// pass and handing the terminal to the child process.
type Model struct {
	service *menu.Service

	searchInput textinput.Model
	help        help.Model
	keys        keyMap
	styles      styles

	mode    Mode
	menu    menu.Menu
	visible []domain.CommandEntry
	matches [][]int
	cursor  int
	offset  int

	width     int
	height    int
	showStats bool
	loading   bool
	status    string
	err       error

	pending  *pendingExec
	executed *domain.CommandEntry
	exitCode int
	quitting bool
}

// NewModel builds the picker over an already-built menu snapshot.
func NewModel(service *menu.Service, initial menu.Menu) *Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter commands"
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 40

	m := &Model{
		service:     service,
		searchInput: ti,
		help:        help.New(),
		keys:        keys,
		styles:      newStyles(),
		menu:        initial,
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// ExitCode is the process exit status after the program finishes: the
// executed command's own code, or 0 on plain quit.
func (m *Model) ExitCode() int {
	return m.exitCode
}

// Executed returns the entry that was run, if any.
func (m *Model) Executed() *domain.CommandEntry {
	return m.executed
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case menuLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Atomic swap: the new snapshot replaces the old in one message.
		m.menu = msg.menu
		m.err = nil
		m.status = ""
		m.applyFilter()
		return m, nil

	case execFinishedMsg:
		return m.finishExec(msg.err)

	case tea.KeyMsg:
		switch m.mode {
		case ModeConfirming:
			return m.updateConfirming(msg)
		case ModeSearching:
			return m.updateSearching(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.service.Flush()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearching
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Select):
		return m.selectCurrent(ModeBrowsing)
	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.String() == "k":
		m.moveCursor(-1)
	case msg.String() == "j":
		m.moveCursor(1)
	}
	return m, nil
}

func (m *Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		m.quitting = true
		m.service.Flush()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		// Clear the query and return to browsing, keeping the cursor
		// clamped to the restored list.
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = ModeBrowsing
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		return m.selectCurrent(ModeSearching)
	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *Model) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Affirm):
		if m.pending != nil && m.pending.assessment.Blocked() {
			// Blocked commands have no affirmative path.
			return m, nil
		}
		return m.launch()
	case key.Matches(msg, m.keys.Deny), msg.String() == "ctrl+c":
		prior := ModeBrowsing
		if m.pending != nil {
			prior = m.pending.returnMode
		}
		m.pending = nil
		m.mode = prior
		if prior == ModeSearching {
			m.searchInput.Focus()
		}
		return m, nil
	}
	return m, nil
}

// selectCurrent moves to Confirming when confirmation is required (by config
// or by guardrail), otherwise launches immediately. Blocked commands never
// execute.
func (m *Model) selectCurrent(from Mode) (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return m, nil
	}
	entry := m.visible[m.cursor]
	assessment := m.service.Assess(entry.Text)
	m.pending = &pendingExec{entry: entry, assessment: assessment, returnMode: from}

	if assessment.Blocked() || assessment.RequiresAcknowledgment() || m.service.Config.ConfirmExecution {
		m.mode = ModeConfirming
		m.searchInput.Blur()
		return m, nil
	}
	return m.launch()
}

// launch hands the terminal to the child process via tea.ExecProcess.
func (m *Model) launch() (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, nil
	}
	m.pending.started = time.Now()
	cmd := m.service.Executor.Prepare(m.pending.entry.Text)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return execFinishedMsg{err: err}
	})
}

// finishExec records the run and quits with the child's exit status.
func (m *Model) finishExec(runErr error) (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, tea.Quit
	}
	code := executor.ExitCode(runErr)
	duration := time.Since(m.pending.started)
	entry := m.pending.entry
	m.service.RecordExecution(m.service.Executor.Expand(entry.Text), entry.Category, code, duration)
	m.service.Flush()
	m.executed = &entry
	m.exitCode = code
	m.quitting = true
	m.pending = nil
	return m, tea.Quit
}

// startRefresh re-runs the full parse pass; the result arrives as one
// menuLoadedMsg so the swap is atomic from the UI's point of view.
func (m *Model) startRefresh() (tea.Model, tea.Cmd) {
	m.loading = true
	m.status = "refreshing history..."
	service := m.service
	return m, func() tea.Msg {
		rebuilt, err := service.BuildMenu(context.Background())
		return menuLoadedMsg{menu: rebuilt, err: err}
	}
}

// applyFilter recomputes the visible list from the current query and clamps
// the cursor into the new bounds.
func (m *Model) applyFilter() {
	m.visible, m.matches = menu.FuzzyFilter(m.menu.Ranked, m.searchInput.Value())
	m.clampCursor()
}

// moveCursor shifts the selection exactly one visible row per event, for any
// list size including zero and one.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureVisible()
}

// clampCursor keeps the cursor in [0, len(visible)-1], or -1 when empty.
func (m *Model) clampCursor() {
	if len(m.visible) == 0 {
		m.cursor = -1
		m.offset = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the cursor row stays on screen.
func (m *Model) ensureVisible() {
	rows := m.listHeight()
	if rows <= 0 || m.cursor < 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *Model) listHeight() int {
	// Title, dialect line, search line, blank, footer help.
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

// Mode exposes the current state for tests.
func (m *Model) CurrentMode() Mode {
	return m.mode
}

// Cursor exposes the selection index for tests.
func (m *Model) Cursor() int {
	return m.cursor
}

// Visible exposes the filtered entries for tests.
func (m *Model) Visible() []domain.CommandEntry {
	return m.visible
}

var _ tea.Model = (*Model)(nil)
