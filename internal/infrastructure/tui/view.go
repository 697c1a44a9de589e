package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeConfirming && m.pending != nil {
		return m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("cmdmenu"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s history · %d commands", m.menu.Dialect, len(m.menu.Ranked))))
	b.WriteString("\n")

	b.WriteString(m.viewSearchLine())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.showStats {
		b.WriteString(m.viewStats())
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewSearchLine() string {
	label := m.styles.SearchLabel.Render("search:")
	if m.mode == ModeSearching {
		return label + " " + m.searchInput.View()
	}
	if q := m.searchInput.Value(); q != "" {
		return label + " " + q
	}
	return m.styles.Dim.Render("press / to search")
}

func (m *Model) viewList() string {
	if m.loading {
		return m.styles.Dim.Render(m.status)
	}
	if len(m.visible) == 0 {
		if m.searchInput.Value() != "" {
			return m.styles.Dim.Render("no commands match the query")
		}
		return m.styles.Dim.Render("no commands in history")
	}

	rows := m.listHeight()
	end := m.offset + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		b.WriteString(m.viewRow(i))
		b.WriteString("\n")
	}
	if end < len(m.visible) {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("… %d more", len(m.visible)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewRow(i int) string {
	entry := m.visible[i]
	marker := "  "
	rowStyle := m.styles.Row
	if i == m.cursor {
		marker = "> "
		rowStyle = m.styles.SelectedRow
	}

	badge := m.styles.badgeFor(entry.Category).Render(fmt.Sprintf("[%s]", entry.Category))
	text := m.renderCommandText(i, entry)
	count := m.styles.Count.Render(fmt.Sprintf("(%dx)", entry.Count))
	var when string
	if !entry.LastUsed.IsZero() {
		when = m.styles.LastUsed.Render(humanize.Time(entry.LastUsed))
	}

	line := strings.TrimRight(strings.Join([]string{marker + badge, text, count, when}, " "), " ")
	return rowStyle.Render(line)
}

// renderCommandText highlights fuzzy-matched runes and flattens multi-line
// commands for display (execution still uses the verbatim text).
func (m *Model) renderCommandText(i int, entry domain.CommandEntry) string {
	display := strings.ReplaceAll(entry.Text, "\n", " ⏎ ")
	var positions []int
	if i < len(m.matches) {
		positions = m.matches[i]
	}
	if len(positions) == 0 {
		return display
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	var b strings.Builder
	for idx, r := range []rune(display) {
		if matched[idx] {
			b.WriteString(m.styles.Highlight.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *Model) viewStats() string {
	report := menu.BuildHistoryReport(m.menu.Entries, domain.DefaultTopCommands)
	appStats := m.service.Stats()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Statistics"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total commands in history: %d\n", report.TotalCommands))
	b.WriteString(fmt.Sprintf("Unique commands: %d\n", report.UniqueCommands))
	if m.menu.Anomalies > 0 {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Skipped malformed records: %d", m.menu.Anomalies)))
		b.WriteString("\n")
	}
	b.WriteString("\nCategories\n")
	for _, c := range report.Categories {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", c.Category, c.Count))
	}
	b.WriteString("\nApp usage\n")
	b.WriteString(fmt.Sprintf("  Sessions: %d\n", appStats.SessionCount))
	b.WriteString(fmt.Sprintf("  Executed via menu: %d\n", appStats.TotalExecutions))
	return m.styles.StatsPanel.Render(b.String())
}

func (m *Model) viewConfirm() string {
	p := m.pending
	box := m.styles.ConfirmBox
	title := "Run this command?"
	prompt := "[y] run   [n] cancel"

	var lines []string
	switch {
	case p.assessment.Blocked():
		box = m.styles.WarningBox
		title = "Command blocked"
		prompt = "[n] back"
	case p.assessment.RequiresAcknowledgment():
		box = m.styles.WarningBox
		title = "Potentially destructive command"
	}

	lines = append(lines, m.styles.Title.Render(title), "")
	lines = append(lines, p.entry.Text, "")
	for _, reason := range p.assessment.Reasons {
		lines = append(lines, m.styles.Error.Render("! "+reason))
	}
	if len(p.assessment.Reasons) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, m.styles.Dim.Render(prompt))

	content := box.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
