package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	SearchLabel lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Badge       lipgloss.Style
	Count       lipgloss.Style
	LastUsed    lipgloss.Style
	Highlight   lipgloss.Style
	StatsPanel  lipgloss.Style
	ConfirmBox  lipgloss.Style
	WarningBox  lipgloss.Style
	Dim         lipgloss.Style
	Error       lipgloss.Style
}

// categoryColors keys the badge color off the category label; unknown labels
// share the Other color.
var categoryColors = map[string]lipgloss.Color{
	"Git":        lipgloss.Color("208"),
	"Docker":     lipgloss.Color("39"),
	"Kubernetes": lipgloss.Color("69"),
	"Npm":        lipgloss.Color("160"),
	"Python":     lipgloss.Color("220"),
	"System":     lipgloss.Color("245"),
	"Editor":     lipgloss.Color("114"),
	"Other":      lipgloss.Color("243"),
}

func newStyles() styles {
	return styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SearchLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Row:         lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Badge:       lipgloss.NewStyle().Bold(true),
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		LastUsed:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Underline(true),
		StatsPanel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		ConfirmBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		WarningBox: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("196")).Padding(1, 2),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (s styles) badgeFor(category string) lipgloss.Style {
	color, ok := categoryColors[category]
	if !ok {
		color = categoryColors["Other"]
	}
	return s.Badge.Foreground(color)
}
