package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Border  lipgloss.Style
	Card    lipgloss.Style
	Cursor  lipgloss.Style
	Focused lipgloss.Style
	Absent  lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

var DefaultTheme = Theme{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:   lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	Card:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1).BorderForeground(lipgloss.Color("#45475A")),
	Cursor:  lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).PaddingLeft(1).BorderForeground(lipgloss.Color("#F9E2AF")),
	Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	Absent:  lipgloss.NewStyle().Faint(true).Italic(true),
	Hint:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
}

// MonoTheme avoids colour entirely, for terminals without it or NO_COLOR users.
var MonoTheme = Theme{
	Title:   lipgloss.NewStyle().Bold(true),
	Label:   lipgloss.NewStyle().Faint(true),
	Value:   lipgloss.NewStyle(),
	Border:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Card:    lipgloss.NewStyle().Border(lipgloss.HiddenBorder(), false, false, false, true).PaddingLeft(1),
	Cursor:  lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).PaddingLeft(1),
	Focused: lipgloss.NewStyle().Reverse(true),
	Absent:  lipgloss.NewStyle().Faint(true),
	Hint:    lipgloss.NewStyle().Faint(true),
	Error:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Bold(true),
}

// ThemeByName falls back to DefaultTheme for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "mono", "plain", "none":
		return MonoTheme
	default:
		return DefaultTheme
	}
}
