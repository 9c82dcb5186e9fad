package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ticket-tix/internal/core/format"
)

// --- UI Styles ---
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8B04B"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA")).Italic(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(14)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle    = lipgloss.NewStyle().Bold(true)

	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8B04B")).
			Margin(0, 0, 1, 0)
	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	cursorBarStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#E8B04B"))

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0F0F14")).
			Background(lipgloss.Color("#E8B04B")).
			Padding(0, 1)
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8B04B")).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tabStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("250"))
	tabActiveStyle   = tabStyle.Bold(true).Foreground(lipgloss.Color("#0F0F14")).Background(lipgloss.Color("#E8B04B"))
	tabDisabledStyle = tabStyle.Foreground(lipgloss.Color("238"))

	toastOKStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0F0F14")).
			Background(lipgloss.Color("#10B981")).
			Padding(0, 1)
	toastErrStyle = toastOKStyle.Background(lipgloss.Color("#EF4444"))

	// availability bands
	availHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	availMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	availLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	barEmptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var availabilityStyles = map[format.Level]lipgloss.Style{
	format.LevelHigh:   availHighStyle,
	format.LevelMedium: availMediumStyle,
	format.LevelLow:    availLowStyle,
}

// renderFooter creates a consistent footer across all views
// statusLine: optional status information (shown in subtleStyle)
// helpLines: help text lines (shown in helpStyle)
func renderFooter(statusLine string, helpLines ...string) string {
	var b strings.Builder

	if statusLine != "" {
		b.WriteString(subtleStyle.Render(statusLine) + "\n")
	}

	for _, line := range helpLines {
		b.WriteString(helpStyle.Render(line) + "\n")
	}

	// Remove trailing newline
	result := b.String()
	return strings.TrimSuffix(result, "\n")
}
