package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/okyar/bookmate/internal/store"
)

// The item tag palette, shared by folders and sessions.
var itemColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#3B82F6"),
	"red":    lipgloss.Color("#EF4444"),
	"green":  lipgloss.Color("#10B981"),
	"purple": lipgloss.Color("#A855F7"),
	"orange": lipgloss.Color("#F97316"),
	"gray":   lipgloss.Color("#6B7280"),
}

func itemColor(name string) lipgloss.Color {
	if c, ok := itemColors[name]; ok {
		return c
	}
	return itemColors["blue"]
}

// Theme-dependent colors, reassigned by applyTheme.
var (
	colorPrimary   lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles, rebuilt whenever the theme changes.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	badgeStyle        lipgloss.Style
	scoreStyle        lipgloss.Style
	timerStyle        lipgloss.Style
)

func init() {
	applyTheme(store.ThemeSystem)
}

// applyTheme rebuilds the palette for the given theme. "system" resolves
// against the terminal background; terminals give no change signal, so it
// re-resolves when the theme setting changes rather than live.
func applyTheme(t store.Theme) {
	dark := t == store.ThemeDark || (t == store.ThemeSystem && lipgloss.HasDarkBackground())

	if dark {
		colorPrimary = lipgloss.Color("#7AA2F7")
		colorMuted = lipgloss.Color("#666666")
		colorSuccess = lipgloss.Color("#2ECC71")
		colorWarning = lipgloss.Color("#F39C12")
		colorError = lipgloss.Color("#E74C3C")
		colorFg = lipgloss.Color("#C0CAF5")
		colorSubtle = lipgloss.Color("#414868")
		colorHighlight = lipgloss.Color("#89B4FA")
	} else {
		colorPrimary = lipgloss.Color("#2563EB")
		colorMuted = lipgloss.Color("#9CA3AF")
		colorSuccess = lipgloss.Color("#059669")
		colorWarning = lipgloss.Color("#D97706")
		colorError = lipgloss.Color("#DC2626")
		colorFg = lipgloss.Color("#1F2937")
		colorSubtle = lipgloss.Color("#D1D5DB")
		colorHighlight = lipgloss.Color("#1D4ED8")
	}

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)
	badgeStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFg).Align(lipgloss.Center)
	timerStyle = lipgloss.NewStyle().Foreground(colorMuted)
}
