package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	// ColorPeach is the accent carried over from the original panel
	// design (#FFE5D1).
	ColorPeach  = lipgloss.AdaptiveColor{Dark: "#FFE5D1", Light: "#C05621"}
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps the transient notification panel.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPeach).
	Padding(0, 1)

// PanelTitleStyle renders the panel header line.
var PanelTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPeach)

// SectionTitleStyle renders history group headers ("Today", project names).
var SectionTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray).
	PaddingTop(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorPeach).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorPeach)

// ReadStyle dims rows the user has already seen.
var ReadStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// MetaStyle renders secondary row information (times, durations).
var MetaStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ModelStyle highlights the short model label on a row.
var ModelStyle = lipgloss.NewStyle().
	Foreground(ColorPeach)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// EmptyStyle renders placeholder text for empty views.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Align(lipgloss.Center)
