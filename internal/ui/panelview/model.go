// Package panelview renders the transient notification panel. The view
// is passive: visibility, geometry, and the auto-dismiss countdown are
// owned by the panel controller; this model only draws the snapshot it
// was last given.
package panelview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/panel"
	"github.com/nerdmakr/claude-notify/internal/theme"
)

// Model holds the last snapshot pushed by the root model.
type Model struct {
	records []model.Notification
	frame   panel.Rect
	maxRows int
}

// New creates a panel view that shows at most maxRows notification rows.
func New(maxRows int) Model {
	return Model{maxRows: maxRows}
}

// SetSnapshot replaces the rendered records and geometry.
func (m *Model) SetSnapshot(records []model.Notification, frame panel.Rect) {
	m.records = records
	m.frame = frame
}

// View renders the panel box sized to the controller's frame.
func (m Model) View() string {
	innerWidth := m.frame.Width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder
	b.WriteString(theme.PanelTitleStyle.Render(m.title()))
	b.WriteString("\n")

	shown := m.records
	if len(shown) > m.maxRows {
		shown = shown[:m.maxRows]
	}
	for _, n := range shown {
		b.WriteString("\n")
		b.WriteString(renderRow(n, innerWidth))
	}

	if hidden := len(m.records) - len(shown); hidden > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("… and %d more", hidden)))
	}
	if len(m.records) > 1 {
		b.WriteString("\n\n")
		b.WriteString(theme.HelpStyle.Render("C clear all · d dismiss"))
	}

	return theme.PanelStyle.Width(m.frame.Width - 2).Render(b.String())
}

// title returns the panel header line with the record count.
func (m Model) title() string {
	if len(m.records) == 1 {
		return "1 notification"
	}
	return fmt.Sprintf("%d notifications", len(m.records))
}

// renderRow draws one notification as a three-line block: project and
// time range, message, then duration and model.
func renderRow(n model.Notification, width int) string {
	style := lipgloss.NewStyle()
	if n.IsRead {
		style = theme.ReadStyle
	}

	head := truncate(n.Project, width-6) + " " +
		theme.MetaStyle.Render(n.TimeRangeString())
	msg := style.Render(truncate(n.Message, width))

	var meta []string
	if d := n.DurationString(); d != "" {
		meta = append(meta, d)
	}
	if s := n.ModelShort(); s != "" {
		meta = append(meta, s)
	}
	metaLine := theme.MetaStyle.Render(strings.Join(meta, " · "))

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Bold(!n.IsRead).Render(head),
		msg,
		metaLine,
	)
}

// truncate shortens s to at most width cells, appending an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
