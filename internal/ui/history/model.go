// Package history is the main interactive view: every active
// notification, grouped by date or by project, with a cursor for
// per-row actions.
package history

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nerdmakr/claude-notify/internal/keys"
	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/internal/theme"
)

// GroupMode selects how the history view partitions records.
type GroupMode string

const (
	GroupByDate    GroupMode = "date"
	GroupByProject GroupMode = "project"
)

// ToggleReadMsg asks the root model to flip a record's read flag.
type ToggleReadMsg struct{ ID string }

// RemoveMsg asks the root model to delete a record.
type RemoveMsg struct{ ID string }

// RevealMsg asks the root model to open a record's project folder.
type RevealMsg struct{ Path string }

// Model is the Bubble Tea model for the history view.
type Model struct {
	records   []model.Notification
	groups    []registry.Group
	groupMode GroupMode

	// cursor indexes the flattened record sequence across all groups.
	cursor int

	keys          *keys.KeyMap
	width, height int
}

// New creates a history view with the given initial group mode.
func New(k *keys.KeyMap, mode GroupMode, width, height int) Model {
	if mode != GroupByProject {
		mode = GroupByDate
	}
	return Model{
		groupMode: mode,
		keys:      k,
		width:     width,
		height:    height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRecords replaces the displayed records and regroups them. The
// cursor is clamped so removals never leave it past the end.
func (m *Model) SetRecords(records []model.Notification) {
	m.records = records
	m.regroup()
}

// GroupMode returns the current grouping.
func (m Model) GroupMode() GroupMode {
	return m.groupMode
}

// ToggleGroupMode switches between the date and project groupings.
func (m *Model) ToggleGroupMode() {
	if m.groupMode == GroupByDate {
		m.groupMode = GroupByProject
	} else {
		m.groupMode = GroupByDate
	}
	m.regroup()
}

// Selected returns the record under the cursor.
func (m Model) Selected() (model.Notification, bool) {
	flat := m.flatten()
	if m.cursor < 0 || m.cursor >= len(flat) {
		return model.Notification{}, false
	}
	return flat[m.cursor], true
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and per-row actions. Mutations are not
// applied here; they are emitted as messages for the root model, which
// owns the registry.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.count()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.ToggleRead):
		if n, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleReadMsg{ID: n.ID} }
		}
	case key.Matches(keyMsg, m.keys.Remove):
		if n, ok := m.Selected(); ok {
			return m, func() tea.Msg { return RemoveMsg{ID: n.ID} }
		}
	case key.Matches(keyMsg, m.keys.Reveal):
		if n, ok := m.Selected(); ok && n.Path != "" {
			return m, func() tea.Msg { return RevealMsg{Path: n.Path} }
		}
	}

	return m, nil
}

// View renders the grouped history.
func (m Model) View() string {
	if len(m.records) == 0 {
		return theme.EmptyStyle.
			Width(m.width).
			Height(m.height).
			Render("\nNo notifications\n\nWaiting for task completions…")
	}

	var b strings.Builder
	flatIdx := 0
	for _, g := range m.groups {
		b.WriteString(theme.SectionTitleStyle.Render(m.sectionTitle(g)))
		b.WriteString("\n")
		for _, n := range g.Records {
			b.WriteString(m.renderRow(n, flatIdx == m.cursor))
			b.WriteString("\n")
			flatIdx++
		}
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Render(strings.TrimRight(b.String(), "\n"))
}

// sectionTitle returns the header for one group. In the date grouping
// today and yesterday get friendly names.
func (m Model) sectionTitle(g registry.Group) string {
	if m.groupMode == GroupByProject {
		return g.Key
	}

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	switch g.Key {
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	}
	if len(g.Records) > 0 {
		return g.Records[0].FullDateString()
	}
	return g.Key
}

// renderRow draws one record as a two-line entry.
func (m Model) renderRow(n model.Notification, selected bool) string {
	base := theme.ListItemStyle
	if selected {
		base = theme.SelectedItemStyle
	}

	marker := "○"
	if n.IsRead {
		marker = "●"
	}

	head := marker + " " + n.Project + "  " +
		theme.MetaStyle.Render(n.TimeRangeString()+"  "+n.TimeAgo())

	var meta []string
	if d := n.DurationString(); d != "" {
		meta = append(meta, d)
	}
	if s := n.ModelShort(); s != "" {
		meta = append(meta, theme.ModelStyle.Render(s))
	}
	detail := n.Message
	if len(meta) > 0 {
		detail += "  " + theme.MetaStyle.Render(strings.Join(meta, " · "))
	}

	if n.IsRead {
		head = theme.ReadStyle.Render(head)
		detail = theme.ReadStyle.Render(detail)
	}

	return base.Render(lipgloss.JoinVertical(lipgloss.Left, head, detail))
}

// regroup rebuilds the partition for the current mode and clamps the
// cursor into the new flattened range.
func (m *Model) regroup() {
	switch m.groupMode {
	case GroupByProject:
		m.groups = registry.GroupByProject(m.records)
	default:
		m.groups = registry.GroupByDate(m.records)
	}

	if max := m.count() - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// flatten returns the records in on-screen order.
func (m Model) flatten() []model.Notification {
	flat := make([]model.Notification, 0, len(m.records))
	for _, g := range m.groups {
		flat = append(flat, g.Records...)
	}
	return flat
}

// count returns the number of selectable rows.
func (m Model) count() int {
	return len(m.records)
}
