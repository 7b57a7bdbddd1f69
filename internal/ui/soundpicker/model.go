// Package soundpicker is the cue selection overlay.
package soundpicker

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nerdmakr/claude-notify/internal/cue"
	"github.com/nerdmakr/claude-notify/internal/theme"
)

// CueChosenMsg carries the confirmed cue selection back to the root model.
type CueChosenMsg struct{ Name string }

// CancelMsg signals the picker was dismissed without a choice.
type CancelMsg struct{}

// Model wraps a huh select form over the available cues.
type Model struct {
	form     *huh.Form
	selected string

	width, height int
}

// New creates a picker with current preselected.
func New(current string, width, height int) *Model {
	m := &Model{
		selected: current,
		width:    width,
		height:   height,
	}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(cue.Names))
	for _, name := range cue.Names {
		options = append(options, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Notification Sound").
				Description("Played when a task completion arrives").
				Options(options...).
				Value(&m.selected),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) formWidth() int {
	w := m.width - 8
	if w > 48 {
		w = 48
	}
	if w < 24 {
		w = 24
	}
	return w
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init starts the underlying form.
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update drives the form and emits the terminal message when it
// completes or aborts.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name := m.selected
		return m, func() tea.Msg { return CueChosenMsg{Name: name} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the picker inside a framed box.
func (m *Model) View() string {
	return theme.PanelStyle.
		Width(m.formWidth() + 4).
		Render(m.form.View())
}
