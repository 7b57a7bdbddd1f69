// Package app wires the registry, settings store, and sub-views into
// the root Bubble Tea model.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/nerdmakr/claude-notify/internal/keys"
	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/internal/store"
	"github.com/nerdmakr/claude-notify/internal/ui"
	helpview "github.com/nerdmakr/claude-notify/internal/ui/help"
	"github.com/nerdmakr/claude-notify/internal/ui/history"
	"github.com/nerdmakr/claude-notify/internal/ui/panelview"
	"github.com/nerdmakr/claude-notify/internal/ui/soundpicker"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewHistory ViewState = iota
	ViewHelp
	ViewSound
)

// registryEventMsg carries a registry change snapshot to the UI.
type registryEventMsg struct {
	event registry.Event
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the event subscription to the registry.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	registry *registry.Registry
	settings *store.SettingsStore
	keys     *keys.KeyMap
	logger   *logrus.Logger

	historyView history.Model
	helpView    helpview.Model
	panelView   panelview.Model
	soundPicker *soundpicker.Model

	event registry.Event
	ready bool
}

// New creates the root application model. groupMode is the persisted
// history grouping restored at startup.
func New(
	reg *registry.Registry,
	settings *store.SettingsStore,
	groupMode string,
	maxPanelRows int,
	logger *logrus.Logger,
) Model {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewHistory,
		registry:    reg,
		settings:    settings,
		keys:        k,
		logger:      logger,
		historyView: history.New(k, history.GroupMode(groupMode), 80, 24),
		helpView:    helpview.New(k, 80, 24),
		panelView:   panelview.New(maxPanelRows),
	}
}

// Init loads the initial snapshot and starts the event subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.historyView.Init(),
		m.loadSnapshot(),
		m.waitForEvent(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.historyView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		if m.soundPicker != nil {
			m.soundPicker.SetSize(contentWidth, contentHeight)
		}
		m.registry.SetScreenSize(msg.Width, msg.Height)
		// Forward to the active view so huh forms can size themselves.
		return m.updateActiveView(msg)

	case registryEventMsg:
		m.event = msg.event
		m.historyView.SetRecords(msg.event.Records)
		m.panelView.SetSnapshot(msg.event.Records, msg.event.PanelFrame)
		return m, m.waitForEvent()

	case history.ToggleReadMsg:
		return m, m.toggleRead(msg.ID)

	case history.RemoveMsg:
		return m, m.removeRecord(msg.ID)

	case history.RevealMsg:
		return m, m.revealPath(msg.Path)

	case soundpicker.CueChosenMsg:
		m.currentView = m.previousView
		m.soundPicker = nil
		return m, m.selectCue(msg.Name)

	case soundpicker.CancelMsg:
		m.currentView = m.previousView
		m.soundPicker = nil
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the focused
// view. The sound picker keeps input focus, so only quit applies there.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Quit) {
		if m.currentView == ViewSound && msg.String() == "q" {
			return m, nil, false
		}
		m.registry.Stop()
		return m, tea.Quit, true
	}

	if m.currentView == ViewSound {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Back):
		if m.currentView != ViewHistory {
			m.currentView = ViewHistory
			return m, nil, true
		}
		return m, nil, false

	case key.Matches(msg, m.keys.Sound):
		m.previousView = m.currentView
		m.currentView = ViewSound
		m.soundPicker = soundpicker.New(
			m.registry.Cue(),
			m.layout.ContentWidth(),
			m.layout.ContentHeight(),
		)
		return m, m.soundPicker.Init(), true

	case key.Matches(msg, m.keys.GroupMode):
		if m.currentView == ViewHistory {
			m.historyView.ToggleGroupMode()
			return m, m.persistGroupMode(string(m.historyView.GroupMode())), true
		}

	case key.Matches(msg, m.keys.ShowPanel):
		return m, m.showPanel(), true

	case key.Matches(msg, m.keys.Dismiss):
		return m, m.dismissPanel(), true

	case key.Matches(msg, m.keys.Test):
		return m, m.sendTestNotification(), true

	case key.Matches(msg, m.keys.ClearAll):
		return m, m.clearAll(), true
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewSound:
		if m.soundPicker != nil {
			m.soundPicker, cmd = m.soundPicker.Update(msg)
		}
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "Claude Notify"
	if m.event.UnreadCount > 0 {
		headerTitle = fmt.Sprintf("Claude Notify [%d unread]", m.event.UnreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view,
// with the notification panel floated over the top-right corner when
// visible.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHelp:
		return lipgloss.Place(
			m.layout.ContentWidth(), m.layout.ContentHeight(),
			lipgloss.Center, lipgloss.Center,
			m.helpView.View(),
		)
	case ViewSound:
		if m.soundPicker == nil {
			return ""
		}
		return lipgloss.Place(
			m.layout.ContentWidth(), m.layout.ContentHeight(),
			lipgloss.Center, lipgloss.Center,
			m.soundPicker.View(),
		)
	}

	content := m.historyView.View()
	if !m.event.PanelVisible {
		return content
	}

	panelBox := m.panelView.View()
	placed := lipgloss.Place(
		m.layout.ContentWidth(), lipgloss.Height(panelBox),
		lipgloss.Right, lipgloss.Top,
		panelBox,
	)
	return lipgloss.JoinVertical(lipgloss.Left, placed, content)
}

// headerStatus returns the short status shown on the right of the header.
func (m Model) headerStatus() string {
	if len(m.event.Records) == 1 {
		return "1 notification"
	}
	return fmt.Sprintf("%d notifications", len(m.event.Records))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewSound:
		return "enter select | esc cancel"
	default:
		return "enter read | x remove | o open | g group | s sound | t test | ? help | q quit"
	}
}
