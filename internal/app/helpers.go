package app

import (
	"context"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/internal/store"
)

// loadSnapshot builds an initial event from the registry so the history
// view is populated before the first mutation.
func (m Model) loadSnapshot() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		records := reg.Snapshot()
		unread := 0
		for _, n := range records {
			if !n.IsRead {
				unread++
			}
		}
		return registryEventMsg{event: registry.Event{
			Records:     records,
			UnreadCount: unread,
		}}
	}
}

// waitForEvent blocks on the registry's event channel and delivers the
// next change. The handler re-issues this command, keeping exactly one
// subscription alive for the life of the program.
func (m Model) waitForEvent() tea.Cmd {
	events := m.registry.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return registryEventMsg{event: ev}
	}
}

// toggleRead flips the read flag off the UI goroutine. The registry
// publishes the resulting change through the event subscription.
func (m Model) toggleRead(id string) tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.ToggleRead(id)
		return nil
	}
}

// removeRecord deletes the record with the given id.
func (m Model) removeRecord(id string) tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.Remove(id)
		return nil
	}
}

// clearAll empties the active collection.
func (m Model) clearAll() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.ClearAll()
		return nil
	}
}

// showPanel shows the panel without auto-dismiss.
func (m Model) showPanel() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.ShowPanel()
		return nil
	}
}

// dismissPanel hides the panel.
func (m Model) dismissPanel() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.DismissPanel()
		return nil
	}
}

// sendTestNotification ingests a fixed sample record, exercising the
// same creation path a real completion event takes.
func (m Model) sendTestNotification() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		reg.Add("Test Project", "/Users/tony/test", "테스트 알림입니다", nil, nil, "")
		return nil
	}
}

// revealPath opens the project folder with the desktop file manager.
// Failures only get logged; there is nothing actionable for the user.
func (m Model) revealPath(path string) tea.Cmd {
	logger := m.logger
	return func() tea.Msg {
		if err := exec.Command("xdg-open", path).Start(); err != nil {
			logger.WithError(err).Warn("failed to open project folder")
		}
		return nil
	}
}

// selectCue applies the chosen cue, persists it, and plays a preview by
// running the ingestion cue path once.
func (m Model) selectCue(name string) tea.Cmd {
	reg := m.registry
	settings := m.settings
	logger := m.logger
	return func() tea.Msg {
		reg.SetCue(name)
		reg.PlayPreview()
		if settings == nil {
			return nil
		}
		if err := settings.Set(context.Background(), store.SettingSoundCue, name); err != nil {
			logger.WithError(err).Warn("failed to persist sound cue")
		}
		return nil
	}
}

// persistGroupMode stores the history grouping selection.
func (m Model) persistGroupMode(mode string) tea.Cmd {
	settings := m.settings
	logger := m.logger
	return func() tea.Msg {
		if settings == nil {
			return nil
		}
		if err := settings.Set(context.Background(), store.SettingGroupMode, mode); err != nil {
			logger.WithError(err).Warn("failed to persist group mode")
		}
		return nil
	}
}
