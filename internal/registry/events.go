package registry

import (
	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/panel"
)

// Event is a coalesced "registry changed" signal published to the
// renderer after every mutation. It carries a consistent snapshot so the
// renderer never reads registry internals across goroutines.
type Event struct {
	// Records is the active collection, newest first.
	Records []model.Notification

	// UnreadCount is the number of unread records in the snapshot.
	UnreadCount int

	// PanelVisible and PanelFrame describe the display controller's
	// state at the time of the mutation.
	PanelVisible bool
	PanelFrame   panel.Rect
}
