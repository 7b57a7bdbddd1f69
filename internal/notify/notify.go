// Package notify mirrors ingested notifications to the desktop
// notification daemon over D-Bus, for sessions where the terminal
// renderer is not on screen.
package notify

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification. A no-op implementation is returned
	// when the session bus is unavailable.
	Notify(title, body string) error
}
