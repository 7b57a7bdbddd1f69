//go:build !linux

package notify

// New returns a no-op notifier on platforms without a freedesktop
// notification daemon.
func New() Notifier {
	return &stubNotifier{}
}
