// Package registry holds the authoritative in-memory collection of
// notification records. All mutations are funneled through one loop
// goroutine, so concurrent ingestion connections and renderer intents
// never race: Add, Remove, ToggleRead, and ClearAll are atomic with
// respect to each other, and the durable append plus the panel
// controller run on the same serialized context.
package registry

import (
	"sort"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/panel"
	"github.com/nerdmakr/claude-notify/internal/store"
)

// CuePlayer plays a named audible cue. Implementations must tolerate
// being called from arbitrary goroutines; failures are fire-and-forget.
type CuePlayer interface {
	Play(name string) error
}

// Notifier mirrors an ingested record to the desktop notification
// daemon. Optional; a nil Notifier disables mirroring.
type Notifier interface {
	Notify(title, body string) error
}

// Registry owns the ordered record collection and the display
// controller. Create with New, then Start before first use.
type Registry struct {
	records []model.Notification
	log     *store.RecordLog
	panel   *panel.Controller

	cuePlayer CuePlayer
	notifier  Notifier
	cueName   string

	ops    chan func()
	events chan Event

	stopOnce gosync.Once
	stopCh   chan struct{}

	logger *logrus.Logger
}

// New creates a Registry over the given durable log and panel delay.
// cuePlayer and notifier may be nil.
func New(
	recordLog *store.RecordLog,
	dismissDelay time.Duration,
	maxPanelRows int,
	cuePlayer CuePlayer,
	notifier Notifier,
	logger *logrus.Logger,
) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := &Registry{
		log:       recordLog,
		cuePlayer: cuePlayer,
		notifier:  notifier,
		cueName:   "Pop",
		ops:       make(chan func(), 16),
		events:    make(chan Event, 16),
		stopCh:    make(chan struct{}),
		logger:    logger,
	}

	// The expiry callback fires on a timer goroutine; it only submits
	// the dismissal onto the loop so it never races a mutation.
	r.panel = panel.NewController(dismissDelay, maxPanelRows, func() {
		r.submit(func() {
			r.panel.Dismiss()
			r.publish()
		})
	}, logger)

	return r
}

// Start loads the durable log into memory, sorts it newest first, and
// begins processing operations. Must be called exactly once.
func (r *Registry) Start() error {
	records, err := r.log.LoadAll()
	if err != nil {
		return err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	r.records = records

	go r.run()
	return nil
}

// Stop shuts down the operation loop. Pending operations are drained.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

// run is the single execution context that touches the collection, the
// durable log, and the panel controller.
func (r *Registry) run() {
	for {
		select {
		case <-r.stopCh:
			return
		case op := <-r.ops:
			op()
		}
	}
}

// submit queues an operation on the loop without waiting.
func (r *Registry) submit(op func()) {
	select {
	case r.ops <- op:
	case <-r.stopCh:
	}
}

// submitWait queues an operation and blocks until it has run.
func (r *Registry) submitWait(op func()) {
	done := make(chan struct{})
	r.submit(func() {
		op()
		close(done)
	})
	select {
	case <-done:
	case <-r.stopCh:
	}
}

// Add constructs a record with a fresh id and the current instant,
// inserts it at the head of the collection, appends it to the durable
// log, shows the panel with auto-dismiss, and plays the configured cue.
// This is the single creation path; the renderer never creates records.
func (r *Registry) Add(
	project, path, message string,
	startTime, endTime *time.Time,
	modelID string,
) model.Notification {
	if message == "" {
		message = model.DefaultMessage
	}

	var created model.Notification
	r.submitWait(func() {
		created = model.Notification{
			ID:        uuid.New().String(),
			Project:   project,
			Path:      path,
			Message:   message,
			Timestamp: time.Now(),
			StartTime: startTime,
			EndTime:   endTime,
			Model:     modelID,
		}

		// Newest record, so head insertion keeps the descending order.
		r.records = append([]model.Notification{created}, r.records...)

		// Persistence is best-effort: the in-memory collection stays
		// authoritative for the running process.
		if err := r.log.Append(created); err != nil {
			r.logger.WithError(err).Warn("failed to persist notification")
		}

		r.panel.Show(true, len(r.records))
		r.playCue()
		r.mirrorToDesktop(created)
		r.publish()
	})

	return created
}

// Remove deletes the record with the given id if present; unknown ids
// are a no-op. Removing the last record hides the panel; otherwise the
// panel is repositioned for the shrunken content.
func (r *Registry) Remove(id string) {
	r.submitWait(func() {
		idx := r.indexOf(id)
		if idx < 0 {
			return
		}
		r.records = append(r.records[:idx], r.records[idx+1:]...)

		if len(r.records) == 0 {
			r.panel.Dismiss()
		} else {
			r.panel.Reposition(len(r.records))
		}
		r.publish()
	})
}

// ToggleRead flips the read flag of the record with the given id; a
// no-op when absent.
func (r *Registry) ToggleRead(id string) {
	r.submitWait(func() {
		idx := r.indexOf(id)
		if idx < 0 {
			return
		}
		r.records[idx].IsRead = !r.records[idx].IsRead
		r.publish()
	})
}

// ClearAll empties the active collection and hides the panel. The
// durable log is untouched; history resurfaces on restart.
func (r *Registry) ClearAll() {
	r.submitWait(func() {
		r.records = nil
		r.panel.Dismiss()
		r.publish()
	})
}

// ShowPanel shows the panel without an auto-dismiss timer, for manual
// inspection. Any pending countdown is canceled.
func (r *Registry) ShowPanel() {
	r.submitWait(func() {
		r.panel.Show(false, len(r.records))
		r.publish()
	})
}

// DismissPanel hides the panel and cancels any pending countdown.
func (r *Registry) DismissPanel() {
	r.submitWait(func() {
		r.panel.Dismiss()
		r.publish()
	})
}

// SetScreenSize forwards the renderer's dimensions to the display
// controller.
func (r *Registry) SetScreenSize(width, height int) {
	r.submitWait(func() {
		r.panel.SetScreenSize(width, height)
	})
}

// SetCue selects the named cue played on ingestion. "None" disables it.
func (r *Registry) SetCue(name string) {
	r.submitWait(func() {
		r.cueName = name
	})
}

// PlayPreview plays the currently selected cue once, so the user hears
// a selection as soon as it is made.
func (r *Registry) PlayPreview() {
	r.submitWait(func() {
		r.playCue()
	})
}

// Cue returns the currently selected cue name.
func (r *Registry) Cue() string {
	var name string
	r.submitWait(func() {
		name = r.cueName
	})
	return name
}

// Snapshot returns a copy of the active collection, newest first.
func (r *Registry) Snapshot() []model.Notification {
	var out []model.Notification
	r.submitWait(func() {
		out = append(out, r.records...)
	})
	return out
}

// GroupedByDate partitions the active collection by local calendar date,
// newest date first.
func (r *Registry) GroupedByDate() []Group {
	return GroupByDate(r.Snapshot())
}

// GroupedByProject partitions the active collection by project name,
// ascending.
func (r *Registry) GroupedByProject() []Group {
	return GroupByProject(r.Snapshot())
}

// PanelVisible reports whether the panel is currently shown.
func (r *Registry) PanelVisible() bool {
	var visible bool
	r.submitWait(func() {
		visible = r.panel.Visible()
	})
	return visible
}

// Events returns the channel the renderer subscribes to for change
// signals.
func (r *Registry) Events() <-chan Event {
	return r.events
}

// indexOf returns the position of the record with the given id, or -1.
// Must run on the loop.
func (r *Registry) indexOf(id string) int {
	for i, n := range r.records {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// publish sends a change event without blocking the loop. Must run on
// the loop.
func (r *Registry) publish() {
	unread := 0
	for _, n := range r.records {
		if !n.IsRead {
			unread++
		}
	}

	ev := Event{
		Records:      append([]model.Notification(nil), r.records...),
		UnreadCount:  unread,
		PanelVisible: r.panel.Visible(),
		PanelFrame:   r.panel.Frame(),
	}

	select {
	case r.events <- ev:
	default:
		// Drop if the renderer is behind; a later event supersedes it.
	}
}

// playCue plays the selected cue on a separate goroutine; failures are
// logged and otherwise ignored. Must run on the loop.
func (r *Registry) playCue() {
	if r.cuePlayer == nil || r.cueName == "" || r.cueName == "None" {
		return
	}
	name := r.cueName
	go func() {
		if err := r.cuePlayer.Play(name); err != nil {
			r.logger.WithError(err).Debug("cue playback failed")
		}
	}()
}

// mirrorToDesktop forwards the record to the desktop notification
// daemon when mirroring is enabled. Must run on the loop.
func (r *Registry) mirrorToDesktop(n model.Notification) {
	if r.notifier == nil {
		return
	}
	go func() {
		if err := r.notifier.Notify(n.Project, n.Message); err != nil {
			r.logger.WithError(err).Debug("desktop notification failed")
		}
	}()
}
