// Package panel drives the single transient notification surface through
// its show/auto-dismiss/manual-dismiss lifecycle. The controller owns no
// notification data; it tracks visibility and geometry and is mutated only
// from the registry's serialized loop.
package panel

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Panel geometry in terminal cells.
const (
	Width        = 44
	headerHeight = 3
	rowHeight    = 3
	footerHeight = 2
	margin       = 1
)

// Rect describes the panel's position and size on screen.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Controller is the single-instance visibility state machine for the
// panel: Hidden or Visible, with at most one live auto-dismiss timer.
type Controller struct {
	screenWidth  int
	screenHeight int
	visible      bool
	rect         Rect
	maxRows      int
	lastCount    int
	delay        time.Duration
	timer        *time.Timer

	// onExpire is invoked when the auto-dismiss timer fires. The owner
	// must marshal the resulting Dismiss back onto its serialized loop;
	// the controller never dismisses itself from the timer goroutine.
	onExpire func()

	log *logrus.Logger
}

// NewController creates a hidden controller. onExpire is called from a
// timer goroutine when the auto-dismiss delay elapses.
func NewController(delay time.Duration, maxRows int, onExpire func(), log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		maxRows:  maxRows,
		delay:    delay,
		onExpire: onExpire,
		log:      log,
	}
}

// SetScreenSize records the renderer's screen dimensions. Geometry is
// recomputed immediately so a visible panel tracks terminal resizes.
func (c *Controller) SetScreenSize(width, height int) {
	c.screenWidth = width
	c.screenHeight = height
	if c.visible {
		c.Reposition(c.lastCount)
	}
}

// Show transitions to Visible, sizing the panel for count records and
// anchoring it at the top-right screen corner. When autoDismiss is true
// the single-shot dismiss timer is (re)started from the full delay; when
// false any pending timer is canceled so the panel stays until an
// explicit dismiss.
func (c *Controller) Show(autoDismiss bool, count int) {
	if c.screenWidth <= 0 || c.screenHeight <= 0 {
		c.log.Warn("panel show aborted: no screen geometry yet")
		return
	}

	c.lastCount = count
	c.rect = c.layout(count)
	c.visible = true

	if autoDismiss {
		c.scheduleDismiss()
	} else {
		c.cancelTimer()
	}
}

// Dismiss cancels any pending timer and transitions to Hidden.
func (c *Controller) Dismiss() {
	c.cancelTimer()
	c.visible = false
}

// Reposition recomputes geometry for count records without changing
// visibility. Called after a removal leaves the collection non-empty.
func (c *Controller) Reposition(count int) {
	if c.screenWidth <= 0 || c.screenHeight <= 0 {
		c.log.Warn("panel reposition aborted: no screen geometry yet")
		return
	}
	c.lastCount = count
	c.rect = c.layout(count)
}

// Visible reports whether the panel is currently shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// Frame returns the panel's current geometry.
func (c *Controller) Frame() Rect {
	return c.rect
}

// layout computes the panel rect for count records: a fixed width box in
// the top-right corner whose height grows with the row count, bounded by
// maxRows and the screen.
func (c *Controller) layout(count int) Rect {
	rows := count
	if rows > c.maxRows {
		rows = c.maxRows
	}
	if rows < 1 {
		rows = 1
	}

	height := headerHeight + rows*rowHeight
	if count > 1 {
		height += footerHeight
	}
	if max := c.screenHeight - 2*margin; height > max {
		height = max
	}

	width := Width
	if max := c.screenWidth - 2*margin; width > max {
		width = max
	}

	return Rect{
		X:      c.screenWidth - width - margin,
		Y:      margin,
		Width:  width,
		Height: height,
	}
}

// scheduleDismiss restarts the auto-dismiss countdown. Starting a new
// timer always cancels the previous one, so a newly ingested
// notification resets the full delay.
func (c *Controller) scheduleDismiss() {
	c.cancelTimer()
	c.timer = time.AfterFunc(c.delay, c.onExpire)
}

// cancelTimer stops any pending auto-dismiss timer.
func (c *Controller) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
