package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMessage is used when an ingestion payload carries an empty message.
const DefaultMessage = "Task completed"

// Notification is a single task-completion event reported by a coding
// assistant hook. Records are created only by the ingestion path; after
// creation the only mutable field is IsRead.
type Notification struct {
	// ID is the unique identifier for this notification, assigned at
	// creation and never reused within the life of the durable log.
	ID string `json:"id"`

	// Project is the display name of the originating project, derived
	// from the last path component of Path at ingestion time.
	Project string `json:"project"`

	// Path is the absolute filesystem path of the originating project.
	Path string `json:"path"`

	// Message is the human-readable completion text.
	Message string `json:"message"`

	// Timestamp is the creation instant assigned by the registry. It is
	// the primary ordering key: the in-memory collection is always kept
	// sorted by Timestamp descending.
	Timestamp time.Time `json:"timestamp"`

	// StartTime and EndTime optionally describe the task's execution
	// window. Either or both may be absent.
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// Model is an optional model identifier in the dash-delimited
	// family-variant-major-minor-date convention. Display only.
	Model string `json:"model,omitempty"`

	// IsRead indicates whether the user has seen this notification.
	IsRead bool `json:"isRead"`
}

// TimeString returns the creation time as HH:MM.
func (n Notification) TimeString() string {
	return n.Timestamp.Format("15:04")
}

// TimeRangeString returns "start~end" as HH:MM~HH:MM when the execution
// window is known, otherwise the creation time alone.
func (n Notification) TimeRangeString() string {
	if n.StartTime == nil || n.EndTime == nil {
		return n.TimeString()
	}
	return n.StartTime.Format("15:04") + "~" + n.EndTime.Format("15:04")
}

// DurationString returns the task duration formatted for display, or ""
// when the execution window is incomplete.
func (n Notification) DurationString() string {
	if n.StartTime == nil || n.EndTime == nil {
		return ""
	}

	seconds := int(n.EndTime.Sub(*n.StartTime).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

// TimeAgo returns a relative description of the creation time bucketed
// into "just now", minutes, hours, or days.
func (n Notification) TimeAgo() string {
	seconds := int(time.Since(n.Timestamp).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}

// DateKey returns the local calendar date of the creation instant,
// formatted yyyy-mm-dd. Used as the grouping key for the date view.
func (n Notification) DateKey() string {
	return n.Timestamp.Format("2006-01-02")
}

// FullDateString returns the creation date formatted for section headers.
func (n Notification) FullDateString() string {
	return n.Timestamp.Format("January 2, 2006")
}

// ModelShort parses the dash-delimited model identifier into a short
// display label. It recognizes the opus/sonnet/haiku family keywords and,
// when at least four dash segments are present, treats segments three and
// four as a major.minor version suffix. With no family keyword and fewer
// than four segments it falls back to the first segment verbatim.
func (n Notification) ModelShort() string {
	if n.Model == "" {
		return ""
	}

	parts := strings.Split(n.Model, "-")

	var name string
	switch {
	case strings.Contains(n.Model, "opus"):
		name = "Opus"
	case strings.Contains(n.Model, "sonnet"):
		name = "Sonnet"
	case strings.Contains(n.Model, "haiku"):
		name = "Haiku"
	}

	var version string
	if len(parts) >= 4 {
		version = parts[2] + "." + parts[3]
	}

	switch {
	case name != "" && version != "":
		return name + " " + version
	case name != "":
		return name
	default:
		return parts[0]
	}
}
