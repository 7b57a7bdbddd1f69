// Package cue plays short audible cues when a notification is ingested.
// Cues are synthesized tones, so no audio assets ship with the binary.
package cue

import "time"

// Names lists the selectable cues, in menu order. "None" disables the
// ingestion cue.
var Names = []string{
	"Pop", "Purr", "Tink", "Glass", "Ping", "Submarine", "Funk", "Hero", "None",
}

// IsValid reports whether name is one of the selectable cues.
func IsValid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Player plays a named cue. Safe for concurrent use.
type Player interface {
	Play(name string) error
}

// note is one tone of a cue melody.
type note struct {
	freq     float64
	duration time.Duration
}

// melodies maps each cue name to its tone sequence. The exact voicings
// are arbitrary; they just need to be short and tell-apart-able.
var melodies = map[string][]note{
	"Pop":       {{880, 90 * time.Millisecond}},
	"Purr":      {{220, 240 * time.Millisecond}},
	"Tink":      {{1320, 70 * time.Millisecond}},
	"Glass":     {{1760, 60 * time.Millisecond}, {2200, 90 * time.Millisecond}},
	"Ping":      {{1568, 140 * time.Millisecond}},
	"Submarine": {{330, 180 * time.Millisecond}, {262, 180 * time.Millisecond}},
	"Funk":      {{440, 80 * time.Millisecond}, {330, 110 * time.Millisecond}},
	"Hero":      {{660, 100 * time.Millisecond}, {880, 160 * time.Millisecond}},
}
