// Package testutil provides shared constructors for package tests.
package testutil

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/internal/store"
)

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewTestRecordLog creates a RecordLog backed by a file in a temp
// directory that is removed when the test completes.
func NewTestRecordLog(t *testing.T) *store.RecordLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), store.LogFileName)
	return store.NewRecordLog(path, NewTestLogger())
}

// NewTestSettings creates an in-memory SettingsStore with all
// migrations applied. It is closed automatically when the test completes.
func NewTestSettings(t *testing.T) *store.SettingsStore {
	t.Helper()

	s, err := store.NewSettingsStore(":memory:")
	if err != nil {
		t.Fatalf("creating test settings store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test settings store: %v", err)
		}
	})

	return s
}

// NewTestRegistry creates a started Registry over a temp record log
// with screen geometry already set, so panel transitions are observable.
func NewTestRegistry(t *testing.T, dismissDelay time.Duration) *registry.Registry {
	t.Helper()

	r := registry.New(NewTestRecordLog(t), dismissDelay, 5, nil, nil, NewTestLogger())
	if err := r.Start(); err != nil {
		t.Fatalf("starting test registry: %v", err)
	}
	t.Cleanup(r.Stop)

	r.SetScreenSize(120, 40)
	return r
}
