package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nerdmakr/claude-notify/internal/model"
)

// LogFileName is the durable log file kept under the data directory.
const LogFileName = "notifications.jsonl"

// RecordLog is the append-only durable log of notification records: one
// JSON object per line, written once and never rewritten. In-memory
// deletion and read-state changes are deliberately not written back, so
// the file doubles as a full audit trail of everything ever ingested.
type RecordLog struct {
	path string
	log  *logrus.Logger
}

// NewRecordLog creates a RecordLog backed by the file at path. The file
// itself is created lazily on the first append.
func NewRecordLog(path string, log *logrus.Logger) *RecordLog {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RecordLog{path: path, log: log}
}

// Path returns the location of the underlying log file.
func (l *RecordLog) Path() string {
	return l.path
}

// LoadAll reads every record from the log in file order. Lines that fail
// to parse are skipped so a single corrupt entry never hides the rest of
// the history. A missing file yields an empty slice. The caller is
// responsible for sorting.
func (l *RecordLog) LoadAll() ([]model.Notification, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening record log %s: %w", l.path, err)
	}
	defer f.Close()

	var records []model.Notification

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var n model.Notification
		if err := json.Unmarshal(line, &n); err != nil {
			l.log.WithError(err).Warn("skipping corrupt record log line")
			continue
		}
		records = append(records, n)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("reading record log %s: %w", l.path, err)
	}

	return records, nil
}

// Append serializes one record and writes it as a new line at the end of
// the log, creating the file and its parent directory if absent.
func (l *RecordLog) Append(n model.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", n.ID, err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening record log %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending record %s: %w", n.ID, err)
	}

	return nil
}
