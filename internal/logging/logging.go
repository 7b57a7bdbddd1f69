// Package logging sets up the process log file. The renderer owns the
// terminal, so nothing may write to stdout or stderr while the app runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the process log kept under the data directory.
const FileName = "claude-notify.log"

// Setup creates a logger writing to the log file inside dir. If the
// file cannot be opened the logger discards output rather than
// corrupting the terminal.
func Setup(dir string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, fmt.Errorf("opening log file %s: %w", path, err)
	}

	logger.SetOutput(f)
	return logger, nil
}
