// Package debug provides the opt-in file logger. The TUI owns stderr and
// stdout carries the emitted shell script, so debug output never goes to
// either stream: set TRY_DEBUG to a file path to capture it.
package debug

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Logger returns the process-wide debug logger. It discards everything
// unless TRY_DEBUG names a writable file.
func Logger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(io.Discard)

		path := os.Getenv("TRY_DEBUG")
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		logger.SetOutput(f)
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return logger
}
