// Package logging is the operational log shared by every evalboard command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = newLogger(os.Stderr)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init routes log output to stdout and, when logPath is set, appends to logPath.
func Init(logPath string) error {
	return initOutput(logPath, os.Stdout)
}

// InitFileOnly routes log output to logPath alone. Used while a full-screen
// terminal UI owns stdout.
func InitFileOnly(logPath string) error {
	return initOutput(logPath, nil)
}

func initOutput(logPath string, console io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// SetOutput redirects the log to w. Used by commands that own their output
// stream and by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetDebug toggles debug-level output.
func SetDebug(enabled bool) {
	if enabled {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Close releases the log file and resets output to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes an informational line.
func LogEvent(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

// LogDebug writes a line only when debug output is enabled.
func LogDebug(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// LogLoadFailure records why a report could not be loaded.
func LogLoadFailure(source, kind string, err error) {
	logger.WithFields(logrus.Fields{
		"source": valueOrUnknown(source),
		"kind":   valueOrUnknown(kind),
	}).Warn(fmt.Sprintf("failed to load report: %v", err))
}

// LogRequest records one served HTTP request.
func LogRequest(method, path string, status int, available bool) {
	logger.WithFields(logrus.Fields{
		"method":    strings.ToUpper(strings.TrimSpace(method)),
		"path":      valueOrUnknown(path),
		"status":    status,
		"available": available,
	}).Info("[HTTP] request served")
}

func valueOrUnknown(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "unknown"
	}
	return v
}
