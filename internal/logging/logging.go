// Package logging builds the process logger. The dashboard owns the
// terminal, so entries go to a file as JSON, never to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing JSON lines to path at level. An empty path
// yields a logger that discards everything. The returned closer releases the
// file and is never nil.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	lvl := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	log.SetLevel(lvl)

	if strings.TrimSpace(path) == "" {
		discard := Discard()
		discard.SetFormatter(log.Formatter)
		discard.SetLevel(lvl)
		return discard, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
