// Package logging provides the leveled diagnostic logger. Everything goes
// to stderr (stdout carries data), plus an optional plain-text log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/backmassage/uniqs/internal/config"
	"github.com/backmassage/uniqs/internal/term"
)

// Logger provides leveled, optionally colored logging with an optional
// file sink.
type Logger struct {
	mu      sync.Mutex
	console *log.Logger
	file    *os.File
	fileLog *log.Logger
}

// NewLogger configures console colors from cfg and optionally opens
// cfg.LogFile for appending. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stderr, term.ColorEnabled(cfg.ColorMode, os.Stderr))
}

func newLogger(cfg *config.Config, w io.Writer, color bool) (*Logger, error) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	l := &Logger{
		console: log.NewWithOptions(w, log.Options{
			Prefix: "uniqs",
			Level:  level,
		}),
	}
	if color {
		l.console.SetColorProfile(termenv.ANSI256)
	} else {
		l.console.SetColorProfile(termenv.Ascii)
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.fileLog = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
			Level:           log.DebugLevel,
		})
		l.fileLog.SetColorProfile(termenv.Ascii)
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

func (l *Logger) line(level log.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console.Log(level, msg)
	if l.fileLog != nil {
		l.fileLog.Log(level, msg)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) {
	l.line(log.InfoLevel, format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) {
	l.line(log.WarnLevel, format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...any) {
	l.line(log.ErrorLevel, format, args...)
}

// Debug logs at DEBUG level; shown on the console only with --verbose, always
// written to the log file.
func (l *Logger) Debug(format string, args ...any) {
	l.line(log.DebugLevel, format, args...)
}
