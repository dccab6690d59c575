package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. The TUI owns the terminal, so L writes to a
// file once Setup has run and discards output before that.
var L = clog.New(io.Discard)

// Setup points L at the log file at path with the given level name
// ("debug", "info", "warn", "error"). The returned func closes the file.
func Setup(path, level string) (func() error, error) {
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		lvl = clog.InfoLevel
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	L = clog.NewWithOptions(f, clog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "atlasgrip",
	})
	return f.Close, nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
