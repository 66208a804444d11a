// Package logging builds the slog loggers used by the sonner CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const timeFormat = time.TimeOnly

// Options configures New.
type Options struct {
	// Level is the minimum level logged.
	Level slog.Level

	// NoColor disables ANSI colors.
	NoColor bool

	// AddSource adds file:line to debug output.
	AddSource bool
}

// New returns a tint console logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:  opts.AddSource,
		Level:      opts.Level,
		TimeFormat: timeFormat,
		NoColor:    opts.NoColor,
	}))
}

// Setup installs a stderr logger as the slog default and returns it.
// Colors are turned off when stderr is not a terminal.
func Setup(opts Options) *slog.Logger {
	if !IsTerminal(os.Stderr) {
		opts.NoColor = true
	}
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
