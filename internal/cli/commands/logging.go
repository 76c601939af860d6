package commands

import (
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// newLogger returns a text logger on w. Verbose enables debug output,
// otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// warnf prints a highlighted status line.
func warnf(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

// infof prints a success status line.
func infof(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}
