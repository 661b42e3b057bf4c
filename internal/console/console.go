// Package console is the tool's line logger: plain log.Logger output on
// stderr, with ANSI highlights when the destination is a terminal.
package console

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[94m"
)

// Logger writes one line per message. A nil *Logger discards everything.
type Logger struct {
	l     *log.Logger
	color bool
	debug bool
}

// Options tunes a Logger.
type Options struct {
	NoColor bool
	Debug   bool
}

// New returns a Logger writing to w. Colour is enabled only when w is a
// terminal and opts.NoColor is unset.
func New(w io.Writer, opts Options) *Logger {
	return &Logger{
		l:     log.New(w, "", 0),
		color: !opts.NoColor && isTerminal(w),
		debug: opts.Debug,
	}
}

// Discard returns a Logger that drops all output.
func Discard() *Logger {
	return New(io.Discard, Options{NoColor: true})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.l.Printf(format, args...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.l.Print("Warning: " + fmt.Sprintf(format, args...))
}

// Error logs a failure that stopped one piece of work.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.l.Print("Error: " + fmt.Sprintf(format, args...))
}

// Debug logs only when debug output is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	l.l.Print("debug: " + fmt.Sprintf(format, args...))
}

// Green highlights a path or name that was produced.
func (l *Logger) Green(s string) string { return l.paint(ansiGreen, s) }

// Red highlights a path or name that is missing or wrong.
func (l *Logger) Red(s string) string { return l.paint(ansiRed, s) }

// Blue highlights a tag.
func (l *Logger) Blue(s string) string { return l.paint(ansiBlue, s) }

func (l *Logger) paint(code, s string) string {
	if l == nil || !l.color {
		return s
	}
	return code + s + ansiReset
}
