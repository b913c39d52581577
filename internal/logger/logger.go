// Package logger defines a type for writing to logs, a leveled console
// logger that produces timestamped, color-coded lines, and a thread-safe
// implementation of an io.Writer that buffers log lines in a ring buffer and
// allows them to be streamed through an HTTP endpoint or retrieved as a
// snapshot.
package logger

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logf is the basic logger type: a printf-like func. Like [log.Printf], the
// format need not end in a newline. Logf functions must be safe for concurrent
// use.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// Level is the severity of a log line.
type Level int

// Available log levels.
const (
	Info Level = iota
	Warn
	Error
	Request
)

// String implements the fmt.Stringer interface.
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERR"
	case Request:
		return "REQ"
	}
	return "UNKNOWN"
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

func (l Level) color() string {
	switch l {
	case Info:
		return colorGreen
	case Warn:
		return colorYellow
	case Error:
		return colorRed
	case Request:
		return colorBlue
	}
	return colorReset
}

// Logger writes leveled log lines in the form
//
//	[15:04:05.000] [LEVEL] message
//
// coloring the level tag when colors are enabled. Logger is safe for
// concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	color bool

	now func() time.Time // used in tests
}

// New returns a [Logger] writing to out. If color is true, each level tag is
// wrapped in an ANSI color code.
func New(out io.Writer, color bool) *Logger {
	return &Logger{out: out, color: color, now: time.Now}
}

// Infof writes an INFO line.
func (l *Logger) Infof(format string, args ...any) { l.printf(Info, format, args...) }

// Warnf writes a WARN line.
func (l *Logger) Warnf(format string, args ...any) { l.printf(Warn, format, args...) }

// Errf writes an ERR line.
func (l *Logger) Errf(format string, args ...any) { l.printf(Error, format, args...) }

// Reqf writes a REQ line.
func (l *Logger) Reqf(format string, args ...any) { l.printf(Request, format, args...) }

func (l *Logger) printf(lvl Level, format string, args ...any) {
	tag := lvl.String()
	if l.color {
		tag = lvl.color() + tag + colorReset
	}
	line := fmt.Sprintf("[%s] [%s] %s\n", l.now().Format("15:04:05.000"), tag, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, line)
}
