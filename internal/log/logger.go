// Package log is the process-wide zerolog logger.
//
// Development builds write coloured console lines, everything else writes
// JSON. Call Configure once at startup; until then output is console at info.
package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     zerolog.Logger
	loggerLock sync.RWMutex
)

func init() {
	logger = newLogger(consoleWriter(os.Stdout), zerolog.InfoLevel)
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func consoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
	}
}

// Configure replaces the logger. Pretty output is used when development is
// true.
func Configure(development bool, levelStr string) {
	var output io.Writer = os.Stdout
	if development {
		output = consoleWriter(os.Stdout)
	}
	SetOutput(output, levelStr)
}

// SetOutput points the logger at w with the given level.
func SetOutput(w io.Writer, levelStr string) {
	l := newLogger(w, ParseLevel(levelStr))
	loggerLock.Lock()
	logger = l
	loggerLock.Unlock()
}

// ParseLevel converts a level name to a zerolog.Level. Unknown names map to
// info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether levelStr names a level ParseLevel understands.
func ValidLevel(levelStr string) bool {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func current() *zerolog.Logger {
	loggerLock.RLock()
	l := logger
	loggerLock.RUnlock()
	return &l
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return current().Debug()
}

// Info logs an info message
func Info() *zerolog.Event {
	return current().Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return current().Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return current().Error()
}

// zerologWriter adapts the current logger to io.Writer for stdlib loggers.
type zerologWriter struct{}

func (zerologWriter) Write(p []byte) (n int, err error) {
	// Trim trailing newline that stdlib log adds
	msg := strings.TrimSuffix(string(p), "\n")
	Warn().Msg(msg)
	return len(p), nil
}

// StdErrorLogger returns a standard library *log.Logger that writes warnings
// to zerolog. Useful for http.Server.ErrorLog.
func StdErrorLogger() *stdlog.Logger {
	return stdlog.New(zerologWriter{}, "", 0)
}
