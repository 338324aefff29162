package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Log flags, re-exported so callers need not import log
const (
	LstdFlags     = log.LstdFlags
	Lmicroseconds = log.Lmicroseconds
)

// Logger wraps the standard log.Logger with a verbosity switch for debug lines
type Logger struct {
	*log.Logger
	verbose bool
}

// New creates a new logger writing to stdout
func New() *Logger {
	return NewWriter(os.Stdout)
}

// NewWriter creates a new logger that writes to the provided writer
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// SetVerbose enables Debugf output
func (l *Logger) SetVerbose(v bool) {
	l.verbose = v
}

// Debugf logs only in verbose mode
func (l *Logger) Debugf(format string, v ...any) {
	if !l.verbose {
		return
	}
	l.Output(2, "DEBUG "+fmt.Sprintf(format, v...))
}

// Errorf logs with an ERROR tag
func (l *Logger) Errorf(format string, v ...any) {
	l.Output(2, "ERROR "+fmt.Sprintf(format, v...))
}
