// Package log provides structured logging for glm on top of zerolog.
//
// On init it registers itself as the warning sink of pkg/errors, so
// non-fatal diagnostics such as ConvergenceWarning are emitted as
// structured warn-level events. Warning types that implement
// zerolog.LogObjectMarshaler are logged with their full fields.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gomlab/glm/pkg/errors"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
)

func init() {
	errors.SetZerologWarnFunc(logWarning)
}

// Logger returns the current package logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. Useful for redirecting output in
// services that already carry a configured zerolog instance.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetLevel adjusts the minimum level of the package logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// SetOutput redirects the package logger to w with JSON output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

// logWarning emits a library warning as a warn-level event.
func logWarning(warning error) {
	l := Logger()
	if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
		l.Warn().EmbedObject(obj).Msg(warning.Error())
		return
	}
	l.Warn().Err(warning).Msg("glm warning")
}
