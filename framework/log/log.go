// Package log provides the framework logger — mirrors Laravel's Log
// facade, backed by zerolog.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

// Options configures the logger. Zero value: info level, pretty console
// output on stderr.
type Options struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string

	// Pretty switches between the human console writer and raw JSON.
	Pretty bool

	// Out overrides the output writer; nil means stderr.
	Out io.Writer
}

// Init configures the global logger. Idempotent — only the first call wins,
// so the application kernel can call it unconditionally.
func Init(opts Options) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil || opts.Level == "" {
			lvl = zerolog.InfoLevel
		}

		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}

		logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	})
}

// Logger returns the global logger, initializing defaults if needed.
func Logger() *zerolog.Logger {
	Init(Options{})
	return &logger
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return Logger().Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { return Logger().Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return Logger().Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { return Logger().Error() }

// Fatal starts a fatal-level event; Msg() exits the process.
func Fatal() *zerolog.Event { return Logger().Fatal() }
