package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing JSON lines to stdout.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		level := zerolog.InfoLevel
		if os.Getenv("BRIEF_DEBUG") != "" {
			level = zerolog.DebugLevel
		}
		defaultLogger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
		defaultLogger.Info().Msg("Logger initialized")
	})
}

// Get returns the initialized default logger.
func Get() zerolog.Logger {
	Init()
	return defaultLogger
}

// Info logs an informational message with alternating key/value args.
func Info(msg string, args ...any) {
	l := Get()
	l.Info().Fields(args).Msg(msg)
}

// Warn logs a warning message with alternating key/value args.
func Warn(msg string, args ...any) {
	l := Get()
	l.Warn().Fields(args).Msg(msg)
}

// Error logs an error message. A nil err is allowed and omitted.
func Error(msg string, err error, args ...any) {
	l := Get()
	evt := l.Error().Fields(args)
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

// Debug logs a debug message with alternating key/value args.
func Debug(msg string, args ...any) {
	l := Get()
	l.Debug().Fields(args).Msg(msg)
}
