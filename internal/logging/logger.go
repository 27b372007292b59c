package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // human-readable console output instead of JSON
	Out    io.Writer // defaults to stderr
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger sets the package-level logger
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}

// EngineLogger adapts a zerolog.Logger to the calculation engine's
// printf-style Logger interface.
type EngineLogger struct {
	log zerolog.Logger
}

// NewEngineLogger tags every engine message with component=engine
func NewEngineLogger(l zerolog.Logger) *EngineLogger {
	return &EngineLogger{log: l.With().Str("component", "engine").Logger()}
}

func (e *EngineLogger) Debugf(format string, args ...any) {
	e.log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Infof(format string, args ...any) {
	e.log.Info().Msg(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Warnf(format string, args ...any) {
	e.log.Warn().Msg(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Errorf(format string, args ...any) {
	e.log.Error().Msg(fmt.Sprintf(format, args...))
}
