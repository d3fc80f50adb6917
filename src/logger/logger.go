package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLogLevel selects the minimum level written by ConsoleLogger.
const EnvLogLevel = "PANTRY_LOG_LEVEL"

// Logger defines the interface for logging throughout the application.
// Diagnostics never go to stdout: stdout carries the output CI consumes.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// ConsoleLogger writes human-readable logs to stderr.
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewConsoleLogger returns a ConsoleLogger on stderr at the level named by
// PANTRY_LOG_LEVEL (default info).
func NewConsoleLogger() *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, ParseLevel(os.Getenv(EnvLogLevel)))
}

// NewConsoleLoggerTo returns a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, level zerolog.Level) *ConsoleLogger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return &ConsoleLogger{
		log: zerolog.New(out).Level(level),
	}
}

func (c *ConsoleLogger) Info(msg string, args ...interface{}) {
	c.log.Info().Msgf(msg, args...)
}

func (c *ConsoleLogger) Error(msg string, args ...interface{}) {
	c.log.Error().Msgf(msg, args...)
}

func (c *ConsoleLogger) Debug(msg string, args ...interface{}) {
	c.log.Debug().Msgf(msg, args...)
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// fall back to info.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// SilentLogger discards all log messages.
// Used by tests and by the MCP server, where stdio carries the protocol.
type SilentLogger struct{}

func NewSilentLogger() *SilentLogger {
	return &SilentLogger{}
}

func (s *SilentLogger) Info(msg string, args ...interface{})  {}
func (s *SilentLogger) Error(msg string, args ...interface{}) {}
func (s *SilentLogger) Debug(msg string, args ...interface{}) {}
