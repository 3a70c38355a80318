// Package logger is the structured logging facade used across the API.
// Callers log through the Logger interface; the backend (slog or zap) is picked
// from configuration at startup.
package logger

import (
	"context"
	"strings"
	"time"
)

// Level represents log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel converts a string to a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// Field keys shared by every journal log line. Request-scoped keys are added by
// the HTTP middleware; entry keys by the journal service.
const (
	KeyRequestID = "request_id"
	KeyUserID    = "user_id"
	KeyEntryDate = "entry_date"
	KeyMoodValue = "mood_value"
	KeyQuickNote = "quick_note"
)

// entryDateLayout matches the YYYY-MM-DD date used on the wire
const entryDateLayout = "2006-01-02"

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Time creates a time field
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field under the "error" key
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with an arbitrary value
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// UserID creates the user_id field
func UserID(id string) Field {
	return Field{Key: KeyUserID, Value: id}
}

// EntryDate creates the entry_date field as a calendar date, never a timestamp
func EntryDate(date time.Time) Field {
	return Field{Key: KeyEntryDate, Value: date.Format(entryDateLayout)}
}

// MoodValue creates the mood_value field (1..10)
func MoodValue(v int) Field {
	return Field{Key: KeyMoodValue, Value: v}
}

// Logger is implemented by each backend
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a new Logger with the given fields added to all log entries
	With(fields ...Field) Logger
	// WithContext returns a new Logger carrying request_id and user_id from ctx
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Backend names accepted by New
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config holds logging configuration
type Config struct {
	Level Level
	// Format is "json" or "text". The zap backend maps "text" to its console encoder.
	Format string
	// Backend is "slog" or "zap"
	Backend string
	// AddSource adds source file:line to log entries
	AddSource bool
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  "json",
		Backend: BackendSlog,
	}
}

// New builds a Logger for cfg.Backend, falling back to slog for unknown names
func New(cfg Config) (Logger, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendZap:
		return NewZapLogger(cfg)
	default:
		return NewSlogLogger(cfg), nil
	}
}

var defaultLogger Logger

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the default global logger
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
func With(fields ...Field) Logger       { return Default().With(fields...) }

const redactedValue = "[REDACTED]"

// redactedKeys never reach a log sink with their real value
var redactedKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"access_token":  {},
	"authorization": {},
	"jwt_secret":    {},
	"api_key":       {},
	"service_key":   {},
	// Journal notes are personal; only their length may be logged
	KeyQuickNote: {},
}

// redact returns fields with sensitive values masked. The input is not modified.
func redact(fields []Field) []Field {
	var out []Field
	for i, f := range fields {
		if _, ok := redactedKeys[strings.ToLower(f.Key)]; !ok {
			continue
		}
		if out == nil {
			out = append([]Field(nil), fields...)
		}
		out[i].Value = redactedValue
	}
	if out == nil {
		return fields
	}
	return out
}
