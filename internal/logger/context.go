package logger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Context keys for logging values
type contextKey string

const (
	requestIDKey contextKey = KeyRequestID
	userIDKey    contextKey = KeyUserID
	entryDateKey contextKey = KeyEntryDate
	loggerKey    contextKey = "logger"
)

// WithRequestID adds a request ID to the context.
// If requestID is empty, a new UUID is generated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID adds the authenticated journal owner's id to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the user ID from context
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithEntryDate scopes ctx to one journal day. The date is stored in ctx and
// the attached logger gains an entry_date field, so everything logged while
// saving that day (sentiment calls included) names it.
func WithEntryDate(ctx context.Context, date time.Time) context.Context {
	ctx = context.WithValue(ctx, entryDateKey, date)
	return WithLogger(ctx, FromContext(ctx).With(EntryDate(date)))
}

// EntryDateFromContext returns the journal day set by WithEntryDate
func EntryDateFromContext(ctx context.Context) (time.Time, bool) {
	date, ok := ctx.Value(entryDateKey).(time.Time)
	return date, ok
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context, or returns the default logger
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// extractContextFields returns the request-scoped identity fields. The entry
// date is not included: WithEntryDate already put it on the logger.
func extractContextFields(ctx context.Context) []Field {
	var fields []Field
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, String(KeyRequestID, id))
	}
	if id := UserIDFromContext(ctx); id != "" {
		fields = append(fields, UserID(id))
	}
	return fields
}

// Ctx returns the context's logger enriched with request_id and user_id
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
