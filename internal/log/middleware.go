package log

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type ContextKey string

const LoggerContextKey ContextKey = "logger"

// Middleware puts the logger in the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the request logger, or one backed by slog.Default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// RequestIDMiddleware enriches the context logger with the request ID
func RequestIDMiddleware(extractRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := FromContext(r.Context()).With(FieldRequestID, extractRequestID(r))
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StructuredLogger emits the domain events of the dashboard with consistent fields.
// Events go through the request logger when the context carries one.
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

func (sl *StructuredLogger) from(ctx context.Context, component string) *Logger {
	logger := sl.logger
	if l, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		logger = l
	}
	return logger.WithComponent(component)
}

// LogLogin records a sign-in attempt. The password never reaches the log and
// rejected emails are masked down to their domain.
func (sl *StructuredLogger) LogLogin(ctx context.Context, email string, err error) {
	fields := NewFields().
		WithOperation(OpLogin).
		WithError(err)
	fields[FieldSuccess] = err == nil

	logger := sl.from(ctx, ComponentAuth)
	if err != nil {
		fields[FieldUser] = MaskEmail(email)
		logger.WarnContext(ctx, "Sign-in rejected", fields.ToSlice()...)
		return
	}
	fields[FieldUser] = email
	logger.InfoContext(ctx, "Sign-in accepted", fields.ToSlice()...)
}

// LogFilter records a transaction filter evaluation at debug level
func (sl *StructuredLogger) LogFilter(ctx context.Context, query, category string, count int) {
	fields := NewFields().
		WithFilter(query, category, count).
		WithOperation(OpFilter)

	sl.from(ctx, ComponentFilter).DebugContext(ctx, "Transactions filtered", fields.ToSlice()...)
}

// LogQuickAction records an acknowledged quick action
func (sl *StructuredLogger) LogQuickAction(ctx context.Context, actionID, eventID, user string) {
	fields := NewFields().
		WithAction(actionID, eventID, user).
		WithOperation(OpTrigger)

	sl.from(ctx, ComponentAction).InfoContext(ctx, "Quick action acknowledged", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)
	delete(allFields, FieldComponent)

	sl.from(ctx, component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}

// MaskEmail keeps only the domain of an address, e.g. "***@example.com".
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	if at := strings.LastIndex(email, "@"); at >= 0 && at < len(email)-1 {
		return "***" + email[at:]
	}
	return "***"
}
