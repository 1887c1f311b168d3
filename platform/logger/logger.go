// Package logger provides structured logging infrastructure.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"
	// UserIDKey is the context key for the authenticated user ID.
	UserIDKey contextKey = "user_id"
)

// Logger wraps slog.Logger for structured logging.
type Logger struct {
	*slog.Logger
}

// New creates a logger for the given environment. Development gets
// human-readable text at debug level, everything else JSON at info.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithContext returns a logger annotated with request and user IDs
// when they are present in the context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	out := l
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		out = &Logger{Logger: out.With(slog.String("request_id", requestID))}
	}
	if userID, ok := ctx.Value(UserIDKey).(string); ok && userID != "" {
		out = &Logger{Logger: out.With(slog.String("user_id", userID))}
	}
	return out
}

// HTTPRequest logs a completed HTTP request with timing.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// SearchExecuted logs an advanced search execution with its metadata.
func (l *Logger) SearchExecuted(churchID string, filters int, results int64, durationMs int64) {
	l.Info("search_executed",
		slog.String("church_id", churchID),
		slog.Int("filters", filters),
		slog.Int64("results", results),
		slog.Int64("duration_ms", durationMs),
	)
}

// SearchWarning logs a tolerated oddity in an accepted search request.
func (l *Logger) SearchWarning(churchID string, warning string) {
	l.Warn("search_warning",
		slog.String("church_id", churchID),
		slog.String("warning", warning),
	)
}

// SearchRejected logs a search request that failed validation.
func (l *Logger) SearchRejected(churchID string, errorCount int) {
	l.Warn("search_rejected",
		slog.String("church_id", churchID),
		slog.Int("validation_errors", errorCount),
	)
}

// DatabaseError logs a database failure with the failing operation.
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// EmailDeliveryFailed logs a best-effort email that could not be sent.
func (l *Logger) EmailDeliveryFailed(recipient, kind string, err error) {
	l.Warn("email_delivery_failed",
		slog.String("recipient", recipient),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs a rejected request due to rate limiting.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
