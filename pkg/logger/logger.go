// Package logger provides the structured, levelled application logger
// built on log/slog. Production gets JSON on stdout; development gets the
// text handler. When LOG_MONGO_URI is configured, records are additionally
// shipped to a MongoDB collection (see mongo_handler.go).
//
// Request-scoped logging: the HTTP logging middleware stores a logger
// pre-tagged with the request_id in the context; WithCtx retrieves it so
// every line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_no", order.OrderNo)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/bazaar/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// AttachMongoSink tees log records into MongoDB. Called from server boot
// when LOG_MONGO_URI is set; a failed connection only logs a warning.
func AttachMongoSink() {
	uri := config.LogMongoURI()
	if uri == "" {
		return
	}

	mh, err := NewMongoHandler(uri)
	if err != nil {
		L.Warn("logger: mongo sink disabled", "error", err)
		return
	}

	L = slog.New(NewTeeHandler(L.Handler(), mh))
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped *slog.Logger into ctx. Called by
// the logging middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
