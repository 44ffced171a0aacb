// Package observability sets up logging and tracing for the service.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for all service spans.
const TracerName = "github.com/Black-And-White-Club/scrim-bot"

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// Init builds the process logger from LOG_LEVEL (or the configured level when
// the variable is unset) and installs it as the slog default.
func Init(configured string) *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = configured
	}
	logger := NewLogger(os.Stdout, level)
	slog.SetDefault(logger)
	logger.Info("Logger initialized", "level", ParseLevel(level).String())
	return logger
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
