package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger: JSON in production, text
// otherwise.
func Init(environment string) {
	var handler slog.Handler
	if strings.ToLower(environment) == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// WithRequest returns a logger scoped to one HTTP request.
func WithRequest(method, path, requestID string) *slog.Logger {
	return slog.With(
		"method", method,
		"path", path,
		"request_id", requestID,
	)
}
