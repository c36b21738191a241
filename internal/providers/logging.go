package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/epl-compare-service/internal/logging"
)

// scopedLogger prefers the request logger on ctx and tags it with the
// provider name. It returns nil when neither logger is set.
func scopedLogger(ctx context.Context, fallback *slog.Logger, provider string) *slog.Logger {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return nil
	}
	return logger.With(slog.String(logging.FieldProvider, provider))
}
