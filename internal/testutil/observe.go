package testutil

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
)

// NewBufferLogger logs text at debug level into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// NewRecorderWithShutdown mirrors metrics.Setup's results for a disabled exporter.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}
