package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		unresolvable *mapping.UnresolvableMappingError
		invalidReq   *mapping.InvalidMappingRequestError
	)
	switch {
	case errors.As(err, &invalidReq):
		return http.StatusInternalServerError
	case errors.As(err, &unresolvable):
		return http.StatusConflict
	case errors.Is(err, season.ErrInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, timeutil.ErrInvalidSeason), errors.Is(err, comparison.ErrUnknownMetric):
		return http.StatusBadRequest
	case errors.Is(err, season.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, providers.ErrProviderUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes it with the status statusFor picks.
// Unresolvable mappings carry the unpaired teams in details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	var details map[string]any
	var unresolvable *mapping.UnresolvableMappingError
	if errors.As(err, &unresolvable) {
		details = map[string]any{
			"unpairedPromoted":  nonNil(unresolvable.UnpairedPromoted),
			"unpairedRelegated": nonNil(unresolvable.UnpairedRelegated),
			"unranked":          nonNil(unresolvable.Unranked),
		}
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error(logger, "request failed", err)
		msg = "internal error"
	} else {
		logging.Warn(logger, "request rejected",
			slog.Int(logging.FieldStatusCode, status),
			logging.Err(err),
		)
	}
	writeErrorDetails(w, r, status, msg, details, logger)
}
