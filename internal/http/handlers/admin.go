package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/epl-compare-service/internal/http/requestutil"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

// SnapshotRefresher rewrites the snapshots of one season from the provider.
type SnapshotRefresher interface {
	RefreshSeason(ctx context.Context, id int) (int, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher     SnapshotRefresher
	token         string
	defaultSeason int
	logger        *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. Requests are refused while token is empty.
func NewAdminHandler(refresher SnapshotRefresher, token string, defaultSeason int, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher:     refresher,
		token:         token,
		defaultSeason: defaultSeason,
		logger:        logger,
	}
}

// RefreshSnapshots refetches ?season= (defaults to the current season) and
// rewrites its snapshot files.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot sync not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	id := h.defaultSeason
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		parsed, err := timeutil.ParseSeason(raw)
		if err != nil {
			logging.Warn(logger, "admin snapshot invalid season", slog.String(logging.FieldSeason, raw))
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
		id = parsed
	}

	written, err := h.refresher.RefreshSeason(r.Context(), id)
	if err != nil {
		logging.Warn(logger, "admin snapshot refresh failed",
			slog.Int(logging.FieldSeason, id),
			slog.Int(logging.FieldCount, written),
			logging.Err(err),
		)
		status := statusFor(err)
		if status == http.StatusInternalServerError || status == http.StatusNotFound {
			status = http.StatusBadGateway
		}
		writeError(w, r, status, "snapshot refresh failed: "+err.Error(), logger)
		return
	}

	logging.Info(logger, "admin snapshot refreshed",
		slog.Int(logging.FieldSeason, id),
		slog.Int(logging.FieldCount, written),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"season":    id,
		"label":     timeutil.SeasonLabel(id),
		"snapshots": written,
		"status":    "ok",
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
