package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/epl-compare-service/internal/http/middleware"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error     string         `json:"error"`
	RequestID string         `json:"requestId,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// writeJSON encodes payload before touching w, so a payload that cannot be
// encoded turns into a 500 instead of a truncated 2xx.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error(logger, "failed to encode response", err, logging.FieldStatusCode, status)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "internal error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorDetails(w, r, status, message, nil, logger)
}

// writeErrorDetails tags the body with the request id, taken from the
// context or, outside the middleware, from the request header.
func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, message string, details map[string]any, logger *slog.Logger) {
	id := middleware.RequestIDFromContext(r.Context())
	if id == "" {
		id = r.Header.Get(middleware.HeaderRequestID)
	}
	writeJSON(w, status, ErrorResponse{Error: message, RequestID: id, Details: details}, logger)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
		return false
	}
	return true
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
