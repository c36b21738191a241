package handlers

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/epl-compare-service/internal/app/compare"
	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
	"github.com/preston-bernstein/epl-compare-service/internal/poller"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

const maxImproversLimit = 50

// Seasons are the comparison seasons used when a request names none.
type Seasons struct {
	Current   int
	Reference int
}

// Handler wires HTTP routes to the comparison service.
type Handler struct {
	svc      *compare.Service
	seasons  Seasons
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *compare.Service, seasons Seasons, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	if seasons.Reference == 0 {
		seasons.Reference = seasons.Current - 1
	}
	return &Handler{
		svc:      svc,
		seasons:  seasons,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch path := r.URL.Path; {
	case path == "/health":
		h.Health(w, r)
	case path == "/ready":
		h.Ready(w, r)
	case path == "/comparisons":
		h.Comparisons(w, r)
	case path == "/comparisons/improvers":
		h.Improvers(w, r)
	case strings.HasPrefix(path, "/comparisons/teams/"):
		h.TeamComparison(w, r)
	case path == "/substitutions":
		h.Substitutions(w, r)
	case strings.HasPrefix(path, "/seasons/"):
		h.SeasonFixtures(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the current season has been fetched at least once.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// ComparisonResponse is the ranked comparison table.
type ComparisonResponse struct {
	CurrentSeason   int                    `json:"currentSeason"`
	ReferenceSeason int                    `json:"referenceSeason"`
	CurrentLabel    string                 `json:"currentLabel"`
	ReferenceLabel  string                 `json:"referenceLabel"`
	Substitutions   []mapping.Pair         `json:"substitutions"`
	Coverage        mapping.Coverage       `json:"coverage"`
	Rows            []comparison.RankedRow `json:"rows"`
}

// Comparisons serves the full comparison table, optionally narrowed to one
// team with ?team=.
func (h *Handler) Comparisons(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	current, reference, ok := h.seasonPair(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	res, err := h.svc.Compare(r.Context(), current, reference)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	rows := comparison.Rank(res.Rows)
	if team := strings.TrimSpace(r.URL.Query().Get("team")); team != "" {
		row, found := findRanked(rows, team)
		if !found {
			writeError(w, r, nethttp.StatusNotFound, fmt.Sprintf("team %q not in season %s", team, res.CurrentLabel), logger)
			return
		}
		rows = []comparison.RankedRow{row}
	}

	writeJSON(w, nethttp.StatusOK, ComparisonResponse{
		CurrentSeason:   res.CurrentSeason,
		ReferenceSeason: res.ReferenceSeason,
		CurrentLabel:    res.CurrentLabel,
		ReferenceLabel:  res.ReferenceLabel,
		Substitutions:   res.Substitutions,
		Coverage:        res.Coverage,
		Rows:            rows,
	}, logger)
}

// TeamComparison serves /comparisons/teams/{team}.
func (h *Handler) TeamComparison(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/comparisons/teams/")
	team, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(team) == "" || strings.Contains(team, "/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team", h.logger)
		return
	}
	current, reference, ok := h.seasonPair(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	detail, err := h.svc.Team(r.Context(), current, reference, team)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, detail, logger)
}

// ImproversResponse lists the biggest movers for one metric.
type ImproversResponse struct {
	CurrentSeason   int                   `json:"currentSeason"`
	ReferenceSeason int                   `json:"referenceSeason"`
	Metric          comparison.Metric     `json:"metric"`
	Improvers       []comparison.Improver `json:"improvers"`
}

// Improvers serves /comparisons/improvers?metric=&limit=.
func (h *Handler) Improvers(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	current, reference, ok := h.seasonPair(w, r)
	if !ok {
		return
	}
	metric, err := comparison.ParseMetric(strings.TrimSpace(r.URL.Query().Get("metric")))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	limit := 5
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxImproversLimit {
			writeError(w, r, nethttp.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxImproversLimit), h.logger)
			return
		}
	}
	logger := loggerFromContext(r, h.logger)

	list, err := h.svc.Improvers(r.Context(), current, reference, metric, limit)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, ImproversResponse{
		CurrentSeason:   current,
		ReferenceSeason: reference,
		Metric:          metric,
		Improvers:       list,
	}, logger)
}

// Substitutions serves the promoted/relegated pairing between two seasons.
func (h *Handler) Substitutions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	current, reference, ok := h.seasonPair(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	subs, err := h.svc.Substitutions(r.Context(), current, reference)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, subs, logger)
}

// FixturesResponse is one season's fixture list.
type FixturesResponse struct {
	Season   int              `json:"season"`
	Label    string           `json:"label"`
	Fixtures []season.Fixture `json:"fixtures"`
}

// SeasonFixtures serves /seasons/{id}/fixtures. The id accepts either an
// ending year or a label like 2025/26.
func (h *Handler) SeasonFixtures(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/seasons/")
	raw, ok := strings.CutSuffix(rest, "/fixtures")
	if !ok || raw == "" {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}
	raw, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
		return
	}
	id, err := timeutil.ParseSeason(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	fixtures, err := h.svc.Fixtures(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "served season fixtures",
		logging.FieldSeason, id,
		logging.FieldCount, len(fixtures),
	)
	writeJSON(w, nethttp.StatusOK, FixturesResponse{
		Season:   id,
		Label:    timeutil.SeasonLabel(id),
		Fixtures: nonNil(fixtures),
	}, logger)
}

// seasonPair reads ?current= and ?reference=. A lone current implies the
// season before it as reference.
func (h *Handler) seasonPair(w nethttp.ResponseWriter, r *nethttp.Request) (current, reference int, ok bool) {
	q := r.URL.Query()
	current, reference = h.seasons.Current, h.seasons.Reference

	if raw := strings.TrimSpace(q.Get("current")); raw != "" {
		id, err := timeutil.ParseSeason(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid current season: "+err.Error(), h.logger)
			return 0, 0, false
		}
		current, reference = id, id-1
	}
	if raw := strings.TrimSpace(q.Get("reference")); raw != "" {
		id, err := timeutil.ParseSeason(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid reference season: "+err.Error(), h.logger)
			return 0, 0, false
		}
		reference = id
	}
	return current, reference, true
}

func findRanked(rows []comparison.RankedRow, team string) (comparison.RankedRow, bool) {
	plain := make([]comparison.Row, len(rows))
	for i, r := range rows {
		plain[i] = r.Row
	}
	match, ok := comparison.FindRow(plain, team)
	if !ok {
		return comparison.RankedRow{}, false
	}
	for _, r := range rows {
		if r.Team == match.Team {
			return r, true
		}
	}
	return comparison.RankedRow{}, false
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
