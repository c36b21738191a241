package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/mapping"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &season.ValidationError{Season: 2026, Dataset: "fixtures", Problems: []string{"x"}}, http.StatusUnprocessableEntity},
		{"unresolvable", fmt.Errorf("wrap: %w", &mapping.UnresolvableMappingError{Unranked: []string{"Leeds United"}}), http.StatusConflict},
		{"invalid mapping request", &mapping.InvalidMappingRequestError{Team: "Arsenal"}, http.StatusInternalServerError},
		{"not found", fmt.Errorf("load: %w", season.ErrNotFound), http.StatusNotFound},
		{"invalid season", timeutil.ValidateSeason(1800), http.StatusBadRequest},
		{"unknown metric", comparison.ErrUnknownMetric, http.StatusBadRequest},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"rate limited", &providers.RateLimitError{Provider: "footballdata"}, http.StatusServiceUnavailable},
		{"no provider", providers.ErrProviderUnavailable, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%s: statusFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}
