package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
	"github.com/preston-bernstein/epl-compare-service/internal/domain/teams"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

// Config controls how the football-data.org client reaches the upstream API.
type Config struct {
	BaseURL     string
	APIKey      string
	HTTPClient  *http.Client
	Competition string
}

// Client fetches Premier League fixtures and league tables from
// football-data.org v4 and maps them to domain models.
type Client struct {
	baseURL     string
	apiKey      string
	competition string
	httpClient  httpDoer
	now         func() time.Time

	namesMu sync.Mutex
	names   *teams.Canonicalizer
}

// NewClient constructs a football-data.org client with the provided configuration.
func NewClient(cfg Config) *Client {
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = season.CompetitionPremierLeague
	}
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		competition: competition,
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		now:         time.Now,
		names:       teams.NewCanonicalizer(),
	}
}

// FetchFixtures returns every league fixture of the season, in upstream order.
func (c *Client) FetchFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	var payload matchesResponse
	path := "/competitions/" + c.competition + "/matches"
	if err := c.get(ctx, path, id, &payload); err != nil {
		return nil, err
	}

	out := make([]season.Fixture, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		out = append(out, c.mapMatch(id, m))
	}
	return out, nil
}

// FetchStandings returns the TOTAL table for a competition's season, ordered
// by position. Home and away splits are ignored.
func (c *Client) FetchStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	competition = strings.TrimSpace(competition)
	if competition == "" {
		competition = c.competition
	}

	var payload standingsResponse
	if err := c.get(ctx, "/competitions/"+competition+"/standings", id, &payload); err != nil {
		return nil, err
	}

	for _, group := range payload.Standings {
		if !strings.EqualFold(group.Type, tableTotal) {
			continue
		}
		out := make([]season.Standing, 0, len(group.Table))
		for _, row := range group.Table {
			out = append(out, c.mapStanding(id, competition, row))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s %s season %d: no %s table: %w", providerName, competition, id, tableTotal, season.ErrNotFound)
}

func (c *Client) get(ctx context.Context, path string, id int, into any) error {
	req, err := c.buildRequest(ctx, path, id)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := decodedBody(resp)
	if err != nil {
		return fmt.Errorf("%s: %w", providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, body)
	}

	if err := json.NewDecoder(body).Decode(into); err != nil {
		return fmt.Errorf("%s: decode %s: %w", providerName, path, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, path string, id int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("season", strconv.Itoa(timeutil.UpstreamYear(id)))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")
	if c.apiKey != "" {
		req.Header.Set(authHeader, c.apiKey)
	}
	return req, nil
}

func (c *Client) statusError(resp *http.Response, body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))
	var apiErr errorResponse
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: c.retryAfter(resp.Header),
			Remaining:  resp.Header.Get(availableHeader),
			Message:    msg,
		}
	}

	statusErr := &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Message: msg}
	if resp.StatusCode == http.StatusNotFound {
		return errors.Join(season.ErrNotFound, statusErr)
	}
	return statusErr
}

// retryAfter prefers the standard header and falls back to the counter reset.
func (c *Client) retryAfter(h http.Header) time.Duration {
	if d, ok := parseRetryAfter(h.Get("Retry-After"), c.now()); ok {
		return d
	}
	if d, ok := parseRetryAfter(h.Get(counterResetHeader), c.now()); ok {
		return d
	}
	return 0
}

func parseRetryAfter(raw string, now time.Time) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
