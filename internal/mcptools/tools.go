// Package mcptools exposes the season comparison as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/epl-compare-service/internal/app/compare"
	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

const serverName = "epl-compare"

// SeasonArgs selects the seasons to compare. Empty values fall back to the
// configured current season and the one before it.
type SeasonArgs struct {
	Current   string `json:"current,omitempty" jsonschema:"Current season, as an ending year (2026) or label (2025/26)"`
	Reference string `json:"reference,omitempty" jsonschema:"Reference season; defaults to the season before current"`
}

// CompareArgs is the input of compare_seasons.
type CompareArgs struct {
	Current   string `json:"current,omitempty" jsonschema:"Current season, as an ending year (2026) or label (2025/26)"`
	Reference string `json:"reference,omitempty" jsonschema:"Reference season; defaults to the season before current"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Only return the top N rows of the current table (0 = all)"`
}

// TeamArgs is the input of team_comparison.
type TeamArgs struct {
	Current   string `json:"current,omitempty" jsonschema:"Current season, as an ending year (2026) or label (2025/26)"`
	Reference string `json:"reference,omitempty" jsonschema:"Reference season; defaults to the season before current"`
	Team      string `json:"team" jsonschema:"Team name; case and accents are ignored"`
}

// ImproversArgs is the input of top_improvers.
type ImproversArgs struct {
	Current   string `json:"current,omitempty" jsonschema:"Current season, as an ending year (2026) or label (2025/26)"`
	Reference string `json:"reference,omitempty" jsonschema:"Reference season; defaults to the season before current"`
	Metric    string `json:"metric,omitempty" jsonschema:"points, goal_difference or goals_for (default points)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Number of teams to return (default 5)"`
}

// Tools binds MCP tool handlers to the comparison service.
type Tools struct {
	svc       *compare.Service
	current   int
	reference int
	logger    *slog.Logger
}

// New constructs Tools. reference <= 0 means the season before current.
func New(svc *compare.Service, current, reference int, logger *slog.Logger) *Tools {
	if reference <= 0 {
		reference = current - 1
	}
	return &Tools{svc: svc, current: current, reference: reference, logger: logger}
}

// NewServer builds an MCP server with every tool registered.
func (t *Tools) NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_seasons",
		Description: "Compare the current Premier League season against a reference season fixture by fixture, with promoted teams standing in for relegated ones",
	}, t.CompareSeasons)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_comparison",
		Description: "Points, goal difference and goals for one team against the same fixtures a season earlier",
	}, t.TeamComparison)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "season_substitutions",
		Description: "Which promoted team stands in for which relegated team between two seasons",
	}, t.SeasonSubstitutions)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "top_improvers",
		Description: "Teams with the largest change in a metric versus the reference season",
	}, t.TopImprovers)
	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// CompareSeasons handles compare_seasons.
func (t *Tools) CompareSeasons(ctx context.Context, req *mcp.CallToolRequest, args CompareArgs) (*mcp.CallToolResult, any, error) {
	current, reference, err := t.seasons(args.Current, args.Reference)
	if err != nil {
		return toolError(err), nil, nil
	}
	res, err := t.svc.Compare(ctx, current, reference)
	if err != nil {
		return t.failed("compare_seasons", err), nil, nil
	}
	rows := comparison.Rank(res.Rows)
	if args.Limit > 0 && args.Limit < len(rows) {
		rows = rows[:args.Limit]
	}
	return toolJSON(map[string]any{
		"currentSeason":   res.CurrentLabel,
		"referenceSeason": res.ReferenceLabel,
		"substitutions":   res.Substitutions,
		"coverage":        res.Coverage,
		"rows":            rows,
	})
}

// TeamComparison handles team_comparison.
func (t *Tools) TeamComparison(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Team) == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	current, reference, err := t.seasons(args.Current, args.Reference)
	if err != nil {
		return toolError(err), nil, nil
	}
	detail, err := t.svc.Team(ctx, current, reference, args.Team)
	if err != nil {
		return t.failed("team_comparison", err), nil, nil
	}
	return toolJSON(detail)
}

// SeasonSubstitutions handles season_substitutions.
func (t *Tools) SeasonSubstitutions(ctx context.Context, req *mcp.CallToolRequest, args SeasonArgs) (*mcp.CallToolResult, any, error) {
	current, reference, err := t.seasons(args.Current, args.Reference)
	if err != nil {
		return toolError(err), nil, nil
	}
	subs, err := t.svc.Substitutions(ctx, current, reference)
	if err != nil {
		return t.failed("season_substitutions", err), nil, nil
	}
	return toolJSON(subs)
}

// TopImprovers handles top_improvers.
func (t *Tools) TopImprovers(ctx context.Context, req *mcp.CallToolRequest, args ImproversArgs) (*mcp.CallToolResult, any, error) {
	current, reference, err := t.seasons(args.Current, args.Reference)
	if err != nil {
		return toolError(err), nil, nil
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 5
	}
	list, err := t.svc.Improvers(ctx, current, reference, comparison.Metric(strings.TrimSpace(args.Metric)), limit)
	if err != nil {
		return t.failed("top_improvers", err), nil, nil
	}
	return toolJSON(list)
}

func (t *Tools) seasons(rawCurrent, rawReference string) (current, reference int, err error) {
	current, reference = t.current, t.reference
	if raw := strings.TrimSpace(rawCurrent); raw != "" {
		if current, err = timeutil.ParseSeason(raw); err != nil {
			return 0, 0, err
		}
		reference = current - 1
	}
	if raw := strings.TrimSpace(rawReference); raw != "" {
		if reference, err = timeutil.ParseSeason(raw); err != nil {
			return 0, 0, err
		}
	}
	return current, reference, nil
}

func (t *Tools) failed(tool string, err error) *mcp.CallToolResult {
	logging.Warn(t.logger, "mcp tool failed", "tool", tool, logging.Err(err))
	return toolError(err)
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
