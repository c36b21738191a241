package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/epl-compare-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin and mcp are optional.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, mcp nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/comparisons", handler.Comparisons)
	mux.HandleFunc("/comparisons/improvers", handler.Improvers)
	mux.HandleFunc("/comparisons/teams/", handler.TeamComparison)
	mux.HandleFunc("/substitutions", handler.Substitutions)
	mux.HandleFunc("/seasons/", handler.SeasonFixtures)
	if admin != nil {
		mux.HandleFunc("/admin/snapshots/refresh", admin.RefreshSnapshots)
	}
	if mcp != nil {
		mux.Handle("/mcp", mcp)
	}
	return mux
}
