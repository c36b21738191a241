package middleware

import "strings"

// routeTemplates collapse parameterized paths so metric labels stay bounded.
var routeTemplates = []struct {
	prefix, suffix, template string
}{
	{prefix: "/comparisons/teams/", template: "/comparisons/teams/:team"},
	{prefix: "/seasons/", suffix: "/fixtures", template: "/seasons/:id/fixtures"},
	{prefix: "/mcp", template: "/mcp"},
}

func normalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	for _, rt := range routeTemplates {
		if strings.HasPrefix(path, rt.prefix) && strings.HasSuffix(path, rt.suffix) {
			return rt.template
		}
	}
	return path
}
