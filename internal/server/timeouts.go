package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Comparisons over uncached seasons read several snapshot files; MCP
	// streams can also run longer than a plain JSON response.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
