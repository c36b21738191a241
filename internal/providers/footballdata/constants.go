package footballdata

import "time"

const (
	providerName       = "footballdata"
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultHTTPTimeout = 15 * time.Second
	authHeader         = "X-Auth-Token"
	// Seconds until the per-minute request counter resets.
	counterResetHeader = "X-RequestCounter-Reset"
	availableHeader    = "X-Requests-Available-Minute"
	tableTotal         = "TOTAL"
	maxErrorBody       = 512
)
