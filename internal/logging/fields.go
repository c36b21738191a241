package logging

import "log/slog"

// Structured field keys shared across packages.
const (
	FieldService     = "service"
	FieldVersion     = "version"
	FieldProvider    = "provider"
	FieldRequestID   = "request_id"
	FieldPath        = "path"
	FieldMethod      = "method"
	FieldStatusCode  = "status_code"
	FieldSeason      = "season"
	FieldReference   = "reference_season"
	FieldCompetition = "competition"
	FieldTeam        = "team"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
	FieldMapped      = "mapped"
	FieldUnmapped    = "unmapped"
	FieldCoveragePct = "coverage_pct"
	FieldError       = "error"
)

// Err is the attribute every package uses for errors.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(FieldError, err.Error())
}

// Season tags a log line with a season id.
func Season(id int) slog.Attr {
	return slog.Int(FieldSeason, id)
}

// serviceAttrs identifies the running binary on every line.
func serviceAttrs(service, version string) []slog.Attr {
	var attrs []slog.Attr
	for _, a := range []slog.Attr{slog.String(FieldService, service), slog.String(FieldVersion, version)} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
