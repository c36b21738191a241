package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// FirstSeason is the ending year of the first Premier League season (1992/93).
const FirstSeason = 1993

// seasonStartMonth is the first month that belongs to a new season.
const seasonStartMonth = time.July

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SeasonForDate returns the id (ending year) of the season in progress at t.
// July onwards belongs to the season that ends the following year.
func SeasonForDate(t time.Time) int {
	if t.Month() >= seasonStartMonth {
		return t.Year() + 1
	}
	return t.Year()
}

// SeasonLabel renders a season id as "2025/26".
func SeasonLabel(id int) string {
	return fmt.Sprintf("%d/%02d", id-1, id%100)
}

// UpstreamYear converts a season id to the start year football-data.org expects.
func UpstreamYear(id int) int {
	return id - 1
}

// SeasonStart returns 1 July of the season's first calendar year, UTC.
func SeasonStart(id int) time.Time {
	return time.Date(id-1, seasonStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// ParseSeason accepts an ending year ("2026") or a label ("2025/26", "2025-26").
func ParseSeason(value string) (int, error) {
	value = strings.TrimSpace(value)
	if start, end, ok := strings.Cut(strings.ReplaceAll(value, "-", "/"), "/"); ok {
		first, err := strconv.Atoi(start)
		if err != nil {
			return 0, fmt.Errorf("%w %q", ErrInvalidSeason, value)
		}
		id := first + 1
		if end != fmt.Sprintf("%02d", id%100) && end != strconv.Itoa(id) {
			return 0, fmt.Errorf("%w %q: %s does not follow %s", ErrInvalidSeason, value, end, start)
		}
		return checkSeason(value, id)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidSeason, value)
	}
	return checkSeason(value, id)
}

func checkSeason(value string, id int) (int, error) {
	if err := ValidateSeason(id); err != nil {
		return 0, fmt.Errorf("%q: %w", value, err)
	}
	return id, nil
}

// ErrInvalidSeason is returned for season ids outside the supported range.
var ErrInvalidSeason = errors.New("invalid season")

// ValidateSeason checks that id is an ending year no earlier than FirstSeason.
func ValidateSeason(id int) error {
	if id < FirstSeason || id > 9999 {
		return fmt.Errorf("%w %d: out of range", ErrInvalidSeason, id)
	}
	return nil
}
