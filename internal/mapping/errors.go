package mapping

import (
	"fmt"
	"strings"
)

// InvalidMappingRequestError is returned when a substitute is requested for a
// team that already plays in the reference season. It signals a caller bug.
type InvalidMappingRequestError struct {
	Team string
}

func (e *InvalidMappingRequestError) Error() string {
	return fmt.Sprintf("invalid mapping request: %s is already in the reference roster", e.Team)
}

// UnresolvableMappingError lists teams that could not be paired.
type UnresolvableMappingError struct {
	// UnpairedPromoted are new teams left without a relegated counterpart.
	UnpairedPromoted []string
	// UnpairedRelegated are departed teams left without a promoted counterpart.
	UnpairedRelegated []string
	// Unranked are teams missing from the standings needed to rank them.
	Unranked []string
}

func (e *UnresolvableMappingError) Error() string {
	var parts []string
	if len(e.UnpairedPromoted) > 0 {
		parts = append(parts, "unpaired promoted: "+strings.Join(e.UnpairedPromoted, ", "))
	}
	if len(e.UnpairedRelegated) > 0 {
		parts = append(parts, "unpaired relegated: "+strings.Join(e.UnpairedRelegated, ", "))
	}
	if len(e.Unranked) > 0 {
		parts = append(parts, "missing from standings: "+strings.Join(e.Unranked, ", "))
	}
	if len(parts) == 0 {
		return "unresolvable mapping"
	}
	return "unresolvable mapping: " + strings.Join(parts, "; ")
}

// Teams returns every team named by the error.
func (e *UnresolvableMappingError) Teams() []string {
	out := make([]string, 0, len(e.UnpairedPromoted)+len(e.UnpairedRelegated)+len(e.Unranked))
	out = append(out, e.UnpairedPromoted...)
	out = append(out, e.UnpairedRelegated...)
	return append(out, e.Unranked...)
}
