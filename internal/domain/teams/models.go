package teams

import (
	"strconv"
	"strings"
)

// Team is the normalized club shape reported by upstream providers.
// Fixtures and standings reference clubs by Name only.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

// DisplayName is the first non-empty of Name, ShortName, TLA and ID.
func (t Team) DisplayName() string {
	for _, candidate := range []string{t.Name, t.ShortName, t.TLA, t.ID} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return ""
}

// FromUpstream builds a Team from an upstream numeric id and names.
func FromUpstream(id int, name, shortName, tla string) Team {
	t := Team{Name: name, ShortName: shortName, TLA: tla}
	if id > 0 {
		t.ID = strconv.Itoa(id)
	}
	return t
}
