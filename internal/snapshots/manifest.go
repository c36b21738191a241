package snapshots

import (
	"encoding/json"
	"os"
	"slices"
	"time"
)

const manifestVersion = 1

// Manifest tracks which seasons are cached and when each kind was refreshed.
type Manifest struct {
	Version     int                    `json:"version"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Retention   Retention              `json:"retention"`
	Fixtures    SeasonsMeta            `json:"fixtures"`
	Standings   map[string]SeasonsMeta `json:"standings"`
}

// Retention is the number of seasons kept; 0 keeps every season.
type Retention struct {
	Seasons int `json:"seasons"`
}

// SeasonsMeta lists cached season ids in ascending order.
type SeasonsMeta struct {
	Seasons       []int     `json:"seasons"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

// Newest is the latest season with cached fixtures.
func (m Manifest) Newest() (int, bool) {
	if len(m.Fixtures.Seasons) == 0 {
		return 0, false
	}
	return m.Fixtures.Seasons[len(m.Fixtures.Seasons)-1], true
}

// HasFixtures reports whether fixtures for id are cached.
func (m Manifest) HasFixtures(id int) bool {
	_, ok := slices.BinarySearch(m.Fixtures.Seasons, id)
	return ok
}

// HasStandings reports whether the competition's table for id is cached.
func (m Manifest) HasStandings(competition string, id int) bool {
	_, ok := slices.BinarySearch(m.Standings[competition].Seasons, id)
	return ok
}

func emptyManifest(retentionSeasons int) Manifest {
	return Manifest{
		Version:   manifestVersion,
		Retention: Retention{Seasons: retentionSeasons},
		Fixtures:  SeasonsMeta{Seasons: []int{}},
		Standings: map[string]SeasonsMeta{},
	}
}

// ReadManifest loads manifest.json from basePath. On error it returns an
// empty manifest alongside the error.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(ManifestPath(basePath), 0)
}

func readManifest(path string, retentionSeasons int) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return emptyManifest(retentionSeasons), err
	}
	m := emptyManifest(retentionSeasons)
	if err := json.Unmarshal(data, &m); err != nil {
		return emptyManifest(retentionSeasons), err
	}
	if m.Standings == nil {
		m.Standings = map[string]SeasonsMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.Version = manifestVersion
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}
