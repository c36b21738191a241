package snapshots

import (
	"path/filepath"
	"strconv"
)

const (
	dirFixtures  = "fixtures"
	dirStandings = "standings"
	manifestName = "manifest.json"
	fileExt      = ".csv"
)

// FixturesPath builds the path to a season's fixtures snapshot.
func FixturesPath(basePath string, id int) string {
	return filepath.Join(basePath, dirFixtures, strconv.Itoa(id)+fileExt)
}

// StandingsPath builds the path to a competition's table for a season.
func StandingsPath(basePath, competition string, id int) string {
	return filepath.Join(basePath, dirStandings, competition, strconv.Itoa(id)+fileExt)
}

// ManifestPath is the location of manifest.json under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestName)
}
