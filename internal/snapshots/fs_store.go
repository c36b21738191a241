package snapshots

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// FSStore loads season snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadFixtures reads {basePath}/fixtures/{id}.csv. A missing file reports
// season.ErrNotFound.
func (s *FSStore) LoadFixtures(ctx context.Context, id int) ([]season.Fixture, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := FixturesPath(s.basePath, id)
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures %d: %w", id, err)
	}
	defer f.Close()

	fixtures, err := decodeFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fixtures, nil
}

// LoadStandings reads {basePath}/standings/{competition}/{id}.csv.
func (s *FSStore) LoadStandings(ctx context.Context, id int, competition string) ([]season.Standing, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	competition = strings.TrimSpace(competition)
	if competition == "" {
		return nil, errors.New("competition required")
	}
	path := StandingsPath(s.basePath, competition, id)
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("standings %s %d: %w", competition, id, err)
	}
	defer f.Close()

	standings, err := decodeStandings(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return standings, nil
}

// HasFixtures reports whether a fixtures snapshot exists for id.
func (s *FSStore) HasFixtures(id int) bool {
	return s != nil && exists(FixturesPath(s.basePath, id))
}

// HasStandings reports whether a table snapshot exists for competition and id.
func (s *FSStore) HasStandings(id int, competition string) bool {
	return s != nil && exists(StandingsPath(s.basePath, competition, id))
}

// Manifest returns the current manifest.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	m, err := ReadManifest(s.basePath)
	if errors.Is(err, fs.ErrNotExist) {
		return m, fmt.Errorf("manifest: %w", season.ErrNotFound)
	}
	return m, err
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, season.ErrNotFound
	}
	return f, err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
