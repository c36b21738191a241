package snapshots

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/domain/season"
)

// Writer persists season snapshots and the manifest, pruning seasons that
// fall outside the retention window.
type Writer struct {
	basePath         string
	retentionSeasons int
	now              func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath. retentionSeasons <= 0
// keeps every season.
func NewWriter(basePath string, retentionSeasons int) *Writer {
	if retentionSeasons < 0 {
		retentionSeasons = 0
	}
	return &Writer{
		basePath:         basePath,
		retentionSeasons: retentionSeasons,
		now:              time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteFixtures stores a season's fixtures in provider order.
func (w *Writer) WriteFixtures(id int, fixtures []season.Fixture) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if id <= 0 {
		return fmt.Errorf("season required")
	}
	var buf bytes.Buffer
	if err := encodeFixtures(&buf, fixtures); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := writeIfChanged(FixturesPath(w.basePath, id), buf.Bytes()); err != nil {
		return err
	}
	return w.updateManifest(dirFixtures, "", id)
}

// WriteStandings stores a competition's table for a season, ordered by position.
func (w *Writer) WriteStandings(id int, competition string, standings []season.Standing) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	competition = strings.TrimSpace(competition)
	if id <= 0 || competition == "" {
		return fmt.Errorf("season and competition required")
	}
	sorted := season.CloneStandings(standings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	var buf bytes.Buffer
	if err := encodeStandings(&buf, sorted); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := writeIfChanged(StandingsPath(w.basePath, competition, id), buf.Bytes()); err != nil {
		return err
	}
	return w.updateManifest(dirStandings, competition, id)
}

// writeIfChanged leaves the file untouched when its content already matches.
func writeIfChanged(target string, data []byte) error {
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return writeAtomic(target, data)
}

func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (w *Writer) updateManifest(kind, competition string, id int) error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retentionSeasons)
	m.Retention.Seasons = w.retentionSeasons
	now := w.now().UTC()

	fixtureSeasons, err := listSeasons(filepath.Join(w.basePath, dirFixtures))
	if err != nil {
		return err
	}
	cutoff := w.cutoff(fixtureSeasons)
	m.Fixtures.Seasons = w.prune(filepath.Join(w.basePath, dirFixtures), fixtureSeasons, cutoff)
	if kind == dirFixtures {
		m.Fixtures.LastRefreshed = now
	}

	codes, err := listCompetitions(filepath.Join(w.basePath, dirStandings))
	if err != nil {
		return err
	}
	standings := make(map[string]SeasonsMeta, len(codes))
	for _, code := range codes {
		dir := filepath.Join(w.basePath, dirStandings, code)
		seasons, err := listSeasons(dir)
		if err != nil {
			return err
		}
		meta := m.Standings[code]
		meta.Seasons = w.prune(dir, seasons, cutoff)
		if kind == dirStandings && code == competition {
			meta.LastRefreshed = now
		}
		standings[code] = meta
	}
	m.Standings = standings

	return writeManifest(w.basePath, m, now)
}

// cutoff is the oldest season kept, counted back from the newest fixtures.
func (w *Writer) cutoff(fixtureSeasons []int) int {
	if w.retentionSeasons <= 0 || len(fixtureSeasons) == 0 {
		return 0
	}
	newest := fixtureSeasons[len(fixtureSeasons)-1]
	return newest - w.retentionSeasons + 1
}

func (w *Writer) prune(dir string, seasons []int, cutoff int) []int {
	keep := make([]int, 0, len(seasons))
	for _, id := range seasons {
		if id < cutoff {
			_ = os.Remove(filepath.Join(dir, strconv.Itoa(id)+fileExt))
			continue
		}
		keep = append(keep, id)
	}
	return keep
}

func listSeasons(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, err
	}
	seasons := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != fileExt {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		seasons = append(seasons, id)
	}
	sort.Ints(seasons)
	return seasons, nil
}

func listCompetitions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			codes = append(codes, e.Name())
		}
	}
	sort.Strings(codes)
	return codes, nil
}
