// Command compare prints a season comparison from cached snapshots without
// touching the network.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/preston-bernstein/epl-compare-service/internal/app/compare"
	"github.com/preston-bernstein/epl-compare-service/internal/comparison"
	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/snapshots"
	"github.com/preston-bernstein/epl-compare-service/internal/timeutil"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		currentRaw   = fs.String("current", "", "current season, 2026 or 2025/26 (default: newest cached season)")
		referenceRaw = fs.String("reference", "", "reference season (default: the season before current)")
		team         = fs.String("team", "", "print one team's breakdown instead of the table")
		folder       = fs.String("snapshots", cfg.Snapshots.SnapshotFolder, "snapshot folder")
		asJSON       = fs.Bool("json", false, "print JSON instead of a table")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	current, reference, err := seasons(*folder, *currentRaw, *referenceRaw)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	svc := compare.NewService(snapshots.NewFSStore(*folder), compare.Config{
		TopFlight:     cfg.Seasons.TopFlight,
		LowerDivision: cfg.Seasons.LowerDivision,
	}, nil, nil)

	if *team != "" {
		detail, err := svc.Team(ctx, current, reference, *team)
		if err != nil {
			fmt.Fprintf(stderr, "compare %s: %v\n", *team, err)
			return 1
		}
		if *asJSON {
			return printJSON(stdout, stderr, detail)
		}
		printDetail(stdout, detail, current, reference)
		return 0
	}

	res, err := svc.Compare(ctx, current, reference)
	if err != nil {
		fmt.Fprintf(stderr, "compare %s against %s: %v\n", timeutil.SeasonLabel(current), timeutil.SeasonLabel(reference), err)
		return 1
	}
	if *asJSON {
		return printJSON(stdout, stderr, res)
	}
	printTable(stdout, res)
	return 0
}

// seasons parses the flags. Without -current the newest season with cached
// fixtures is used.
func seasons(folder, rawCurrent, rawReference string) (current, reference int, err error) {
	if rawCurrent != "" {
		if current, err = timeutil.ParseSeason(rawCurrent); err != nil {
			return 0, 0, fmt.Errorf("-current: %w", err)
		}
	} else {
		manifest, err := snapshots.ReadManifest(folder)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, 0, fmt.Errorf("read manifest: %w", err)
		}
		newest, ok := manifest.Newest()
		if !ok {
			return 0, 0, errors.New("no cached seasons; pass -current or run the server to backfill snapshots")
		}
		current = newest
	}

	reference = current - 1
	if rawReference != "" {
		if reference, err = timeutil.ParseSeason(rawReference); err != nil {
			return 0, 0, fmt.Errorf("-reference: %w", err)
		}
	}
	return current, reference, nil
}

func printTable(w io.Writer, res comparison.Result) {
	fmt.Fprintf(w, "%s vs %s (coverage %.1f%%, %d/%d fixtures)\n",
		res.CurrentLabel, res.ReferenceLabel, res.Coverage.Percent, res.Coverage.Mapped, res.Coverage.Fixtures)
	for _, p := range res.Substitutions {
		fmt.Fprintf(w, "  %s replaces %s\n", p.Promoted, p.Relegated)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTeam\tP\tPts\tGD\tRefPts\tRefGD\tΔPts\tΔGD\t")
	for _, r := range comparison.Rank(res.Rows) {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%+d\t%d\t%+d\t%+d\t%+d\t\n",
			r.Position, r.Team, r.Current.Played, r.PointsCurrent, r.GDCurrent,
			r.PointsReference, r.GDReference, r.DeltaPoints, r.DeltaGD)
	}
	tw.Flush()
}

func printDetail(w io.Writer, d comparison.TeamDetail, current, reference int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\tchange\n", d.Team, timeutil.SeasonLabel(current), timeutil.SeasonLabel(reference))
	fmt.Fprintf(tw, "played\t%d\t%d\t\n", d.Current.Played, d.Reference.Played)
	fmt.Fprintf(tw, "points\t%d\t%d\t%+d (%.2f%%)\n", d.Current.Points, d.Reference.Points, d.Differences.Points, d.Differences.PointsPercentChange)
	fmt.Fprintf(tw, "goal difference\t%d\t%d\t%+d\n", d.Current.GoalDifference, d.Reference.GoalDifference, d.Differences.GoalDifference)
	fmt.Fprintf(tw, "goals for\t%d\t%d\t%+d\n", d.Current.GoalsFor, d.Reference.GoalsFor, d.Differences.GoalsFor)
	fmt.Fprintf(tw, "goals against\t%d\t%d\t%+d\n", d.Current.GoalsAgainst, d.Reference.GoalsAgainst, d.Differences.GoalsAgainst)
	if d.Unmapped > 0 {
		fmt.Fprintf(tw, "unmapped fixtures\t%d\t\t\n", d.Unmapped)
	}
	tw.Flush()
}

func printJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	return 0
}
