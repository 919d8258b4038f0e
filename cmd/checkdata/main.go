package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/AgriVista/acreage-backend/internal/config"
	"github.com/AgriVista/acreage-backend/internal/dataset"
	"github.com/joho/godotenv"
)

// checkdata loads both dashboard inputs and reports schema problems, join
// coverage and normalized-key collisions, so bad input files surface
// before a deploy instead of as a blank map.
func main() {
	_ = godotenv.Load(".env.local")

	var (
		csvPath = flag.String("csv", "", "path to district stat CSV (default: configured STAT_CSV)")
		geoPath = flag.String("geojson", "", "path to district boundary GeoJSON (default: configured BOUNDARY_GEOJSON)")
	)
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if *csvPath == "" {
		*csvPath = cfg.StatPath
	}
	if *geoPath == "" {
		*geoPath = cfg.BoundaryPath
	}

	loader := dataset.NewLoader(cfg.Columns)

	stats, err := loader.StatTable(*csvPath)
	if err != nil {
		log.Fatalf("stat table: %v", err)
	}
	boundaries, err := loader.BoundaryTable(*geoPath)
	if err != nil {
		log.Fatalf("boundary file: %v", err)
	}

	joined := dataset.Join(boundaries, stats)

	fmt.Printf("Stat rows:         %d\n", len(stats.Records))
	fmt.Printf("Boundary features: %d\n", len(boundaries.Records))
	fmt.Printf("Joined records:    %d\n\n", len(joined.Records))

	var unmatched []string
	for _, rec := range joined.Records {
		if rec.Stat == nil {
			unmatched = append(unmatched, rec.District)
		}
	}
	sort.Strings(unmatched)
	fmt.Printf("=== Boundaries without stats (%d) ===\n", len(unmatched))
	for _, d := range unmatched {
		fmt.Printf("  - %s\n", d)
	}
	fmt.Println()

	boundaryKeys := map[string]bool{}
	for _, rec := range boundaries.Records {
		boundaryKeys[rec.Key] = true
	}
	var orphans []string
	for _, rec := range stats.Records {
		if !boundaryKeys[rec.Key] {
			orphans = append(orphans, rec.District)
		}
	}
	sort.Strings(orphans)
	fmt.Printf("=== Stats without boundaries (%d) ===\n", len(orphans))
	for _, d := range orphans {
		fmt.Printf("  - %s\n", d)
	}
	fmt.Println()

	statDupes := keyCollisions(statKeys(stats))
	boundaryDupes := keyCollisions(boundaryKeyList(boundaries))
	fmt.Printf("=== Key collisions ===\n")
	fmt.Printf("  stat side:     %d\n", len(statDupes))
	for _, k := range statDupes {
		fmt.Printf("    - %s\n", k)
	}
	fmt.Printf("  boundary side: %d\n", len(boundaryDupes))
	for _, k := range boundaryDupes {
		fmt.Printf("    - %s\n", k)
	}

	// Collisions multiply rows in the join; flag them to the caller.
	if len(statDupes) > 0 || len(boundaryDupes) > 0 {
		os.Exit(1)
	}
}

func statKeys(t *dataset.StatTable) []string {
	keys := make([]string, 0, len(t.Records))
	for _, rec := range t.Records {
		keys = append(keys, rec.Key)
	}
	return keys
}

func boundaryKeyList(t *dataset.BoundaryTable) []string {
	keys := make([]string, 0, len(t.Records))
	for _, rec := range t.Records {
		keys = append(keys, rec.Key)
	}
	return keys
}

func keyCollisions(keys []string) []string {
	counts := map[string]int{}
	for _, k := range keys {
		counts[k]++
	}
	var dupes []string
	for k, n := range counts {
		if n > 1 {
			dupes = append(dupes, k)
		}
	}
	sort.Strings(dupes)
	return dupes
}
