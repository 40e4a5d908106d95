// Command version_diff compares two exported schedule-version grids
// (the CSV the export endpoint produces, one row per day, one column
// per slot) and reports every cell that moved, appeared, or vanished
// between them. Useful for eyeballing what a re-optimization pass
// actually changed before accepting it.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
)

type cellKey struct {
	Day  string
	Slot string
}

type grid map[cellKey]string

func main() {
	var (
		beforePath string
		afterPath  string
		quiet      bool
	)

	flag.StringVar(&beforePath, "before", "", "CSV grid of the source version")
	flag.StringVar(&afterPath, "after", "", "CSV grid of the candidate version")
	flag.BoolVar(&quiet, "quiet", false, "suppress per-cell output, print only the summary")
	flag.Parse()

	if beforePath == "" || afterPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	before, err := loadGrid(beforePath)
	if err != nil {
		log.Fatalf("load %s: %v", beforePath, err)
	}
	after, err := loadGrid(afterPath)
	if err != nil {
		log.Fatalf("load %s: %v", afterPath, err)
	}

	moved, added, removed := diff(before, after, quiet)

	fmt.Printf("moved: %d, added: %d, removed: %d\n", moved, added, removed)
	if added != removed {
		// A pure re-optimization rearranges meetings; it never changes
		// how many there are. A count mismatch means the candidate
		// dropped or invented a class meeting.
		fmt.Println("WARNING: meeting counts differ between versions")
		os.Exit(1)
	}
}

func loadGrid(path string) (grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("grid has no data rows")
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("grid has no slot columns")
	}

	g := make(grid)
	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		day := row[0]
		for i := 1; i < len(row) && i < len(header); i++ {
			if row[i] == "" {
				continue
			}
			g[cellKey{Day: day, Slot: header[i]}] = row[i]
		}
	}
	return g, nil
}

func diff(before, after grid, quiet bool) (moved, added, removed int) {
	for key, was := range before {
		now, ok := after[key]
		switch {
		case !ok:
			removed++
			if !quiet {
				fmt.Printf("- %s %s: %s\n", key.Day, key.Slot, was)
			}
		case now != was:
			moved++
			if !quiet {
				fmt.Printf("~ %s %s: %s -> %s\n", key.Day, key.Slot, was, now)
			}
		}
	}
	for key, now := range after {
		if _, ok := before[key]; !ok {
			added++
			if !quiet {
				fmt.Printf("+ %s %s: %s\n", key.Day, key.Slot, now)
			}
		}
	}
	return moved, added, removed
}
