// Package export renders a solved, validated schedule version as a
// day x timeslot grid suitable for the CSV and PDF renderers in
// pkg/export.
package export

import (
	"fmt"
	"sort"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/pkg/export"
)

var dayNames = map[int]string{
	0: "Monday", 1: "Tuesday", 2: "Wednesday", 3: "Thursday", 4: "Friday", 5: "Saturday", 6: "Sunday",
}

// CellLookup resolves the descriptive text for one schedule entry's
// cell, e.g. "ALG101 / J. Smith / R-212" — left to the caller since the
// grid builder only knows ids, not subject titles or faculty names.
type CellLookup func(entry models.ScheduleEntry) string

// BuildGrid renders a batch's entries into a Dataset: rows are days,
// columns are slot labels.
func BuildGrid(entries []models.ScheduleEntry, slotLabels map[int]string, cell CellLookup) export.Dataset {
	var orderedSlots []int
	for slot := range slotLabels {
		orderedSlots = append(orderedSlots, slot)
	}
	sort.Ints(orderedSlots)

	headers := make([]string, 0, len(orderedSlots)+1)
	headers = append(headers, "Day")
	for _, slot := range orderedSlots {
		headers = append(headers, slotLabels[slot])
	}

	grid := make(map[int]map[int]string)
	for _, e := range entries {
		if grid[e.Day] == nil {
			grid[e.Day] = make(map[int]string)
		}
		grid[e.Day][e.Slot] = cell(e)
	}

	var rows []map[string]string
	for day := 0; day <= 6; day++ {
		cells, ok := grid[day]
		if !ok {
			continue
		}
		row := map[string]string{"Day": dayLabel(day)}
		for _, slot := range orderedSlots {
			row[slotLabels[slot]] = cells[slot]
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func dayLabel(day int) string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return fmt.Sprintf("Day %d", day)
}
