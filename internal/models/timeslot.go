package models

import "time"

// Timeslot is one (day, slot) bucket in the weekly grid.
type Timeslot struct {
	ID    int64     `db:"id" json:"id"`
	Day   int       `db:"day" json:"day"`
	Slot  int       `db:"slot" json:"slot"`
	Start time.Time `db:"start_time" json:"start_time"`
	End   time.Time `db:"end_time" json:"end_time"`
}
