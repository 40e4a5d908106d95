package models

import "time"

// FacultyUnavailability blocks a faculty member from being placed in a
// given (day, slot) pair, e.g. for a recurring commitment or leave.
type FacultyUnavailability struct {
	ID        int64     `db:"id" json:"id"`
	FacultyID int64     `db:"faculty_id" json:"faculty_id"`
	Date      time.Time `db:"date" json:"date"`
	Day       int       `db:"day" json:"day"`
	Slot      int       `db:"slot" json:"slot"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
}
