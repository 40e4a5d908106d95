package models

// ScheduleEntry is one placed event: an offering taught by a faculty
// member to its batch, in a given room at a given (day, slot).
type ScheduleEntry struct {
	ID                int64  `db:"id" json:"id"`
	ScheduleVersionID string `db:"schedule_version_id" json:"schedule_version_id"`
	OfferingID        int64  `db:"offering_id" json:"offering_id"`
	BatchID           int64  `db:"batch_id" json:"batch_id"`
	FacultyID         int64  `db:"faculty_id" json:"faculty_id"`
	RoomID            int64  `db:"room_id" json:"room_id"`
	Day               int    `db:"day" json:"day"`
	Slot              int    `db:"slot" json:"slot"`
}
