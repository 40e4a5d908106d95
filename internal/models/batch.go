package models

// Shift distinguishes day and evening cohorts.
type Shift string

const (
	ShiftDay     Shift = "day"
	ShiftEvening Shift = "evening"
)

// Batch is a cohort of students that moves through its timetable together.
type Batch struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Semester int    `db:"semester" json:"semester"`
	Size     int    `db:"size" json:"size"`
	Shift    Shift  `db:"shift" json:"shift"`
}

// BatchFilter captures filter criteria for listing batches.
type BatchFilter struct {
	Semester int
	Shift    Shift
	Search   string
	Page     int
	PageSize int
}
