package models

// Offering is a subject taught to a specific batch within a semester.
type Offering struct {
	ID          int64  `db:"id" json:"id"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	BatchID     int64  `db:"batch_id" json:"batch_id"`
	Semester    int    `db:"semester" json:"semester"`
	Elective    bool   `db:"elective" json:"elective"`
}
