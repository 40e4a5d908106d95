package models

// FacultyAssignment links a faculty member to an offering they can teach,
// ranked by preference when more than one faculty member can cover it.
type FacultyAssignment struct {
	OfferingID      int64 `db:"offering_id" json:"offering_id"`
	FacultyID       int64 `db:"faculty_id" json:"faculty_id"`
	PreferenceScore int   `db:"preference_score" json:"preference_score"`
}

// FacultyAssignmentDetail enriches an assignment with descriptive fields for responses.
type FacultyAssignmentDetail struct {
	FacultyAssignment
	SubjectCode string `db:"subject_code" json:"subject_code"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}
