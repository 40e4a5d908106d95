package models

// Faculty is an instructor who can be assigned to teach offerings.
type Faculty struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	Email            string `db:"email" json:"email"`
	DepartmentID     int64  `db:"department_id" json:"department_id"`
	MaxClassesPerDay int    `db:"max_classes_per_day" json:"max_classes_per_day"`
	Active           bool   `db:"active" json:"active"`
}

// FacultyFilter captures filtering options for listing faculty.
type FacultyFilter struct {
	DepartmentID int64
	ActiveOnly   bool
	Search       string
	Page         int
	PageSize     int
}
