package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleVersionStatus represents lifecycle phases for a generated timetable.
type ScheduleVersionStatus string

const (
	ScheduleVersionStatusDraft     ScheduleVersionStatus = "DRAFT"
	ScheduleVersionStatusPublished ScheduleVersionStatus = "PUBLISHED"
	ScheduleVersionStatusArchived  ScheduleVersionStatus = "ARCHIVED"
)

// ScheduleVersion is an immutable, validated snapshot of a solved timetable.
type ScheduleVersion struct {
	ID         string                `db:"id" json:"id"`
	Name       string                `db:"name" json:"name"`
	Semester   int                   `db:"semester" json:"semester"`
	Status     ScheduleVersionStatus `db:"status" json:"status"`
	WasteSlots int                   `db:"waste_slots" json:"waste_slots"`
	Meta       types.JSONText        `db:"meta" json:"meta"`
	CreatedAt  time.Time             `db:"created_at" json:"created_at"`
}

// ScheduleVersionSummary is a lightweight listing projection.
type ScheduleVersionSummary struct {
	ID         string                `db:"id" json:"id"`
	Name       string                `db:"name" json:"name"`
	Semester   int                   `db:"semester" json:"semester"`
	Status     ScheduleVersionStatus `db:"status" json:"status"`
	WasteSlots int                   `db:"waste_slots" json:"waste_slots"`
	CreatedAt  time.Time             `db:"created_at" json:"created_at"`
}
