package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// FacultyUnavailabilityRepository manages persistence for faculty blackout windows.
type FacultyUnavailabilityRepository struct {
	db *sqlx.DB
}

// NewFacultyUnavailabilityRepository constructs a FacultyUnavailabilityRepository.
func NewFacultyUnavailabilityRepository(db *sqlx.DB) *FacultyUnavailabilityRepository {
	return &FacultyUnavailabilityRepository{db: db}
}

// ListByFacultyIDs returns every unavailability window for the given faculty members.
func (r *FacultyUnavailabilityRepository) ListByFacultyIDs(ctx context.Context, facultyIDs []int64) ([]models.FacultyUnavailability, error) {
	if len(facultyIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, faculty_id, date, day, slot, reason FROM faculty_unavailability WHERE faculty_id IN (?)`, facultyIDs)
	if err != nil {
		return nil, fmt.Errorf("build unavailability query: %w", err)
	}
	query = r.db.Rebind(query)
	var windows []models.FacultyUnavailability
	if err := r.db.SelectContext(ctx, &windows, query, args...); err != nil {
		return nil, fmt.Errorf("list faculty unavailability: %w", err)
	}
	return windows, nil
}
