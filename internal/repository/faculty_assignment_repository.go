package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// FacultyAssignmentRepository manages persistence for offering-to-faculty assignments.
type FacultyAssignmentRepository struct {
	db *sqlx.DB
}

// NewFacultyAssignmentRepository constructs a FacultyAssignmentRepository.
func NewFacultyAssignmentRepository(db *sqlx.DB) *FacultyAssignmentRepository {
	return &FacultyAssignmentRepository{db: db}
}

// ListByOfferingIDs returns every candidate faculty assignment for the given offerings.
func (r *FacultyAssignmentRepository) ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FacultyAssignment, error) {
	if len(offeringIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT offering_id, faculty_id, preference_score FROM faculty_assignments WHERE offering_id IN (?) ORDER BY offering_id, preference_score DESC`, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("build faculty assignment query: %w", err)
	}
	query = r.db.Rebind(query)
	var assignments []models.FacultyAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list faculty assignments: %w", err)
	}
	return assignments, nil
}
