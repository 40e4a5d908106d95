package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// FacultyRepository manages persistence for faculty members.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// ListActive returns every active faculty member.
func (r *FacultyRepository) ListActive(ctx context.Context) ([]models.Faculty, error) {
	const query = `SELECT id, name, email, department_id, max_classes_per_day, active FROM faculty WHERE active = true ORDER BY id`
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return faculty, nil
}

// FindByID returns a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	const query = `SELECT id, name, email, department_id, max_classes_per_day, active FROM faculty WHERE id = $1`
	var fac models.Faculty
	if err := r.db.GetContext(ctx, &fac, query, id); err != nil {
		return nil, err
	}
	return &fac, nil
}
