package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// OfferingRepository manages persistence for subject offerings.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository constructs an OfferingRepository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

// ListBySemester returns every offering in a semester.
func (r *OfferingRepository) ListBySemester(ctx context.Context, semester int) ([]models.Offering, error) {
	const query = `SELECT id, subject_code, batch_id, semester, elective FROM subject_offerings WHERE semester = $1 ORDER BY id`
	var offerings []models.Offering
	if err := r.db.SelectContext(ctx, &offerings, query, semester); err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return offerings, nil
}

// FindByID returns an offering by id.
func (r *OfferingRepository) FindByID(ctx context.Context, id int64) (*models.Offering, error) {
	const query = `SELECT id, subject_code, batch_id, semester, elective FROM subject_offerings WHERE id = $1`
	var offering models.Offering
	if err := r.db.GetContext(ctx, &offering, query, id); err != nil {
		return nil, err
	}
	return &offering, nil
}
