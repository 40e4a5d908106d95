package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// TimeslotRepository manages persistence for the weekly timeslot grid.
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository constructs a TimeslotRepository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

// ListAll returns every configured timeslot ordered by (day, slot).
func (r *TimeslotRepository) ListAll(ctx context.Context) ([]models.Timeslot, error) {
	const query = `SELECT id, day, slot, start_time, end_time FROM timeslots ORDER BY day, slot`
	var slots []models.Timeslot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}
