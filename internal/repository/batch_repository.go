package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// BatchRepository manages persistence for batches.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a BatchRepository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// ListBySemester returns every batch in a semester.
func (r *BatchRepository) ListBySemester(ctx context.Context, semester int) ([]models.Batch, error) {
	const query = `SELECT id, name, semester, size, shift FROM batches WHERE semester = $1 ORDER BY id`
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, semester); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// List returns batches matching the given filter.
func (r *BatchRepository) List(ctx context.Context, filter models.BatchFilter) ([]models.Batch, error) {
	base := "FROM batches WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Semester != 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Shift != "" {
		conditions = append(conditions, fmt.Sprintf("shift = $%d", len(args)+1))
		args = append(args, filter.Shift)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT id, name, semester, size, shift %s ORDER BY id", base)
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// FindByID returns a batch by id.
func (r *BatchRepository) FindByID(ctx context.Context, id int64) (*models.Batch, error) {
	const query = `SELECT id, name, semester, size, shift FROM batches WHERE id = $1`
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}
