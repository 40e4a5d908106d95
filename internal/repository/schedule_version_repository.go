package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

// ScheduleVersionRepository manages persistence for schedule versions.
type ScheduleVersionRepository struct {
	db *sqlx.DB
}

// NewScheduleVersionRepository constructs a ScheduleVersionRepository.
func NewScheduleVersionRepository(db *sqlx.DB) *ScheduleVersionRepository {
	return &ScheduleVersionRepository{db: db}
}

// Create persists a new schedule version inside the caller's transaction-capable executor.
func (r *ScheduleVersionRepository) Create(ctx context.Context, ext sqlx.ExtContext, version *models.ScheduleVersion) error {
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	if version.Status == "" {
		version.Status = models.ScheduleVersionStatusDraft
	}
	const query = `INSERT INTO schedule_versions (id, name, semester, status, waste_slots, meta, created_at)
		VALUES (:id, :name, :semester, :status, :waste_slots, :meta, now())`
	if _, err := sqlx.NamedExecContext(ctx, ext, query, version); err != nil {
		return fmt.Errorf("create schedule version: %w", err)
	}
	return nil
}

// FindByID returns a schedule version by id.
func (r *ScheduleVersionRepository) FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error) {
	const query = `SELECT id, name, semester, status, waste_slots, meta, created_at FROM schedule_versions WHERE id = $1`
	var version models.ScheduleVersion
	if err := r.db.GetContext(ctx, &version, query, id); err != nil {
		return nil, err
	}
	return &version, nil
}

// ListBySemester returns every version summary for a semester, newest first.
func (r *ScheduleVersionRepository) ListBySemester(ctx context.Context, semester int) ([]models.ScheduleVersionSummary, error) {
	const query = `SELECT id, name, semester, status, waste_slots, created_at FROM schedule_versions WHERE semester = $1 ORDER BY created_at DESC`
	var versions []models.ScheduleVersionSummary
	if err := r.db.SelectContext(ctx, &versions, query, semester); err != nil {
		return nil, fmt.Errorf("list schedule versions: %w", err)
	}
	return versions, nil
}

// FindMostRecent returns the latest created version for a semester, or
// sql.ErrNoRows if none exists yet — used by the Optimizer Integration
// Adapter when no explicit source version id is given.
func (r *ScheduleVersionRepository) FindMostRecent(ctx context.Context, semester int) (*models.ScheduleVersion, error) {
	const query = `SELECT id, name, semester, status, waste_slots, meta, created_at FROM schedule_versions
		WHERE semester = $1 ORDER BY created_at DESC LIMIT 1`
	var version models.ScheduleVersion
	if err := r.db.GetContext(ctx, &version, query, semester); err != nil {
		return nil, err
	}
	return &version, nil
}

// UpdateStatus transitions a version's lifecycle status.
func (r *ScheduleVersionRepository) UpdateStatus(ctx context.Context, id string, status models.ScheduleVersionStatus) error {
	const query = `UPDATE schedule_versions SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update schedule version status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update schedule version status: %w", err)
	}
	if rows == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
