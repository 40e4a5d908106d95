package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// ScheduleEntryRepository manages persistence for individual placed events.
type ScheduleEntryRepository struct {
	db *sqlx.DB
}

// NewScheduleEntryRepository constructs a ScheduleEntryRepository.
func NewScheduleEntryRepository(db *sqlx.DB) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{db: db}
}

// InsertBatch persists every entry of a solved version inside the caller's transaction.
func (r *ScheduleEntryRepository) InsertBatch(ctx context.Context, ext sqlx.ExtContext, entries []models.ScheduleEntry) error {
	const query = `INSERT INTO schedule_entries (schedule_version_id, offering_id, batch_id, faculty_id, room_id, day, slot)
		VALUES (:schedule_version_id, :offering_id, :batch_id, :faculty_id, :room_id, :day, :slot)`
	for i := range entries {
		if _, err := sqlx.NamedExecContext(ctx, ext, query, entries[i]); err != nil {
			return fmt.Errorf("insert schedule entry: %w", err)
		}
	}
	return nil
}

// ListByVersion returns every entry belonging to a schedule version.
func (r *ScheduleEntryRepository) ListByVersion(ctx context.Context, versionID string) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, schedule_version_id, offering_id, batch_id, faculty_id, room_id, day, slot
		FROM schedule_entries WHERE schedule_version_id = $1 ORDER BY day, slot`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, versionID); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
