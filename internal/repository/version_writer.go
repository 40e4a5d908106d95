package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// txProvider is the narrow slice of *sqlx.DB the version writer needs.
type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// VersionWriter persists a solved, validated schedule version and its
// entries atomically.
type VersionWriter struct {
	tx       txProvider
	versions *ScheduleVersionRepository
	entries  *ScheduleEntryRepository
}

// NewVersionWriter constructs a VersionWriter.
func NewVersionWriter(tx txProvider, versions *ScheduleVersionRepository, entries *ScheduleEntryRepository) *VersionWriter {
	return &VersionWriter{tx: tx, versions: versions, entries: entries}
}

// Write persists the version header and every entry in a single transaction.
// It does not validate the entries — callers must run the hard-constraint
// validator and the coverage assertion before calling Write.
func (w *VersionWriter) Write(ctx context.Context, version *models.ScheduleVersion, entries []models.ScheduleEntry) error {
	tx, err := w.tx.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule version transaction: %w", err)
	}
	defer tx.Rollback()

	if err := w.versions.Create(ctx, tx, version); err != nil {
		return err
	}
	for i := range entries {
		entries[i].ScheduleVersionID = version.ID
	}
	if err := w.entries.InsertBatch(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule version transaction: %w", err)
	}
	return nil
}
