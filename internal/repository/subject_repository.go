package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListAll returns every subject.
func (r *SubjectRepository) ListAll(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT code, title, type, classes_per_week, duration_slots FROM subjects ORDER BY code`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByCode returns a subject by its code.
func (r *SubjectRepository) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	const query = `SELECT code, title, type, classes_per_week, duration_slots FROM subjects WHERE code = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, code); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create persists a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (code, title, type, classes_per_week, duration_slots) VALUES (:code, :title, :type, :classes_per_week, :duration_slots)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}
