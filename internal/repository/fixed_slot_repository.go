package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// FixedSlotRepository manages persistence for pre-pinned offering placements.
type FixedSlotRepository struct {
	db *sqlx.DB
}

// NewFixedSlotRepository constructs a FixedSlotRepository.
func NewFixedSlotRepository(db *sqlx.DB) *FixedSlotRepository {
	return &FixedSlotRepository{db: db}
}

// ListByOfferingIDs returns any fixed placements pinned for the given offerings.
func (r *FixedSlotRepository) ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FixedSlot, error) {
	if len(offeringIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, offering_id, day, slot, room_id, reason FROM fixed_slots WHERE offering_id IN (?)`, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("build fixed slot query: %w", err)
	}
	query = r.db.Rebind(query)
	var fixed []models.FixedSlot
	if err := r.db.SelectContext(ctx, &fixed, query, args...); err != nil {
		return nil, fmt.Errorf("list fixed slots: %w", err)
	}
	return fixed, nil
}
