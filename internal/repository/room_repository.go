package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// RoomRepository manages persistence for rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListAll returns every room, the full domain the solver draws from.
func (r *RoomRepository) ListAll(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, code, capacity, type, location FROM rooms ORDER BY id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// FindByID returns a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	const query = `SELECT id, code, capacity, type, location FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create persists a new room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const query = `INSERT INTO rooms (code, capacity, type, location) VALUES (:code, :capacity, :type, :location) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, room)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&room.ID); err != nil {
			return fmt.Errorf("create room: scan id: %w", err)
		}
	}
	return nil
}
