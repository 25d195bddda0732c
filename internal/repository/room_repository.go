package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// RoomRepository reads bookable rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListActiveRooms returns active rooms seating at least minCapacity.
func (r *RoomRepository) ListActiveRooms(ctx context.Context, minCapacity int) ([]models.Room, error) {
	const query = `SELECT id, name, building, capacity, is_active AS active FROM rooms WHERE is_active = TRUE AND capacity >= $1 ORDER BY capacity ASC, id ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, minCapacity); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ResourceCapacity returns the seating capacity of a room. Non-room resources
// and unknown rooms report 0, meaning unknown.
func (r *RoomRepository) ResourceCapacity(ctx context.Context, ref models.ResourceRef) (int, error) {
	if ref.Type != models.ResourceRoom {
		return 0, nil
	}
	const query = `SELECT capacity FROM rooms WHERE id = $1`
	var capacity int
	if err := r.db.GetContext(ctx, &capacity, query, ref.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get room capacity: %w", err)
	}
	return capacity, nil
}
