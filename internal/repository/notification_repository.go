package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Notification is a stored in-app message.
type Notification struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// NotificationRepository stores user notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, userID int64, title, message string) error {
	n := Notification{UserID: userID, Title: title, Message: message, CreatedAt: time.Now().UTC()}
	const query = `INSERT INTO notifications (user_id, title, message, created_at) VALUES (:user_id, :title, :message, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
