package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// NotificationRepository handles profile notifications.
type NotificationRepository struct {
	db database.PGXDB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db database.PGXDB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create adds a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (profile_id, message) VALUES ($1, $2)
		RETURNING id, is_read, created_at
	`, n.ProfileID, n.Message).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create notification")
	}
	return nil
}

// GetByID retrieves a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, message, is_read, created_at FROM notifications WHERE id = $1
	`, id).Scan(&n.ID, &n.ProfileID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, wrap(err, "failed to get notification")
	}
	return &n, nil
}

// ListByProfile retrieves a profile's notifications, newest first.
// When unreadOnly is set, read notifications are skipped.
func (r *NotificationRepository) ListByProfile(ctx context.Context, profileID int64, unreadOnly bool) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, message, is_read, created_at FROM notifications
		WHERE profile_id = $1 AND (NOT $2 OR is_read = FALSE)
		ORDER BY created_at DESC, id DESC
	`, profileID, unreadOnly)
	if err != nil {
		return nil, wrap(err, "failed to query notifications")
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan notification")
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating notifications")
	}
	return out, nil
}

// MarkRead flags a single notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to mark notification read")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to mark notification read")
	}
	return nil
}

// MarkAllRead flags every notification of a profile as read and returns how many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, profileID int64) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE profile_id = $1 AND is_read = FALSE
	`, profileID)
	if err != nil {
		return 0, wrap(err, "failed to mark notifications read")
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes a notification by ID.
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete notification")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete notification")
	}
	return nil
}
