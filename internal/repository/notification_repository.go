package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/model"
)

// NotificationRepo persists user notifications.  Rows are written by the
// queue consumer when bookings and requests are resolved; delivery is
// at-least-effort and never blocks the primary mutation.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification for the user.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, text string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_notifications (user_id, text, is_read) VALUES (?,?,0)", userID, text)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserNotification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,text,is_read,created_at FROM user_notifications WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserNotification, 0)
	for rows.Next() {
		var n model.UserNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Text, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read when it belongs to the user.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE user_notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var owner uint64
		if err := r.DB.QueryRowContext(ctx,
			"SELECT user_id FROM user_notifications WHERE id=?", id).Scan(&owner); err != nil {
			return err
		}
		if owner != userID {
			return ErrForbidden
		}
	}
	return nil
}
