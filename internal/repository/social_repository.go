package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/model"
)

// SubscriptionRepo manages club followers.  One row per (club, user);
// subscribing twice is a no-op and unsubscribing an absent row reports
// not found.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

// Subscribe adds the user as a follower of the club.
func (r *SubscriptionRepo) Subscribe(ctx context.Context, clubID, userID uint64) error {
	var one int
	if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM clubs WHERE id=?", clubID).Scan(&one); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO club_subscriptions (club_id, user_id) VALUES (?,?)", clubID, userID)
	return err
}

// Unsubscribe removes the follower row.
func (r *SubscriptionRepo) Unsubscribe(ctx context.Context, clubID, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM club_subscriptions WHERE club_id=? AND user_id=?", clubID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSubscribers returns the user IDs following a club.  Used when
// fanning out notifications.
func (r *SubscriptionRepo) ListSubscribers(ctx context.Context, clubID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT user_id FROM club_subscriptions WHERE club_id=?", clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListForUser returns the club IDs the user follows.
func (r *SubscriptionRepo) ListForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT club_id FROM club_subscriptions WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// CommentRepo manages event comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create adds a comment under an event.
func (r *CommentRepo) Create(ctx context.Context, eventID, userID uint64, text string) (uint64, error) {
	var one int
	if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", eventID).Scan(&one); err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_comments (event_id, user_id, text) VALUES (?,?,?)", eventID, userID, text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByEvent returns an event's comments, oldest first.
func (r *CommentRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventComment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,event_id,user_id,text,created_at,updated_at FROM event_comments WHERE event_id=? ORDER BY created_at", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventComment, 0)
	for rows.Next() {
		var c model.EventComment
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteByAuthor removes a comment written by the caller.
func (r *CommentRepo) DeleteByAuthor(ctx context.Context, commentID, userID uint64) error {
	var actualUser uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM event_comments WHERE id=?", commentID).Scan(&actualUser)
	if err != nil {
		return err
	}
	if actualUser != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM event_comments WHERE id=?", commentID)
	return err
}
