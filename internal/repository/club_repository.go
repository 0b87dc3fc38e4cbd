package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// ClubRepo provides persistence for live clubs.  Clubs are only ever
// created by ClubRequestRepo.Approve; this repo covers reads, updates by
// the head admin and the administrative cascade delete.
type ClubRepo struct{ DB *sql.DB }

func NewClubRepo(db *sql.DB) *ClubRepo { return &ClubRepo{DB: db} }

const clubColumns = "id,name,head_id,description,logo_url,rating,created_at,updated_at"

func scanClub(scan func(dest ...any) error) (model.Club, error) {
	var c model.Club
	err := scan(&c.ID, &c.Name, &c.HeadID, &c.Description, &c.LogoURL,
		&c.Rating, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetByID fetches a single club.
func (r *ClubRepo) GetByID(ctx context.Context, id uint64) (model.Club, error) {
	return scanClub(r.DB.QueryRowContext(ctx,
		"SELECT "+clubColumns+" FROM clubs WHERE id=? LIMIT 1", id).Scan)
}

// GetByHead fetches the club run by the given head admin.
func (r *ClubRepo) GetByHead(ctx context.Context, headID uint64) (model.Club, error) {
	return scanClub(r.DB.QueryRowContext(ctx,
		"SELECT "+clubColumns+" FROM clubs WHERE head_id=? LIMIT 1", headID).Scan)
}

// List returns all clubs ordered by name.
func (r *ClubRepo) List(ctx context.Context) ([]model.Club, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+clubColumns+" FROM clubs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateByHead lets the head admin edit their club's description and logo.
// Returns sql.ErrNoRows when the club is missing and ErrForbidden when it
// belongs to another head.
func (r *ClubRepo) UpdateByHead(ctx context.Context, clubID, headID uint64, description string, logoURL *string) error {
	var actualHead uint64
	err := r.DB.QueryRowContext(ctx, "SELECT head_id FROM clubs WHERE id=?", clubID).Scan(&actualHead)
	if err != nil {
		return err
	}
	if actualHead != headID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE clubs SET description=?, logo_url=? WHERE id=?",
		description, logoURL, clubID)
	return err
}

// Delete removes a club and every dependent record in one transaction.
// The ordering is load-bearing: bookings must go before their posters and
// post likes before their posts, or the foreign keys fail.  The former
// head's role is reset to student as the final step.
func (r *ClubRepo) Delete(ctx context.Context, clubID uint64) error {
	return database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var headID uint64
		err := tx.QueryRowContext(ctx,
			"SELECT head_id FROM clubs WHERE id=? FOR UPDATE", clubID).Scan(&headID)
		if err != nil {
			return err
		}
		steps := []string{
			"DELETE tb FROM ticket_bookings tb JOIN posters p ON p.id = tb.poster_id WHERE p.club_id = ?",
			"DELETE pl FROM post_likes pl JOIN posts po ON po.id = pl.post_id WHERE po.club_id = ?",
			"DELETE FROM posts WHERE club_id = ?",
			"DELETE FROM posters WHERE club_id = ?",
			"DELETE FROM event_comments WHERE event_id IN (SELECT id FROM events WHERE club_id = ?)",
			"DELETE FROM events WHERE club_id = ?",
			"DELETE FROM event_requests WHERE club_id = ?",
			"DELETE FROM club_subscriptions WHERE club_id = ?",
			"DELETE FROM club_ratings WHERE club_id = ?",
			"DELETE FROM clubs WHERE id = ?",
		}
		for _, q := range steps {
			if _, err := tx.ExecContext(ctx, q, clubID); err != nil {
				return err
			}
		}
		return setRoleTx(ctx, tx, headID, model.RoleStudent)
	})
}
