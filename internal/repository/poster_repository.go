package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// PosterRepo provides persistence for posters, the bookable listings that
// carry the seat inventory.  All seats_left mutations happen here, either
// through the capacity re-derivation in UpdateByHead or through the
// conditional updates in TicketRepo.
type PosterRepo struct{ DB *sql.DB }

func NewPosterRepo(db *sql.DB) *PosterRepo { return &PosterRepo{DB: db} }

const posterColumns = "id,event_id,club_id,head_id,title,description,image_url,seats,seats_left,price_cents,created_at,updated_at"

func scanPoster(scan func(dest ...any) error) (model.Poster, error) {
	var p model.Poster
	err := scan(&p.ID, &p.EventID, &p.ClubID, &p.HeadID, &p.Title, &p.Description,
		&p.ImageURL, &p.Seats, &p.SeatsLeft, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ApplySeatDelta re-derives seats_left after the head admin changes a
// poster's capacity from oldSeats to newSeats.  The delta between the two
// capacities is applied to the current seats_left and the result clamped
// into [0, newSeats]: shrinking capacity below what is already booked
// drives seats_left to 0, never negative.
func ApplySeatDelta(oldSeats, newSeats, seatsLeft uint32) uint32 {
	left := int64(seatsLeft) + int64(newSeats) - int64(oldSeats)
	if left < 0 {
		left = 0
	}
	if left > int64(newSeats) {
		left = int64(newSeats)
	}
	return uint32(left)
}

// Create inserts a poster for an event owned by the head admin.  seats_left
// starts equal to seats.  Returns sql.ErrNoRows when the event is missing
// and ErrForbidden when the event belongs to another head.
func (r *PosterRepo) Create(ctx context.Context, headID, eventID uint64, title, description string, imageURL *string, seats, priceCents uint32) (uint64, error) {
	var clubID, actualHead uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT club_id, head_id FROM events WHERE id=?", eventID).Scan(&clubID, &actualHead)
	if err != nil {
		return 0, err
	}
	if actualHead != headID {
		return 0, ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posters (event_id, club_id, head_id, title, description, image_url, seats, seats_left, price_cents) VALUES (?,?,?,?,?,?,?,?,?)",
		eventID, clubID, headID, title, description, imageURL, seats, seats, priceCents)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single poster.
func (r *PosterRepo) GetByID(ctx context.Context, id uint64) (model.Poster, error) {
	return scanPoster(r.DB.QueryRowContext(ctx,
		"SELECT "+posterColumns+" FROM posters WHERE id=? LIMIT 1", id).Scan)
}

// List returns all posters, newest first.
func (r *PosterRepo) List(ctx context.Context) ([]model.Poster, error) {
	return r.list(ctx, "SELECT "+posterColumns+" FROM posters ORDER BY created_at DESC")
}

// ListByClub returns a club's posters, newest first.
func (r *PosterRepo) ListByClub(ctx context.Context, clubID uint64) ([]model.Poster, error) {
	return r.list(ctx, "SELECT "+posterColumns+" FROM posters WHERE club_id=? ORDER BY created_at DESC", clubID)
}

func (r *PosterRepo) list(ctx context.Context, query string, args ...any) ([]model.Poster, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Poster, 0)
	for rows.Next() {
		p, err := scanPoster(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateByHead edits a poster's presentation fields and capacity.  The row
// is locked while the new seats_left is derived from the capacity delta so
// a concurrent booking cannot slip between the read and the write.
func (r *PosterRepo) UpdateByHead(ctx context.Context, posterID, headID uint64, title, description string, imageURL *string, seats, priceCents uint32) (model.Poster, error) {
	var updated model.Poster
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		p, err := scanPoster(tx.QueryRowContext(ctx,
			"SELECT "+posterColumns+" FROM posters WHERE id=? FOR UPDATE", posterID).Scan)
		if err != nil {
			return err
		}
		if p.HeadID != headID {
			return ErrForbidden
		}
		newLeft := ApplySeatDelta(p.Seats, seats, p.SeatsLeft)
		_, err = tx.ExecContext(ctx,
			"UPDATE posters SET title=?, description=?, image_url=?, seats=?, seats_left=?, price_cents=? WHERE id=?",
			title, description, imageURL, seats, newLeft, priceCents, posterID)
		if err != nil {
			return err
		}
		updated = p
		updated.Title = title
		updated.Description = description
		updated.ImageURL = imageURL
		updated.Seats = seats
		updated.SeatsLeft = newLeft
		updated.PriceCents = priceCents
		return nil
	})
	return updated, err
}

// DeleteByHead removes a poster together with its bookings.  Bookings go
// first to keep the foreign keys intact.
func (r *PosterRepo) DeleteByHead(ctx context.Context, posterID, headID uint64) error {
	return database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var actualHead uint64
		err := tx.QueryRowContext(ctx,
			"SELECT head_id FROM posters WHERE id=? FOR UPDATE", posterID).Scan(&actualHead)
		if err != nil {
			return err
		}
		if actualHead != headID {
			return ErrForbidden
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM ticket_bookings WHERE poster_id=?", posterID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM posters WHERE id=?", posterID)
		return err
	})
}
