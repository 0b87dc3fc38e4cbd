package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// TicketRepo implements the booking state machine on top of the poster
// seat inventory.  Seats are reserved eagerly at booking time through an
// atomic conditional decrement, so two bookings racing on the same poster
// can never drive seats_left negative: the UPDATE's WHERE clause is the
// capacity check and MySQL serializes the row write.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "id,poster_id,user_id,number_of_persons,payment_proof_url,status,created_at,updated_at"

func scanTicket(scan func(dest ...any) error) (model.TicketBooking, error) {
	var t model.TicketBooking
	err := scan(&t.ID, &t.PosterID, &t.UserID, &t.NumberOfPersons,
		&t.PaymentProofURL, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Book reserves persons seats on a poster and creates a pending booking,
// both in one transaction.  The decrement only happens when enough seats
// remain; otherwise the poster is probed to distinguish a missing poster
// (sql.ErrNoRows) from exhausted capacity (ErrInsufficientSeats).
func (r *TicketRepo) Book(ctx context.Context, posterID, userID uint64, persons uint32, paymentProofURL string) (uint64, error) {
	var bookingID uint64
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE posters SET seats_left = seats_left - ? WHERE id = ? AND seats_left >= ?",
			persons, posterID, persons)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var one int
			if err := tx.QueryRowContext(ctx, "SELECT 1 FROM posters WHERE id=?", posterID).Scan(&one); err != nil {
				return err
			}
			return ErrInsufficientSeats
		}
		ins, err := tx.ExecContext(ctx,
			"INSERT INTO ticket_bookings (poster_id, user_id, number_of_persons, payment_proof_url, status) VALUES (?,?,?,?,?)",
			posterID, userID, persons, paymentProofURL, model.StatusPending)
		if err != nil {
			return err
		}
		id, err := ins.LastInsertId()
		if err != nil {
			return err
		}
		bookingID = uint64(id)
		return nil
	})
	return bookingID, err
}

// resolveByHead loads a booking and its poster under lock, verifies the
// caller heads the poster and flips a pending booking to the terminal
// status.  restoreSeats is set on rejection: exactly the persons reserved
// at booking time go back to the poster, capped at the poster's current
// capacity so the inventory invariant survives interim capacity edits.
func (r *TicketRepo) resolveByHead(ctx context.Context, ticketID, headID uint64, status string, restoreSeats bool) (model.TicketBooking, error) {
	var booking model.TicketBooking
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var posterHead uint64
		err := tx.QueryRowContext(ctx,
			`SELECT t.id, t.poster_id, t.user_id, t.number_of_persons, t.payment_proof_url, t.status, t.created_at, t.updated_at, p.head_id
			 FROM ticket_bookings t
			 JOIN posters p ON p.id = t.poster_id
			 WHERE t.id = ? FOR UPDATE`, ticketID).Scan(
			&booking.ID, &booking.PosterID, &booking.UserID, &booking.NumberOfPersons,
			&booking.PaymentProofURL, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
			&posterHead)
		if err != nil {
			return err
		}
		if posterHead != headID {
			return ErrForbidden
		}
		if booking.Status != model.StatusPending {
			return &StateError{Current: booking.Status}
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE ticket_bookings SET status=? WHERE id=?", status, ticketID); err != nil {
			return err
		}
		if restoreSeats {
			if _, err := tx.ExecContext(ctx,
				"UPDATE posters SET seats_left = LEAST(seats, seats_left + ?) WHERE id = ?",
				booking.NumberOfPersons, booking.PosterID); err != nil {
				return err
			}
		}
		booking.Status = status
		return nil
	})
	if err != nil {
		return model.TicketBooking{}, err
	}
	return booking, nil
}

// Approve confirms a pending booking.  Seats stay consumed.
func (r *TicketRepo) Approve(ctx context.Context, ticketID, headID uint64) (model.TicketBooking, error) {
	return r.resolveByHead(ctx, ticketID, headID, model.StatusApproved, false)
}

// Reject declines a pending booking and restores its reserved seats.
func (r *TicketRepo) Reject(ctx context.Context, ticketID, headID uint64) (model.TicketBooking, error) {
	return r.resolveByHead(ctx, ticketID, headID, model.StatusRejected, true)
}

// GetByIDForUser returns a booking when it belongs to the user.
func (r *TicketRepo) GetByIDForUser(ctx context.Context, ticketID, userID uint64) (model.TicketBooking, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM ticket_bookings WHERE id=? LIMIT 1", ticketID).Scan)
	if err != nil {
		return model.TicketBooking{}, err
	}
	if t.UserID != userID {
		return model.TicketBooking{}, ErrForbidden
	}
	return t, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.TicketBooking, error) {
	return r.list(ctx, "SELECT "+ticketColumns+" FROM ticket_bookings WHERE user_id=? ORDER BY created_at DESC", userID)
}

// ListByPosterForHead returns a poster's bookings for its head admin.
func (r *TicketRepo) ListByPosterForHead(ctx context.Context, posterID, headID uint64) ([]model.TicketBooking, error) {
	var actualHead uint64
	err := r.DB.QueryRowContext(ctx, "SELECT head_id FROM posters WHERE id=?", posterID).Scan(&actualHead)
	if err != nil {
		return nil, err
	}
	if actualHead != headID {
		return nil, ErrForbidden
	}
	return r.list(ctx, "SELECT "+ticketColumns+" FROM ticket_bookings WHERE poster_id=? ORDER BY created_at DESC", posterID)
}

func (r *TicketRepo) list(ctx context.Context, query string, args ...any) ([]model.TicketBooking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TicketBooking, 0)
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CalendarTicket is one approved booking joined with its poster and event
// for the calendar view.
type CalendarTicket struct {
	TicketID    uint64 `json:"ticket_id"`
	PosterID    uint64 `json:"poster_id"`
	PosterTitle string `json:"poster_title"`
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	Location    string `json:"location"`
	Date        time.Time `json:"date"`
	Persons     uint32 `json:"persons"`
}

// ListApprovedForCalendar returns the user's approved bookings with event
// details.  Only approved tickets feed the calendar; pending and rejected
// bookings never appear there.
func (r *TicketRepo) ListApprovedForCalendar(ctx context.Context, userID uint64) ([]CalendarTicket, error) {
	const q = `SELECT t.id, p.id, p.title, e.id, e.name, e.location, e.date, t.number_of_persons
	           FROM ticket_bookings t
	           JOIN posters p ON p.id = t.poster_id
	           JOIN events e ON e.id = p.event_id
	           WHERE t.user_id = ? AND t.status = ?
	           ORDER BY e.date`
	rows, err := r.DB.QueryContext(ctx, q, userID, model.StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CalendarTicket, 0)
	for rows.Next() {
		var ct CalendarTicket
		if err := rows.Scan(&ct.TicketID, &ct.PosterID, &ct.PosterTitle,
			&ct.EventID, &ct.EventName, &ct.Location, &ct.Date, &ct.Persons); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}
