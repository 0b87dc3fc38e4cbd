package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/model"
)

const (
	bookDecrementSQL = "UPDATE posters SET seats_left = seats_left - ? WHERE id = ? AND seats_left >= ?"
	bookInsertSQL    = "INSERT INTO ticket_bookings (poster_id, user_id, number_of_persons, payment_proof_url, status) VALUES (?,?,?,?,?)"
	seatRestoreSQL   = "UPDATE posters SET seats_left = LEAST(seats, seats_left + ?) WHERE id = ?"
	statusFlipSQL    = "UPDATE ticket_bookings SET status=? WHERE id=?"
)

func bookingRow(status string, persons uint32, headID uint64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "poster_id", "user_id", "number_of_persons", "payment_proof_url",
		"status", "created_at", "updated_at", "head_id",
	}).AddRow(9, 7, 2, persons, "http://x/uploads/proof.png", status, now, now, headID)
}

func TestBookReservesSeatsAndInsertsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// The WHERE clause is the capacity check: decrement and check are one
	// atomic statement.
	mock.ExpectExec(regexp.QuoteMeta(bookDecrementSQL)).
		WithArgs(3, 7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(bookInsertSQL)).
		WithArgs(7, 2, 3, "http://x/uploads/proof.png", model.StatusPending).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	id, err := NewTicketRepo(db).Book(context.Background(), 7, 2, 3, "http://x/uploads/proof.png")
	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookExhaustedPoster(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(bookDecrementSQL)).
		WithArgs(10, 7, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// The probe distinguishes "not enough seats" from "no such poster".
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posters WHERE id=?")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	_, err = NewTicketRepo(db).Book(context.Background(), 7, 2, 10, "u")
	assert.ErrorIs(t, err, ErrInsufficientSeats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookMissingPoster(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(bookDecrementSQL)).
		WithArgs(2, 999, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posters WHERE id=?")).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = NewTicketRepo(db).Book(context.Background(), 999, 2, 2, "u")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRestoresReservedPersons(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.poster_id, t.user_id, t.number_of_persons")).
		WithArgs(9).
		WillReturnRows(bookingRow(model.StatusPending, 4, 5))
	mock.ExpectExec(regexp.QuoteMeta(statusFlipSQL)).
		WithArgs(model.StatusRejected, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Exactly the booking's reserved persons go back, capped by capacity.
	mock.ExpectExec(regexp.QuoteMeta(seatRestoreSQL)).
		WithArgs(4, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := NewTicketRepo(db).Reject(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, booking.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveKeepsSeatsConsumed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.poster_id, t.user_id, t.number_of_persons")).
		WithArgs(9).
		WillReturnRows(bookingRow(model.StatusPending, 4, 5))
	// No seat restore statement: approval consumes the reservation.
	mock.ExpectExec(regexp.QuoteMeta(statusFlipSQL)).
		WithArgs(model.StatusApproved, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := NewTicketRepo(db).Approve(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, booking.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveResolvedBookingIsTerminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.poster_id, t.user_id, t.number_of_persons")).
		WithArgs(9).
		WillReturnRows(bookingRow(model.StatusApproved, 4, 5))
	mock.ExpectRollback()

	_, err = NewTicketRepo(db).Reject(context.Background(), 9, 5)
	assert.ErrorIs(t, err, ErrInvalidState)

	var se *StateError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.StatusApproved, se.Current)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForeignPosterForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.poster_id, t.user_id, t.number_of_persons")).
		WithArgs(9).
		WillReturnRows(bookingRow(model.StatusPending, 4, 5))
	mock.ExpectRollback()

	_, err = NewTicketRepo(db).Approve(context.Background(), 9, 42) // not head 5
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}
