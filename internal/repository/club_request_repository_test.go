package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/model"
)

func clubRequestRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "requester_id", "name", "description", "logo_url", "status", "created_at", "updated_at",
	}).AddRow(5, 2, "Chess Club", "we play chess", nil, status, now, now)
}

func TestRejectResolvedRequestIsTerminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,requester_id,name,description,logo_url,status,created_at,updated_at FROM club_requests WHERE id=? FOR UPDATE")).
		WithArgs(5).
		WillReturnRows(clubRequestRow(model.StatusApproved))
	// The conditional UPDATE only matches pending rows, so it touches nothing.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE club_requests SET status=? WHERE id=? AND status=?")).
		WithArgs(model.StatusRejected, 5, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM club_requests WHERE id=?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusApproved))
	mock.ExpectRollback()

	_, err = NewClubRequestRepo(db).Reject(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidState)

	var se *StateError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.StatusApproved, se.Current)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectPendingRequestFlipsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,requester_id,name,description,logo_url,status,created_at,updated_at FROM club_requests WHERE id=? FOR UPDATE")).
		WithArgs(5).
		WillReturnRows(clubRequestRow(model.StatusPending))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE club_requests SET status=? WHERE id=? AND status=?")).
		WithArgs(model.StatusRejected, 5, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req, err := NewClubRequestRepo(db).Reject(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, req.Status)
	assert.Equal(t, uint64(2), req.RequesterID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
