package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/model"
)

// Expectations are matched in order, so this pins the delete sequence:
// children before parents, the club row last, then the head's demotion.
func TestDeleteCascadeOrderAndRoleReset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT head_id FROM clubs WHERE id=? FOR UPDATE")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"head_id"}).AddRow(7))
	for _, q := range []string{
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
	} {
		mock.ExpectExec(regexp.QuoteMeta(q)).
			WithArgs(12).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=? WHERE id=?")).
		WithArgs(model.RoleStudent, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewClubRepo(db).Delete(context.Background(), 12))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingClubRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT head_id FROM clubs WHERE id=? FOR UPDATE")).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = NewClubRepo(db).Delete(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
