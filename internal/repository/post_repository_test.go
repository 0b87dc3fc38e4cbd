package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeFirstCallLikes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT likes FROM posts WHERE id=? FOR UPDATE")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM post_likes WHERE post_id=? AND user_id=?")).
		WithArgs(3, 8).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_likes (post_id, user_id) VALUES (?,?)")).
		WithArgs(3, 8).
		WillReturnResult(sqlmock.NewResult(21, 1))
	// The counter lands on the number of like rows: 4 + the new one.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET likes=? WHERE id=?")).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, likes, err := NewPostRepo(db).ToggleLike(context.Background(), 3, 8)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, uint32(5), likes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeSecondCallUnlikes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT likes FROM posts WHERE id=? FOR UPDATE")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM post_likes WHERE post_id=? AND user_id=?")).
		WithArgs(3, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	// The existing row goes away and the counter follows it down.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE id=?")).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET likes=? WHERE id=?")).
		WithArgs(4, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, likes, err := NewPostRepo(db).ToggleLike(context.Background(), 3, 8)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, uint32(4), likes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeMissingPost(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT likes FROM posts WHERE id=? FOR UPDATE")).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err = NewPostRepo(db).ToggleLike(context.Background(), 404, 8)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
