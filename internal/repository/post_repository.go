package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// PostRepo provides persistence for club posts and their likes.  The
// posts.likes counter and the post_likes rows are always written in the
// same transaction so the counter equals the number of like rows at all
// times.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = "id,club_id,author_id,text,image_url,likes,created_at,updated_at"

func scanPost(scan func(dest ...any) error) (model.Post, error) {
	var p model.Post
	err := scan(&p.ID, &p.ClubID, &p.AuthorID, &p.Text, &p.ImageURL,
		&p.Likes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a post for the club headed by authorID.
func (r *PostRepo) Create(ctx context.Context, authorID uint64, text string, imageURL *string) (uint64, error) {
	var clubID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT id FROM clubs WHERE head_id=?", authorID).Scan(&clubID)
	if err != nil {
		return 0, err // sql.ErrNoRows when the author heads no club
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (club_id, author_id, text, image_url, likes) VALUES (?,?,?,?,0)",
		clubID, authorID, text, imageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single post.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	return scanPost(r.DB.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id=? LIMIT 1", id).Scan)
}

// List returns the whole feed, newest first.
func (r *PostRepo) List(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at DESC")
}

// ListByClub returns one club's posts, newest first.
func (r *PostRepo) ListByClub(ctx context.Context, clubID uint64) ([]model.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts WHERE club_id=? ORDER BY created_at DESC", clubID)
}

func (r *PostRepo) list(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateByAuthor edits a post's text and image.
func (r *PostRepo) UpdateByAuthor(ctx context.Context, postID, authorID uint64, text string, imageURL *string) error {
	var actualAuthor uint64
	err := r.DB.QueryRowContext(ctx, "SELECT author_id FROM posts WHERE id=?", postID).Scan(&actualAuthor)
	if err != nil {
		return err
	}
	if actualAuthor != authorID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE posts SET text=?, image_url=? WHERE id=?", text, imageURL, postID)
	return err
}

// DeleteByAuthor removes a post and its likes.
func (r *PostRepo) DeleteByAuthor(ctx context.Context, postID, authorID uint64) error {
	return database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var actualAuthor uint64
		err := tx.QueryRowContext(ctx,
			"SELECT author_id FROM posts WHERE id=? FOR UPDATE", postID).Scan(&actualAuthor)
		if err != nil {
			return err
		}
		if actualAuthor != authorID {
			return ErrForbidden
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id=?", postID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", postID)
		return err
	})
}

// ToggleLike flips the like state for (postID, userID).  A first call
// inserts the like row and increments the counter; a second call removes
// the row and decrements it.  Returns the new liked state and like count.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID uint64) (bool, uint32, error) {
	var liked bool
	var likes uint32
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		// Lock the post row so concurrent toggles serialize on the counter.
		if err := tx.QueryRowContext(ctx,
			"SELECT likes FROM posts WHERE id=? FOR UPDATE", postID).Scan(&likes); err != nil {
			return err
		}
		var likeID uint64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM post_likes WHERE post_id=? AND user_id=?", postID, userID).Scan(&likeID)
		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO post_likes (post_id, user_id) VALUES (?,?)", postID, userID); err != nil {
				return err
			}
			likes++
			liked = true
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM post_likes WHERE id=?", likeID); err != nil {
				return err
			}
			likes--
			liked = false
		}
		_, err = tx.ExecContext(ctx, "UPDATE posts SET likes=? WHERE id=?", likes, postID)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}
