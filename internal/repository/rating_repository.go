package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/iliyamo/campus-events/internal/database"
)

// RatingRepo stores per-user club ratings and maintains the rounded mean
// on the club row.  Each user holds at most one rating per club; repeated
// submissions update in place.  The mean is recomputed from all rows on
// every write rather than maintained incrementally.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// RoundedMean computes the rounded arithmetic mean of scores, 0 for an
// empty slice.  Halves round away from zero (4.5 -> 5).
func RoundedMean(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// Rate records or updates the user's score for a club and refreshes the
// club's rating.  Returns the new club rating.
func (r *RatingRepo) Rate(ctx context.Context, clubID, userID uint64, score int) (int, error) {
	var rating int
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM clubs WHERE id=? FOR UPDATE", clubID).Scan(&one); err != nil {
			return err
		}
		// Insert-or-update keyed on the (club_id, user_id) unique index.
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO club_ratings (club_id, user_id, score) VALUES (?,?,?) ON DUPLICATE KEY UPDATE score=VALUES(score)",
			clubID, userID, score); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx,
			"SELECT score FROM club_ratings WHERE club_id=?", clubID)
		if err != nil {
			return err
		}
		defer rows.Close()
		var scores []int
		for rows.Next() {
			var s int
			if err := rows.Scan(&s); err != nil {
				return err
			}
			scores = append(scores, s)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rating = RoundedMean(scores)
		_, err = tx.ExecContext(ctx, "UPDATE clubs SET rating=? WHERE id=?", rating, clubID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return rating, nil
}
