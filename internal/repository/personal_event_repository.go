package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/campus-events/internal/model"
)

// PersonalEventRepo manages private calendar entries.  Rows are strictly
// scoped to their owner.
type PersonalEventRepo struct{ DB *sql.DB }

func NewPersonalEventRepo(db *sql.DB) *PersonalEventRepo { return &PersonalEventRepo{DB: db} }

const personalEventColumns = "id,user_id,name,description,date,created_at,updated_at"

func scanPersonalEvent(scan func(dest ...any) error) (model.PersonalEvent, error) {
	var pe model.PersonalEvent
	err := scan(&pe.ID, &pe.UserID, &pe.Name, &pe.Description, &pe.Date, &pe.CreatedAt, &pe.UpdatedAt)
	return pe, err
}

// Create inserts a personal event for the user.
func (r *PersonalEventRepo) Create(ctx context.Context, userID uint64, name, description string, date time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO personal_events (user_id, name, description, date) VALUES (?,?,?,?)",
		userID, name, description, date)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the user's personal events ordered by date.
func (r *PersonalEventRepo) ListByUser(ctx context.Context, userID uint64) ([]model.PersonalEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+personalEventColumns+" FROM personal_events WHERE user_id=? ORDER BY date", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PersonalEvent, 0)
	for rows.Next() {
		pe, err := scanPersonalEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, pe)
	}
	return out, rows.Err()
}

// Update edits an entry owned by the user.
func (r *PersonalEventRepo) Update(ctx context.Context, id, userID uint64, name, description string, date time.Time) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM personal_events WHERE id=?", id).Scan(&owner)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE personal_events SET name=?, description=?, date=? WHERE id=?",
		name, description, date, id)
	return err
}

// Delete removes an entry owned by the user.
func (r *PersonalEventRepo) Delete(ctx context.Context, id, userID uint64) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM personal_events WHERE id=?", id).Scan(&owner)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM personal_events WHERE id=?", id)
	return err
}
