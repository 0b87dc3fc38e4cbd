package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/campus-events/internal/model"
)

// EventRepo provides reads for live events.  Events are only created by
// EventRequestRepo.Approve and only removed by the club cascade delete.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,club_id,head_id,name,description,location,date,created_at,updated_at"

func scanEvent(scan func(dest ...any) error) (model.Event, error) {
	var e model.Event
	err := scan(&e.ID, &e.ClubID, &e.HeadID, &e.Name, &e.Description,
		&e.Location, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// GetByID fetches a single event.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	return scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id).Scan)
}

// List returns all events ordered by date ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events ORDER BY date")
}

// ListByClub returns a club's events ordered by date ascending.
func (r *EventRepo) ListByClub(ctx context.Context, clubID uint64) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE club_id=? ORDER BY date", clubID)
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
