package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// EventRequestRepo manages the pending→approved/rejected workflow for
// events.  The same one-shot resolution rules apply as for club requests,
// but approval materializes an Event and involves no role change.
type EventRequestRepo struct{ DB *sql.DB }

func NewEventRequestRepo(db *sql.DB) *EventRequestRepo { return &EventRequestRepo{DB: db} }

const eventRequestColumns = "id,requester_id,club_id,name,description,location,date,status,created_at,updated_at"

func scanEventRequest(scan func(dest ...any) error) (model.EventRequest, error) {
	var er model.EventRequest
	err := scan(&er.ID, &er.RequesterID, &er.ClubID, &er.Name, &er.Description,
		&er.Location, &er.Date, &er.Status, &er.CreatedAt, &er.UpdatedAt)
	return er, err
}

// Create inserts a pending event request.  The caller must be the head of
// the club; ownership is verified against clubs.head_id so a head admin
// cannot submit events for someone else's club.
func (r *EventRequestRepo) Create(ctx context.Context, requesterID, clubID uint64, name, description, location string, date time.Time) (uint64, error) {
	var headID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT head_id FROM clubs WHERE id=?", clubID).Scan(&headID)
	if err != nil {
		return 0, err // sql.ErrNoRows when the club does not exist
	}
	if headID != requesterID {
		return 0, ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_requests (requester_id, club_id, name, description, location, date, status) VALUES (?,?,?,?,?,?,?)",
		requesterID, clubID, name, description, location, date, model.StatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single event request.
func (r *EventRequestRepo) GetByID(ctx context.Context, id uint64) (model.EventRequest, error) {
	return scanEventRequest(r.DB.QueryRowContext(ctx,
		"SELECT "+eventRequestColumns+" FROM event_requests WHERE id=? LIMIT 1", id).Scan)
}

// ListByRequester returns requests submitted by one head admin, newest first.
func (r *EventRequestRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.EventRequest, error) {
	return r.list(ctx, "SELECT "+eventRequestColumns+" FROM event_requests WHERE requester_id=? ORDER BY created_at DESC", requesterID)
}

// ListAll returns every event request, newest first.  Super admin only.
func (r *EventRequestRepo) ListAll(ctx context.Context) ([]model.EventRequest, error) {
	return r.list(ctx, "SELECT "+eventRequestColumns+" FROM event_requests ORDER BY created_at DESC")
}

func (r *EventRequestRepo) list(ctx context.Context, query string, args ...any) ([]model.EventRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventRequest, 0)
	for rows.Next() {
		er, err := scanEventRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, er)
	}
	return out, rows.Err()
}

// Approve resolves a pending event request and creates the corresponding
// event in one transaction.  It returns the new event's ID.
func (r *EventRequestRepo) Approve(ctx context.Context, id uint64) (uint64, model.EventRequest, error) {
	var eventID uint64
	var req model.EventRequest
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		req, err = scanEventRequest(tx.QueryRowContext(ctx,
			"SELECT "+eventRequestColumns+" FROM event_requests WHERE id=? FOR UPDATE", id).Scan)
		if err != nil {
			return err
		}
		if err := resolveRequestTx(ctx, tx, "event_requests", id, model.StatusApproved); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO events (club_id, head_id, name, description, location, date) VALUES (?,?,?,?,?,?)",
			req.ClubID, req.RequesterID, req.Name, req.Description, req.Location, req.Date)
		if err != nil {
			return err
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		eventID = uint64(newID)
		return nil
	})
	if err != nil {
		return 0, model.EventRequest{}, err
	}
	req.Status = model.StatusApproved
	return eventID, req, nil
}

// Reject resolves a pending event request to rejected.
func (r *EventRequestRepo) Reject(ctx context.Context, id uint64) (model.EventRequest, error) {
	var req model.EventRequest
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		req, err = scanEventRequest(tx.QueryRowContext(ctx,
			"SELECT "+eventRequestColumns+" FROM event_requests WHERE id=? FOR UPDATE", id).Scan)
		if err != nil {
			return err
		}
		return resolveRequestTx(ctx, tx, "event_requests", id, model.StatusRejected)
	})
	if err != nil {
		return model.EventRequest{}, err
	}
	req.Status = model.StatusRejected
	return req, nil
}
