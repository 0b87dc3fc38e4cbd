package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/campus-events/internal/database"
	"github.com/iliyamo/campus-events/internal/model"
)

// ClubRequestRepo manages the pending→approved/rejected workflow for club
// applications.  Approval is a three-way write (request update, club
// insert, role promotion) executed inside one transaction so a failure at
// any step leaves no partial state.
type ClubRequestRepo struct{ DB *sql.DB }

func NewClubRequestRepo(db *sql.DB) *ClubRequestRepo { return &ClubRequestRepo{DB: db} }

const clubRequestColumns = "id,requester_id,name,description,logo_url,status,created_at,updated_at"

func scanClubRequest(scan func(dest ...any) error) (model.ClubRequest, error) {
	var cr model.ClubRequest
	err := scan(&cr.ID, &cr.RequesterID, &cr.Name, &cr.Description, &cr.LogoURL,
		&cr.Status, &cr.CreatedAt, &cr.UpdatedAt)
	return cr, err
}

// Create inserts a pending club request.  The proposed name is checked
// against live clubs up front so students learn about collisions at
// submission time rather than at approval.
func (r *ClubRequestRepo) Create(ctx context.Context, requesterID uint64, name, description string, logoURL *string) (uint64, error) {
	name = strings.TrimSpace(name)
	var taken int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM clubs WHERE name=?", name).Scan(&taken)
	if err != nil {
		return 0, err
	}
	if taken > 0 {
		return 0, ErrClubNameExists
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO club_requests (requester_id, name, description, logo_url, status) VALUES (?,?,?,?,?)",
		requesterID, name, description, logoURL, model.StatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single club request.
func (r *ClubRequestRepo) GetByID(ctx context.Context, id uint64) (model.ClubRequest, error) {
	return scanClubRequest(r.DB.QueryRowContext(ctx,
		"SELECT "+clubRequestColumns+" FROM club_requests WHERE id=? LIMIT 1", id).Scan)
}

// ListByRequester returns the requests submitted by one user, newest first.
func (r *ClubRequestRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.ClubRequest, error) {
	return r.list(ctx, "SELECT "+clubRequestColumns+" FROM club_requests WHERE requester_id=? ORDER BY created_at DESC", requesterID)
}

// ListAll returns every club request, newest first.  Super admin only.
func (r *ClubRequestRepo) ListAll(ctx context.Context) ([]model.ClubRequest, error) {
	return r.list(ctx, "SELECT "+clubRequestColumns+" FROM club_requests ORDER BY created_at DESC")
}

func (r *ClubRequestRepo) list(ctx context.Context, query string, args ...any) ([]model.ClubRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ClubRequest, 0)
	for rows.Next() {
		cr, err := scanClubRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

// resolve flips a pending request to the given terminal status.  It
// distinguishes a missing request (sql.ErrNoRows) from an already-resolved
// one (ErrInvalidState) and returns the request row as it was loaded.
func resolveRequestTx(ctx context.Context, tx *sql.Tx, table string, id uint64, status string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET status=? WHERE id=? AND status=?",
		status, id, model.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var current string
	err = tx.QueryRowContext(ctx, "SELECT status FROM "+table+" WHERE id=?", id).Scan(&current)
	if err != nil {
		return err // sql.ErrNoRows when the request does not exist
	}
	return &StateError{Current: current}
}

// Approve resolves a pending request, creates the club and promotes the
// requester to head_admin, all in one transaction.  It returns the new
// club's ID.  A duplicate club name surfaces as ErrClubNameExists and a
// requester who already heads a club as ErrConflict (clubs.head_id is
// unique).
func (r *ClubRequestRepo) Approve(ctx context.Context, id uint64) (uint64, model.ClubRequest, error) {
	var clubID uint64
	var req model.ClubRequest
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		req, err = scanClubRequest(tx.QueryRowContext(ctx,
			"SELECT "+clubRequestColumns+" FROM club_requests WHERE id=? FOR UPDATE", id).Scan)
		if err != nil {
			return err
		}
		if err := resolveRequestTx(ctx, tx, "club_requests", id, model.StatusApproved); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO clubs (name, head_id, description, logo_url, rating) VALUES (?,?,?,?,0)",
			req.Name, req.RequesterID, req.Description, req.LogoURL)
		if err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "1062") {
				if strings.Contains(low, "head_id") {
					return ErrConflict
				}
				return ErrClubNameExists
			}
			return err
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		clubID = uint64(newID)
		return setRoleTx(ctx, tx, req.RequesterID, model.RoleHeadAdmin)
	})
	if err != nil {
		return 0, model.ClubRequest{}, err
	}
	req.Status = model.StatusApproved
	return clubID, req, nil
}

// Reject resolves a pending request to rejected.  No club is created and
// no role changes.
func (r *ClubRequestRepo) Reject(ctx context.Context, id uint64) (model.ClubRequest, error) {
	var req model.ClubRequest
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		req, err = scanClubRequest(tx.QueryRowContext(ctx,
			"SELECT "+clubRequestColumns+" FROM club_requests WHERE id=? FOR UPDATE", id).Scan)
		if err != nil {
			return err
		}
		return resolveRequestTx(ctx, tx, "club_requests", id, model.StatusRejected)
	})
	if err != nil {
		return model.ClubRequest{}, err
	}
	req.Status = model.StatusRejected
	return req, nil
}
