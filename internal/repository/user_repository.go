package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/utils"
)

// UserRepo provides persistence for the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,surname,email,password_hash,role,phone,gender,birth_date,is_email_verified,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.Role,
		&u.Phone, &u.Gender, &u.BirthDate, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new student account and returns its ID.  Duplicate
// emails surface as ErrEmailExists (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, name, surname, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, surname, email, password_hash, role) VALUES (?,?,?,?,?)",
		name, surname, email, hash, model.RoleStudent)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile overwrites the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, surname string, phone, gender *string, birthDate *time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, surname=?, phone=?, gender=?, birth_date=? WHERE id=?",
		name, surname, phone, gender, birthDate, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the values did not change; confirm the
		// user actually exists before reporting not found.
		var one int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// MarkEmailVerified flips is_email_verified for the user.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_email_verified=1 WHERE id=?", id)
	return err
}

// setRoleTx updates a user's role within an existing transaction.  Role
// changes only happen as side effects of club approval and club deletion,
// both of which run inside larger transactions.
func setRoleTx(ctx context.Context, tx *sql.Tx, id uint64, role string) error {
	_, err := tx.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
	return err
}
