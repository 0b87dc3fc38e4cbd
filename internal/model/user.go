package model

import "time"

// Role values stored in users.role.  A user carries exactly one role at a
// time.  Students are promoted to RoleHeadAdmin when their club request is
// approved and demoted back to RoleStudent when their club is deleted.
// Super admins are seeded out-of-band and never change role.
const (
	RoleStudent    = "student"
	RoleHeadAdmin  = "head_admin"
	RoleSuperAdmin = "super_admin"
)

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The
// password hash is excluded from serialization so the struct can be
// returned from handlers directly.
//
// Fields:
//
//	ID              – primary key identifier of the user.
//	Name, Surname   – display name parts.
//	Email           – unique email address.
//	PasswordHash    – bcrypt hashed password.
//	Role            – one of the Role* constants above.
//	Phone           – optional phone number.
//	Gender          – optional gender string.
//	BirthDate       – optional date of birth.
//	IsEmailVerified – set once the emailed verification code is confirmed.
//	CreatedAt       – timestamp of creation.
//	UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64     `json:"id"`                   // users.id
	Name            string     `json:"name"`                 // users.name
	Surname         string     `json:"surname"`              // users.surname
	Email           string     `json:"email"`                // users.email
	PasswordHash    string     `json:"-"`                    // users.password_hash, never serialized
	Role            string     `json:"role"`                 // users.role
	Phone           *string    `json:"phone,omitempty"`      // users.phone (nullable)
	Gender          *string    `json:"gender,omitempty"`     // users.gender (nullable)
	BirthDate       *time.Time `json:"birth_date,omitempty"` // users.birth_date (nullable)
	IsEmailVerified bool       `json:"is_email_verified"`    // users.is_email_verified
	CreatedAt       time.Time  `json:"created_at"`           // users.created_at
	UpdatedAt       time.Time  `json:"updated_at"`           // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
