package model

import "time"

// Request status values shared by club requests, event requests and ticket
// bookings.  A row starts pending and takes exactly one terminal
// transition; resolved rows are immutable.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ClubRequest is a student's application to found a club.  Approval by a
// super admin materializes a Club row and promotes the requester to
// head_admin; rejection leaves only the resolved request behind.
//
// Fields:
//
//	ID          – primary key identifier.
//	RequesterID – student who submitted the request.
//	Name        – proposed club name (must be unique among clubs).
//	Description – free-form pitch text.
//	LogoURL     – optional uploaded logo reference.
//	Status      – pending, approved or rejected.
type ClubRequest struct {
	ID          uint64    `json:"id"`                 // club_requests.id
	RequesterID uint64    `json:"requester_id"`       // club_requests.requester_id
	Name        string    `json:"name"`               // club_requests.name
	Description string    `json:"description"`        // club_requests.description
	LogoURL     *string   `json:"logo_url,omitempty"` // club_requests.logo_url (nullable)
	Status      string    `json:"status"`             // club_requests.status
	CreatedAt   time.Time `json:"created_at"`         // club_requests.created_at
	UpdatedAt   time.Time `json:"updated_at"`         // club_requests.updated_at
}

// Club is a live club created as the approval side-effect of a ClubRequest.
// HeadID references the user who runs the club; the column carries a
// uniqueness constraint so a head admin manages at most one club.
type Club struct {
	ID          uint64    `json:"id"`                 // clubs.id
	Name        string    `json:"name"`               // clubs.name (unique)
	HeadID      uint64    `json:"head_id"`            // clubs.head_id (unique)
	Description string    `json:"description"`        // clubs.description
	LogoURL     *string   `json:"logo_url,omitempty"` // clubs.logo_url (nullable)
	Rating      int       `json:"rating"`             // clubs.rating, rounded mean of club_ratings rows
	CreatedAt   time.Time `json:"created_at"`         // clubs.created_at
	UpdatedAt   time.Time `json:"updated_at"`         // clubs.updated_at
}

// ClubSubscription marks a user as a follower of a club.  One row per
// (user, club) pair.
type ClubSubscription struct {
	ID        uint64    `json:"id"`         // club_subscriptions.id
	ClubID    uint64    `json:"club_id"`    // club_subscriptions.club_id
	UserID    uint64    `json:"user_id"`    // club_subscriptions.user_id
	CreatedAt time.Time `json:"created_at"` // club_subscriptions.created_at
}

// ClubRating stores a single user's rating of a club.  Each user holds at
// most one rating row per club; repeat submissions update in place.  The
// club's displayed rating is the rounded mean over these rows, recomputed
// on every write.
type ClubRating struct {
	ID        uint64    `json:"id"`         // club_ratings.id
	ClubID    uint64    `json:"club_id"`    // club_ratings.club_id
	UserID    uint64    `json:"user_id"`    // club_ratings.user_id
	Score     int       `json:"score"`      // club_ratings.score (1..5)
	CreatedAt time.Time `json:"created_at"` // club_ratings.created_at
	UpdatedAt time.Time `json:"updated_at"` // club_ratings.updated_at
}
