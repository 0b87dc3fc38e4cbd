package model

import "time"

// EventRequest is a head admin's application to run an event for their
// club.  Approval by a super admin materializes an Event row; no role
// change is involved.
type EventRequest struct {
	ID          uint64    `json:"id"`           // event_requests.id
	RequesterID uint64    `json:"requester_id"` // event_requests.requester_id (the head admin)
	ClubID      uint64    `json:"club_id"`      // event_requests.club_id
	Name        string    `json:"name"`         // event_requests.name
	Description string    `json:"description"`  // event_requests.description
	Location    string    `json:"location"`     // event_requests.location
	Date        time.Time `json:"date"`         // event_requests.date
	Status      string    `json:"status"`       // event_requests.status
	CreatedAt   time.Time `json:"created_at"`   // event_requests.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // event_requests.updated_at
}

// Event is a live event created as the approval side-effect of an
// EventRequest.  HeadID is denormalized from the club so ownership checks
// do not require a join.
type Event struct {
	ID          uint64    `json:"id"`          // events.id
	ClubID      uint64    `json:"club_id"`     // events.club_id
	HeadID      uint64    `json:"head_id"`     // events.head_id
	Name        string    `json:"name"`        // events.name
	Description string    `json:"description"` // events.description
	Location    string    `json:"location"`    // events.location
	Date        time.Time `json:"date"`        // events.date
	CreatedAt   time.Time `json:"created_at"`  // events.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // events.updated_at
}

// EventComment is a user's comment under an event.  Plain CRUD, no
// invariants beyond foreign keys.
type EventComment struct {
	ID        uint64    `json:"id"`         // event_comments.id
	EventID   uint64    `json:"event_id"`   // event_comments.event_id
	UserID    uint64    `json:"user_id"`    // event_comments.user_id
	Text      string    `json:"text"`       // event_comments.text
	CreatedAt time.Time `json:"created_at"` // event_comments.created_at
	UpdatedAt time.Time `json:"updated_at"` // event_comments.updated_at
}

// PersonalEvent is a private calendar entry owned by a single user.  It is
// merged with approved ticket bookings in the calendar view.
type PersonalEvent struct {
	ID          uint64    `json:"id"`          // personal_events.id
	UserID      uint64    `json:"user_id"`     // personal_events.user_id
	Name        string    `json:"name"`        // personal_events.name
	Description string    `json:"description"` // personal_events.description
	Date        time.Time `json:"date"`        // personal_events.date
	CreatedAt   time.Time `json:"created_at"`  // personal_events.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // personal_events.updated_at
}
