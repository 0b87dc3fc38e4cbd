package model

import "time"

// Poster is the bookable listing for an approved event.  It carries the
// seat inventory governing booking admissibility: Seats is the capacity
// set by the head admin and SeatsLeft the remaining availability.
//
// Invariant: 0 <= SeatsLeft <= Seats at all times.  SeatsLeft is only ever
// mutated through conditional updates in the repository layer so that
// concurrent bookings cannot drive it negative.
type Poster struct {
	ID          uint64    `json:"id"`                  // posters.id
	EventID     uint64    `json:"event_id"`            // posters.event_id
	ClubID      uint64    `json:"club_id"`             // posters.club_id
	HeadID      uint64    `json:"head_id"`             // posters.head_id
	Title       string    `json:"title"`               // posters.title
	Description string    `json:"description"`         // posters.description
	ImageURL    *string   `json:"image_url,omitempty"` // posters.image_url (nullable)
	Seats       uint32    `json:"seats"`               // posters.seats
	SeatsLeft   uint32    `json:"seats_left"`          // posters.seats_left
	PriceCents  uint32    `json:"price_cents"`         // posters.price_cents
	CreatedAt   time.Time `json:"created_at"`          // posters.created_at
	UpdatedAt   time.Time `json:"updated_at"`          // posters.updated_at
}

// TicketBooking records a user's request for seats on a poster.  Creation
// reserves NumberOfPersons seats immediately (conservative policy: a
// pending booking cannot be starved by later bookings draining the
// poster).  Approval keeps the seats consumed; rejection restores exactly
// NumberOfPersons to the poster, never a recomputed amount.
type TicketBooking struct {
	ID              uint64    `json:"id"`                // ticket_bookings.id
	PosterID        uint64    `json:"poster_id"`         // ticket_bookings.poster_id
	UserID          uint64    `json:"user_id"`           // ticket_bookings.user_id
	NumberOfPersons uint32    `json:"number_of_persons"` // ticket_bookings.number_of_persons (>= 1)
	PaymentProofURL string    `json:"payment_proof_url"` // ticket_bookings.payment_proof_url
	Status          string    `json:"status"`            // ticket_bookings.status
	CreatedAt       time.Time `json:"created_at"`        // ticket_bookings.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // ticket_bookings.updated_at
}
