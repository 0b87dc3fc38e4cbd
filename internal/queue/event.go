// Package queue defines message payloads exchanged over the message broker.
package queue

// Notification event kinds.  Consumers switch on Kind to render the
// user-facing text.
const (
	KindTicketApproved       = "ticket.approved"
	KindTicketRejected       = "ticket.rejected"
	KindClubRequestResolved  = "club_request.resolved"
	KindEventRequestResolved = "event_request.resolved"
)

// NotificationEvent is published after a booking or request reaches a
// terminal state.  Every identifier the consumer needs is carried in the
// payload so downstream processing never has to guess from ambient
// context or re-query the write path.
type NotificationEvent struct {
	Kind       string `json:"kind"`
	UserID     uint64 `json:"user_id"`
	ClubID     uint64 `json:"club_id,omitempty"`
	TicketID   uint64 `json:"ticket_id,omitempty"`
	RequestID  uint64 `json:"request_id,omitempty"`
	Subject    string `json:"subject"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
