package model

import "time"

// Post is a club's social feed entry.  Likes is a denormalized counter that
// must always equal the number of post_likes rows for the post; the
// repository maintains both inside one transaction.
type Post struct {
	ID        uint64    `json:"id"`                  // posts.id
	ClubID    uint64    `json:"club_id"`             // posts.club_id
	AuthorID  uint64    `json:"author_id"`           // posts.author_id (the club's head admin)
	Text      string    `json:"text"`                // posts.text
	ImageURL  *string   `json:"image_url,omitempty"` // posts.image_url (nullable)
	Likes     uint32    `json:"likes"`               // posts.likes
	CreatedAt time.Time `json:"created_at"`          // posts.created_at
	UpdatedAt time.Time `json:"updated_at"`          // posts.updated_at
}

// PostLike is the join row behind the likes counter.  One row per
// (post, user) pair; liking twice removes the row (toggle semantics).
type PostLike struct {
	ID        uint64    `json:"id"`         // post_likes.id
	PostID    uint64    `json:"post_id"`    // post_likes.post_id
	UserID    uint64    `json:"user_id"`    // post_likes.user_id
	CreatedAt time.Time `json:"created_at"` // post_likes.created_at
}

// UserNotification is a persisted message for a user, written by the queue
// consumer when bookings or requests are resolved.
type UserNotification struct {
	ID        uint64    `json:"id"`         // user_notifications.id
	UserID    uint64    `json:"user_id"`    // user_notifications.user_id
	Text      string    `json:"text"`       // user_notifications.text
	IsRead    bool      `json:"is_read"`    // user_notifications.is_read
	CreatedAt time.Time `json:"created_at"` // user_notifications.created_at
}
