package model

import (
	"time"
)

// Post is a document under posts/{id}. Temporary posts carry an
// expiration; commentsCount is denormalized and maintained by the
// comment counter handlers.
type Post struct {
	ID            string    `firestore:"-"`
	AuthorUserID  string    `firestore:"authorUserId"`
	IsPermanent   bool      `firestore:"isPermanent"`
	ExpiresAt     time.Time `firestore:"expiresAt,omitempty"`
	CommentsCount int       `firestore:"commentsCount"`
	CreatedAt     time.Time `firestore:"createdAt,serverTimestamp"`
}

// Comment is a document under posts/{postId}/comments/{id}. Its creation
// and deletion are the only events that move the parent's commentsCount.
type Comment struct {
	ID           string    `firestore:"-"`
	PostID       string    `firestore:"-"`
	AuthorUserID string    `firestore:"authorUserId"`
	Text         string    `firestore:"text"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp"`
}
