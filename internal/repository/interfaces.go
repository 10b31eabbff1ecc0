package repository

import (
	"context"
	"time"

	"github.com/sprintindex/notify-api/internal/model"
)

// NotificationRepository persists push notification delivery state.
// Documents are created by application clients; this service only
// transitions their send status.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (string, error)
	Get(ctx context.Context, id string) (*model.Notification, error)

	// MarkSent records a successful first-attempt delivery.
	MarkSent(ctx context.Context, id, messageID string) error
	// MarkFailed records a failed (or never attempted) delivery without
	// touching the retry counter.
	MarkFailed(ctx context.Context, id, errMsg, errCode string) error

	// MarkRetrySucceeded records a successful delivery on the given
	// attempt, freezing the retry counter there.
	MarkRetrySucceeded(ctx context.Context, id, messageID string, retryCount int) error
	// MarkRetryFailed advances the retry counter after a failed attempt.
	MarkRetryFailed(ctx context.Context, id string, retryCount int, lastError string) error

	// ListRetryable returns at most limit notifications with sent == false
	// and retryCount below maxRetries.
	ListRetryable(ctx context.Context, maxRetries, limit int) ([]*model.Notification, error)
}

// TopicNotificationRepository persists topic broadcast state. Topic sends
// have no retry path, so only the terminal transitions exist.
type TopicNotificationRepository interface {
	Create(ctx context.Context, n *model.TopicNotification) (string, error)
	MarkSent(ctx context.Context, id, messageID string) error
	MarkFailed(ctx context.Context, id, errMsg string) error
}

// PostRepository covers the post maintenance this service performs:
// denormalized comment counting and temporary-post expiry.
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) (string, error)
	Get(ctx context.Context, id string) (*model.Post, error)

	// AdjustCommentCount atomically adds delta to commentsCount.
	AdjustCommentCount(ctx context.Context, postID string, delta int) error

	// DeleteExpired removes all non-permanent posts with expiresAt at or
	// before now in a single batch, returning the number deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
