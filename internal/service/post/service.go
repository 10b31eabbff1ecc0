package post

import (
	"context"
	"fmt"
	"time"

	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

// Service maintains the denormalized comment counter and purges expired
// temporary posts.
type Service interface {
	HandleCommentCreated(ctx context.Context, postID string) error
	HandleCommentDeleted(ctx context.Context, postID string) error
	DeleteExpired(ctx context.Context) (int, error)
}

type service struct {
	repo    repository.PostRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(repo repository.PostRepository, logger *logger.Logger, metrics *metrics.Metrics) Service {
	return &service{repo: repo, logger: logger, metrics: metrics}
}

// HandleCommentCreated bumps the parent post's comment counter. The
// increment is a server-side transform, so concurrent comment events
// cannot lose updates. Failures are logged and not retried; the counter
// is accepted to drift under handler failure.
func (s *service) HandleCommentCreated(ctx context.Context, postID string) error {
	return s.adjust(ctx, postID, 1, "increment")
}

// HandleCommentDeleted decrements the parent post's comment counter.
func (s *service) HandleCommentDeleted(ctx context.Context, postID string) error {
	return s.adjust(ctx, postID, -1, "decrement")
}

func (s *service) adjust(ctx context.Context, postID string, delta int, op string) error {
	if postID == "" {
		return fmt.Errorf("post id is required")
	}
	if err := s.repo.AdjustCommentCount(ctx, postID, delta); err != nil {
		s.metrics.CommentCounterUpdates.WithLabelValues(op, "error").Inc()
		s.logger.Error(err, "failed to adjust comment count", "post_id", postID)
		return err
	}
	s.metrics.CommentCounterUpdates.WithLabelValues(op, "success").Inc()
	s.logger.Debug("comment count adjusted", "post_id", postID, "delta", delta)
	return nil
}

// DeleteExpired removes every non-permanent post whose expiry has passed,
// as a single batch, and returns the number deleted. A failed batch has
// zero effect.
func (s *service) DeleteExpired(ctx context.Context) (int, error) {
	deleted, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired posts: %w", err)
	}
	if deleted > 0 {
		s.metrics.PostsExpired.Add(float64(deleted))
		s.logger.Info("deleted expired posts", "count", deleted)
	}
	return deleted, nil
}
