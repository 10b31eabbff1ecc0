package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/push"
	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

type RetrySweeperConfig struct {
	BatchSize  int
	Interval   time.Duration
	MaxRetries int
}

// RetrySweeper periodically re-attempts failed single-token sends. Each
// sweep is bounded to BatchSize records, and a record leaves the candidate
// set once it is sent or its retryCount reaches MaxRetries. Overlapping
// sweeps are not locked out; delivery is at-least-once.
type RetrySweeper struct {
	repo    repository.NotificationRepository
	sender  push.Sender
	limiter *rate.Limiter
	config  RetrySweeperConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewRetrySweeper(
	repo repository.NotificationRepository,
	sender push.Sender,
	limiter *rate.Limiter,
	config RetrySweeperConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *RetrySweeper {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.Interval <= 0 {
		panic("Interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		panic("MaxRetries must be greater than 0")
	}

	return &RetrySweeper{
		repo:    repo,
		sender:  sender,
		limiter: limiter,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (w *RetrySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.Info("retry sweeper started",
		"interval", w.config.Interval.String(),
		"batch_size", w.config.BatchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("retry sweeper shutting down")
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Error(err, "retry sweep failed")
			}
		}
	}
}

// Sweep runs one bounded pass over the retryable notifications. A record
// that fails to send does not abort the rest of the batch. An empty
// candidate set performs no writes.
func (w *RetrySweeper) Sweep(ctx context.Context) error {
	timer := prometheus.NewTimer(w.metrics.RetrySweepDuration)
	defer timer.ObserveDuration()

	candidates, err := w.repo.ListRetryable(ctx, w.config.MaxRetries, w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list retryable notifications: %w", err)
	}
	w.metrics.RetryCandidates.Set(float64(len(candidates)))
	if len(candidates) == 0 {
		return nil
	}

	w.logger.Info("retrying failed notifications", "count", len(candidates))
	for _, n := range candidates {
		if err := w.retry(ctx, n); err != nil {
			w.logger.Error(err, "retry attempt errored", "notification_id", n.ID)
		}
	}
	return nil
}

func (w *RetrySweeper) retry(ctx context.Context, n *model.Notification) error {
	attempt := n.RetryCount + 1
	w.metrics.RetryAttempts.Inc()

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	messageID, err := w.sender.Send(ctx, push.NewTokenMessage(n))
	if err != nil {
		w.logger.Warn("retry send failed",
			"notification_id", n.ID,
			"attempt", attempt,
			"error", err.Error())
		if uerr := w.repo.MarkRetryFailed(ctx, n.ID, attempt, err.Error()); uerr != nil {
			return fmt.Errorf("failed to record retry failure: %w", uerr)
		}
		return nil
	}

	if err := w.repo.MarkRetrySucceeded(ctx, n.ID, messageID, attempt); err != nil {
		return fmt.Errorf("failed to record retry success: %w", err)
	}
	w.logger.Info("retry succeeded",
		"notification_id", n.ID,
		"attempt", attempt,
		"message_id", messageID)
	return nil
}
