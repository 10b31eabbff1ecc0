package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sprintindex/notify-api/internal/service/post"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

// ExpirySweeper periodically deletes temporary posts past their
// expiration time.
type ExpirySweeper struct {
	posts    post.Service
	interval time.Duration
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewExpirySweeper(posts post.Service, interval time.Duration, logger *logger.Logger, metrics *metrics.Metrics) *ExpirySweeper {
	if interval <= 0 {
		panic("interval must be greater than 0")
	}
	return &ExpirySweeper{
		posts:    posts,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

func (w *ExpirySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("expiry sweeper started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expiry sweeper shutting down")
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.Error(err, "expiry sweep failed")
			}
		}
	}
}

// Sweep deletes all currently expired posts and returns the count. A
// failed batch reports zero effect.
func (w *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	timer := prometheus.NewTimer(w.metrics.ExpirySweepDuration)
	defer timer.ObserveDuration()

	return w.posts.DeleteExpired(ctx)
}
