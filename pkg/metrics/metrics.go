package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Dispatch metrics
	NotificationsDispatched *prometheus.CounterVec
	DispatchDuration        prometheus.Histogram

	// Retry sweeper metrics
	RetryAttempts      prometheus.Counter
	RetrySweepDuration prometheus.Histogram
	RetryCandidates    prometheus.Gauge

	// Expiry sweeper metrics
	PostsExpired        prometheus.Counter
	ExpirySweepDuration prometheus.Histogram

	// Counter maintainer metrics
	CommentCounterUpdates *prometheus.CounterVec

	// Email metrics
	EmailsSent *prometheus.CounterVec
}

// New creates the application metrics. Instruments are not registered
// here; call Register with the target registry so tests can construct
// metrics without colliding on the default registerer.
func New(namespace string) *Metrics {
	return &Metrics{
		NotificationsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dispatched_total",
			Help:      "Notification dispatch attempts by kind and result",
		}, []string{"kind", "result"}),
		DispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent composing and sending one push message",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		RetryAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retry_attempts_total",
			Help:      "Total number of retry send attempts",
		}),
		RetrySweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retry_sweep_duration_seconds",
			Help:      "Time spent in one retry sweep",
		}),
		RetryCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "retry_candidates",
			Help:      "Number of candidates picked up by the last retry sweep",
		}),
		PostsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_expired_total",
			Help:      "Total number of expired posts deleted",
		}),
		ExpirySweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expiry_sweep_duration_seconds",
			Help:      "Time spent in one expiry sweep",
		}),
		CommentCounterUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comment_counter_updates_total",
			Help:      "Comment counter adjustments by operation and status",
		}, []string{"operation", "status"}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Transactional emails by result",
		}, []string{"result"}),
	}
}

// Register registers every instrument with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.NotificationsDispatched,
		m.DispatchDuration,
		m.RetryAttempts,
		m.RetrySweepDuration,
		m.RetryCandidates,
		m.PostsExpired,
		m.ExpirySweepDuration,
		m.CommentCounterUpdates,
		m.EmailsSent,
	)
}
