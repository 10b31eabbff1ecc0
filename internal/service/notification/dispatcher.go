package notification

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/push"
	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

const errMissingFields = "Missing recipientUserId or fcmToken"

// Dispatcher turns newly created notification documents into outbound
// push attempts and records the outcome. It performs exactly one send
// attempt and one status write per invocation; the retry sweeper owns
// every subsequent attempt.
type Dispatcher interface {
	HandleCreated(ctx context.Context, n *model.Notification) error
	HandleTopicCreated(ctx context.Context, n *model.TopicNotification) error
}

type dispatcher struct {
	repo    repository.NotificationRepository
	topics  repository.TopicNotificationRepository
	sender  push.Sender
	limiter *rate.Limiter
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewDispatcher(
	repo repository.NotificationRepository,
	topics repository.TopicNotificationRepository,
	sender push.Sender,
	limiter *rate.Limiter,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) Dispatcher {
	return &dispatcher{
		repo:    repo,
		topics:  topics,
		sender:  sender,
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}
}

// HandleCreated processes one notification document. A send failure is
// recorded on the document, not returned: the handler's contract is to
// leave the record in a state the retry sweeper understands.
func (d *dispatcher) HandleCreated(ctx context.Context, n *model.Notification) error {
	// The listener replays existing documents on startup; anything with a
	// recorded outcome already had its one dispatch attempt.
	if n.Sent != nil {
		return nil
	}

	log := d.logger.WithFields(map[string]interface{}{"notification_id": n.ID})

	if n.RecipientUserID == "" || n.FCMToken == "" {
		log.Warn("notification missing required fields",
			"recipient_user_id", n.RecipientUserID)
		d.metrics.NotificationsDispatched.WithLabelValues("token", "invalid").Inc()
		if err := d.repo.MarkFailed(ctx, n.ID, errMissingFields, ""); err != nil {
			log.Error(err, "failed to mark notification failed")
		}
		return nil
	}

	if err := d.wait(ctx); err != nil {
		return err
	}

	timer := prometheus.NewTimer(d.metrics.DispatchDuration)
	messageID, err := d.sender.Send(ctx, push.NewTokenMessage(n))
	timer.ObserveDuration()

	if err != nil {
		log.Error(err, "push send failed", "type", n.Type())
		d.metrics.NotificationsDispatched.WithLabelValues("token", "failed").Inc()
		// retryCount stays at its prior value so the sweeper picks this up.
		if uerr := d.repo.MarkFailed(ctx, n.ID, err.Error(), push.ErrorCode(err)); uerr != nil {
			log.Error(uerr, "failed to mark notification failed")
		}
		return nil
	}

	d.metrics.NotificationsDispatched.WithLabelValues("token", "sent").Inc()
	if err := d.repo.MarkSent(ctx, n.ID, messageID); err != nil {
		log.Error(err, "failed to mark notification sent", "message_id", messageID)
		return nil
	}

	log.Info("notification sent",
		"type", n.Type(),
		"channel", push.ChannelForType(n.Type()),
		"message_id", messageID)
	return nil
}

// HandleTopicCreated processes one topic notification document. There is
// no retry path for broadcasts; failures are recorded and left alone.
func (d *dispatcher) HandleTopicCreated(ctx context.Context, n *model.TopicNotification) error {
	if n.Sent != nil {
		return nil
	}

	log := d.logger.WithFields(map[string]interface{}{"notification_id": n.ID})

	if n.Topic == "" {
		log.Warn("topic notification without topic, skipping")
		return nil
	}

	if err := d.wait(ctx); err != nil {
		return err
	}

	messageID, err := d.sender.Send(ctx, push.NewTopicMessage(n))
	if err != nil {
		log.Error(err, "topic send failed", "topic", n.Topic)
		d.metrics.NotificationsDispatched.WithLabelValues("topic", "failed").Inc()
		if uerr := d.topics.MarkFailed(ctx, n.ID, err.Error()); uerr != nil {
			log.Error(uerr, "failed to mark topic notification failed")
		}
		return nil
	}

	d.metrics.NotificationsDispatched.WithLabelValues("topic", "sent").Inc()
	if err := d.topics.MarkSent(ctx, n.ID, messageID); err != nil {
		log.Error(err, "failed to mark topic notification sent", "message_id", messageID)
		return nil
	}

	log.Info("topic notification sent",
		"topic", n.Topic,
		"channel", push.ChannelForType(n.Type()),
		"message_id", messageID)
	return nil
}

func (d *dispatcher) wait(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}
