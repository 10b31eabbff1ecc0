package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
)

type topicNotificationRepository struct {
	baseRepository
}

func NewTopicNotificationRepository(client *firestore.Client, logger *logger.Logger) repository.TopicNotificationRepository {
	return &topicNotificationRepository{newBaseRepository(client, logger)}
}

func (r *topicNotificationRepository) Create(ctx context.Context, n *model.TopicNotification) (string, error) {
	ref := r.client.Collection(topicNotificationsCollection).NewDoc()
	if _, err := ref.Set(ctx, n); err != nil {
		return "", fmt.Errorf("failed to create topic notification: %w", err)
	}
	n.ID = ref.ID
	return ref.ID, nil
}

func (r *topicNotificationRepository) MarkSent(ctx context.Context, id, messageID string) error {
	_, err := r.client.Collection(topicNotificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "sent", Value: true},
		{Path: "sentAt", Value: firestore.ServerTimestamp},
		{Path: "messageId", Value: messageID},
	})
	if err != nil {
		return fmt.Errorf("failed to mark topic notification %s sent: %w", id, err)
	}
	return nil
}

func (r *topicNotificationRepository) MarkFailed(ctx context.Context, id, errMsg string) error {
	_, err := r.client.Collection(topicNotificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "sent", Value: false},
		{Path: "error", Value: errMsg},
		{Path: "failedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("failed to mark topic notification %s failed: %w", id, err)
	}
	return nil
}
