package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
)

type notificationRepository struct {
	baseRepository
}

func NewNotificationRepository(client *firestore.Client, logger *logger.Logger) repository.NotificationRepository {
	return &notificationRepository{newBaseRepository(client, logger)}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (string, error) {
	ref := r.client.Collection(notificationsCollection).NewDoc()
	if _, err := ref.Set(ctx, n); err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	n.ID = ref.ID
	return ref.ID, nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*model.Notification, error) {
	doc, err := r.client.Collection(notificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification %s: %w", id, err)
	}
	var n model.Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to decode notification %s: %w", id, err)
	}
	n.ID = doc.Ref.ID
	return &n, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id, messageID string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "sent", Value: true},
		{Path: "sentAt", Value: firestore.ServerTimestamp},
		{Path: "messageId", Value: messageID},
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification %s sent: %w", id, err)
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id, errMsg, errCode string) error {
	updates := []firestore.Update{
		{Path: "sent", Value: false},
		{Path: "error", Value: errMsg},
		{Path: "failedAt", Value: firestore.ServerTimestamp},
	}
	if errCode != "" {
		updates = append(updates, firestore.Update{Path: "errorCode", Value: errCode})
	}
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s failed: %w", id, err)
	}
	return nil
}

func (r *notificationRepository) MarkRetrySucceeded(ctx context.Context, id, messageID string, retryCount int) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "sent", Value: true},
		{Path: "sentAt", Value: firestore.ServerTimestamp},
		{Path: "messageId", Value: messageID},
		{Path: "retryCount", Value: retryCount},
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification %s sent on retry: %w", id, err)
	}
	return nil
}

func (r *notificationRepository) MarkRetryFailed(ctx context.Context, id string, retryCount int, lastError string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "retryCount", Value: retryCount},
		{Path: "lastError", Value: lastError},
		{Path: "lastRetryAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("failed to record retry failure for notification %s: %w", id, err)
	}
	return nil
}

func (r *notificationRepository) ListRetryable(ctx context.Context, maxRetries, limit int) ([]*model.Notification, error) {
	iter := r.client.Collection(notificationsCollection).
		Where("sent", "==", false).
		Where("retryCount", "<", maxRetries).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []*model.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list retryable notifications: %w", err)
		}
		var n model.Notification
		if err := doc.DataTo(&n); err != nil {
			r.logger.Error(err, "skipping undecodable notification", "notification_id", doc.Ref.ID)
			continue
		}
		n.ID = doc.Ref.ID
		out = append(out, &n)
	}
	return out, nil
}
