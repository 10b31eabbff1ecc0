// Package firestore implements the repository interfaces on Cloud
// Firestore. Status transitions are field-level updates so concurrent
// writers never clobber fields they do not own, and timestamps come from
// the server.
package firestore

import (
	"cloud.google.com/go/firestore"

	"github.com/sprintindex/notify-api/pkg/logger"
)

// Collection names, shared with the mobile client.
const (
	notificationsCollection      = "notifications"
	topicNotificationsCollection = "topicNotifications"
	postsCollection              = "posts"
	commentsCollection           = "comments"
)

type baseRepository struct {
	client *firestore.Client
	logger *logger.Logger
}

func newBaseRepository(client *firestore.Client, logger *logger.Logger) baseRepository {
	return baseRepository{client: client, logger: logger}
}
