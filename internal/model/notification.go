package model

import (
	"time"
)

// NotificationTypeDefault is assumed when a notification carries no type
// in its data payload.
const NotificationTypeDefault = "default"

// Notification is a push notification document under notifications/{id}.
// The sent flag is tri-state: nil means no delivery attempt has been
// recorded yet, true means delivered, false means the last attempt failed.
type Notification struct {
	ID              string            `firestore:"-"`
	RecipientUserID string            `firestore:"recipientUserId"`
	FCMToken        string            `firestore:"fcmToken"`
	Title           string            `firestore:"title"`
	Body            string            `firestore:"body"`
	Data            map[string]string `firestore:"data,omitempty"`
	Sent            *bool             `firestore:"sent,omitempty"`
	RetryCount      int               `firestore:"retryCount"`
	Error           string            `firestore:"error,omitempty"`
	ErrorCode       string            `firestore:"errorCode,omitempty"`
	LastError       string            `firestore:"lastError,omitempty"`
	MessageID       string            `firestore:"messageId,omitempty"`
	SentAt          *time.Time        `firestore:"sentAt,omitempty"`
	FailedAt        *time.Time        `firestore:"failedAt,omitempty"`
	LastRetryAt     *time.Time        `firestore:"lastRetryAt,omitempty"`
	CreatedAt       time.Time         `firestore:"createdAt,serverTimestamp"`
}

// Type returns the semantic notification type from the data payload,
// falling back to the default when absent.
func (n *Notification) Type() string {
	if t, ok := n.Data["type"]; ok && t != "" {
		return t
	}
	return NotificationTypeDefault
}

// TopicNotification is a broadcast notification document under
// topicNotifications/{id}. It addresses a topic subscription instead of a
// device token and has no retry lifecycle.
type TopicNotification struct {
	ID        string            `firestore:"-"`
	Topic     string            `firestore:"topic"`
	Title     string            `firestore:"title"`
	Body      string            `firestore:"body"`
	Data      map[string]string `firestore:"data,omitempty"`
	Sent      *bool             `firestore:"sent,omitempty"`
	Error     string            `firestore:"error,omitempty"`
	MessageID string            `firestore:"messageId,omitempty"`
	SentAt    *time.Time        `firestore:"sentAt,omitempty"`
	FailedAt  *time.Time        `firestore:"failedAt,omitempty"`
	CreatedAt time.Time         `firestore:"createdAt,serverTimestamp"`
}

// Type returns the semantic notification type from the data payload.
func (n *TopicNotification) Type() string {
	if t, ok := n.Data["type"]; ok && t != "" {
		return t
	}
	return NotificationTypeDefault
}
