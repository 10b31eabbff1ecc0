package push

import (
	"firebase.google.com/go/v4/messaging"

	"github.com/sprintindex/notify-api/internal/model"
)

// clickAction routes notification taps back into the Flutter engine.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// NewTokenMessage composes the FCM message for a single-device
// notification. The data map carries the semantic type and the document
// id so the client can resolve the tapped notification; payload fields
// from the document override both.
func NewTokenMessage(n *model.Notification) *messaging.Message {
	msg := newMessage(n.ID, n.Type(), n.Title, n.Body, n.Data)
	msg.Token = n.FCMToken
	return msg
}

// NewTopicMessage composes the FCM message for a topic broadcast.
func NewTopicMessage(n *model.TopicNotification) *messaging.Message {
	msg := newMessage(n.ID, n.Type(), n.Title, n.Body, n.Data)
	msg.Topic = n.Topic
	return msg
}

func newMessage(notificationID, notificationType, title, body string, extra map[string]string) *messaging.Message {
	data := map[string]string{
		"type":           notificationType,
		"notificationId": notificationID,
	}
	for k, v := range extra {
		data[k] = v
	}

	badge := 1
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:   ChannelForType(notificationType),
				Sound:       "default",
				ClickAction: clickAction,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound:    "default",
					Badge:    &badge,
					Category: CategoryForType(notificationType),
				},
			},
		},
	}
}
