package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// Sender delivers a composed FCM message and returns the provider's
// message identifier.
type Sender interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

type fcmSender struct {
	client *messaging.Client
}

// NewSender wraps the Cloud Messaging client.
func NewSender(client *messaging.Client) Sender {
	return &fcmSender{client: client}
}

func (s *fcmSender) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	return s.client.Send(ctx, msg)
}

// ErrorCode classifies a send error into the provider's error-code
// vocabulary, for the errorCode field on failed notifications. Unknown
// errors yield an empty code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case messaging.IsUnregistered(err):
		return "messaging/registration-token-not-registered"
	case messaging.IsQuotaExceeded(err):
		return "messaging/quota-exceeded"
	case messaging.IsUnavailable(err):
		return "messaging/unavailable"
	case messaging.IsInternal(err):
		return "messaging/internal-error"
	case messaging.IsSenderIDMismatch(err):
		return "messaging/sender-id-mismatch"
	case messaging.IsThirdPartyAuthError(err):
		return "messaging/third-party-auth-error"
	default:
		return ""
	}
}
