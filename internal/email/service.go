package email

import (
	"context"
)

// Service sends transactional email. Delivery is synchronous and not
// persisted; callers retry by re-invoking.
type Service interface {
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}
