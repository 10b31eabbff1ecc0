package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	apperrors "github.com/sprintindex/notify-api/pkg/errors"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

// SendGridConfig carries the provider credential and sender identity.
// The API key is injected here instead of being read from the ambient
// environment at call time.
type SendGridConfig struct {
	APIKey       string
	FromEmail    string
	FromName     string
	ReplyToEmail string
	ReplyToName  string
}

// sendClient is the slice of the SendGrid client the service uses,
// narrow enough to fake in tests.
type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendgridService struct {
	cfg     SendGridConfig
	client  sendClient
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewSendGridService builds the transactional mail sender. A missing API
// key is detected per send so the service can start before the secret is
// provisioned, matching the callable's configuration-error contract.
func NewSendGridService(cfg SendGridConfig, logger *logger.Logger, metrics *metrics.Metrics) Service {
	var client sendClient
	if cfg.APIKey != "" {
		client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return &sendgridService{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *sendgridService) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	if email == "" || resetURL == "" {
		return apperrors.InvalidArgument("Email and resetUrl are required", nil)
	}
	if s.cfg.APIKey == "" || s.client == nil {
		s.logger.Error(nil, "sendgrid api key not configured")
		return apperrors.Internal("Email service not configured", nil)
	}

	html, plain, err := renderPasswordReset(resetURL)
	if err != nil {
		return apperrors.Internal("Failed to send password reset email", err)
	}

	msg := s.buildPasswordResetMail(email, html, plain)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		s.metrics.EmailsSent.WithLabelValues("error").Inc()
		s.logger.Error(err, "password reset email failed", "recipient", email)
		return apperrors.Internal("Failed to send password reset email", err)
	}
	if resp.StatusCode >= 400 {
		s.metrics.EmailsSent.WithLabelValues("error").Inc()
		s.logger.Error(nil, "sendgrid rejected password reset email",
			"recipient", email,
			"status_code", resp.StatusCode,
			"body", resp.Body)
		return apperrors.Internal("Failed to send password reset email",
			fmt.Errorf("sendgrid returned status %d", resp.StatusCode))
	}

	s.metrics.EmailsSent.WithLabelValues("success").Inc()
	s.logger.Info("password reset email sent", "recipient", email)
	return nil
}

func (s *sendgridService) buildPasswordResetMail(email, html, plain string) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail))
	if s.cfg.ReplyToEmail != "" {
		m.SetReplyTo(mail.NewEmail(s.cfg.ReplyToName, s.cfg.ReplyToEmail))
	}

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", email))
	p.Subject = passwordResetSubject
	m.AddPersonalizations(p)

	// Plain text first so multipart clients prefer the HTML part.
	m.AddContent(
		mail.NewContent("text/plain", plain),
		mail.NewContent("text/html", html),
	)

	// Reset mail must reach unsubscribed users too.
	ms := mail.NewMailSettings()
	ms.SetBypassListManagement(mail.NewSetting(true))
	m.SetMailSettings(ms)

	ts := mail.NewTrackingSettings()
	ct := mail.NewClickTrackingSetting()
	ct.SetEnable(true)
	ct.SetEnableText(false)
	ts.SetClickTracking(ct)
	ot := mail.NewOpenTrackingSetting()
	ot.SetEnable(true)
	ts.SetOpenTracking(ot)
	st := mail.NewSubscriptionTrackingSetting()
	st.SetEnable(false)
	ts.SetSubscriptionTracking(st)
	m.SetTrackingSettings(ts)

	m.SetHeader("X-Mailer", "SprintIndex")
	return m
}
