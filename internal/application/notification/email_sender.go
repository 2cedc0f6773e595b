package notification

import (
	"context"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/notification"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/concurrency"
	"go.uber.org/zap"
)

// EmailSender consumes SendEmail events. Every send holds a permit from
// the gate, bounding concurrent SMTP connections process-wide.
type EmailSender struct {
	gate      *concurrency.Gate
	renderer  TemplateRenderer
	transport MailTransport
	logger    *zap.Logger
}

// NewEmailSender creates a new EmailSender
func NewEmailSender(
	gate *concurrency.Gate,
	renderer TemplateRenderer,
	transport MailTransport,
	logger *zap.Logger,
) *EmailSender {
	return &EmailSender{
		gate:      gate,
		renderer:  renderer,
		transport: transport,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (s *EmailSender) EventTypes() []string {
	return []string{notification.EventTypeSendEmail}
}

// Handle renders and sends one email. The permit is released on every
// path, including when rendering fails before any SMTP work happens.
func (s *EmailSender) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*notification.SendEmailEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	permit, err := s.gate.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire send permit: %w", err)
	}
	defer permit.Release()

	body, err := s.renderer.Render(e.TemplatePath, e.Model)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := Message{
		From:    e.From,
		To:      e.To,
		Subject: e.Subject,
		Body:    body,
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("template", e.TemplatePath),
	)
	return nil
}
