// Package mail provides SMTP delivery for outbound notification email.
package mail

import (
	"context"
	"errors"
	"fmt"

	notificationapp "github.com/bizgrid/backend/internal/application/notification"
	infraconfig "github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/wneessen/go-mail"
)

var _ notificationapp.MailTransport = (*SMTPTransport)(nil)

// SMTPTransport delivers messages over SMTP using a pooled client
type SMTPTransport struct {
	client      *mail.Client
	defaultFrom string
}

// NewSMTPTransport creates a transport from configuration
func NewSMTPTransport(cfg *infraconfig.MailConfig) (*SMTPTransport, error) {
	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("mail host is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPTransport{
		client:      client,
		defaultFrom: cfg.DefaultFrom,
	}, nil
}

// Send delivers a single HTML message. An empty from address falls back to
// the configured default sender.
func (t *SMTPTransport) Send(ctx context.Context, msg notificationapp.Message) error {
	from := msg.From
	if from == "" {
		from = t.defaultFrom
	}
	if from == "" {
		return errors.New("sender address is required")
	}
	if msg.To == "" {
		return errors.New("recipient address is required")
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.Body)

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
