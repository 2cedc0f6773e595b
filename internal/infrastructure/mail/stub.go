package mail

import (
	"context"
	"sync"

	notificationapp "github.com/bizgrid/backend/internal/application/notification"
	"go.uber.org/zap"
)

var _ notificationapp.MailTransport = (*LoggingTransport)(nil)

// LoggingTransport logs messages instead of delivering them. Used in
// development when no SMTP server is configured.
type LoggingTransport struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []notificationapp.Message
}

// NewLoggingTransport creates a transport that only logs
func NewLoggingTransport(logger *zap.Logger) *LoggingTransport {
	return &LoggingTransport{logger: logger}
}

// Send records the message and logs its envelope
func (t *LoggingTransport) Send(ctx context.Context, msg notificationapp.Message) error {
	t.mu.Lock()
	t.sent = append(t.sent, msg)
	t.mu.Unlock()

	t.logger.Info("mail delivery skipped, no transport configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Sent returns every message passed to Send
func (t *LoggingTransport) Sent() []notificationapp.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]notificationapp.Message(nil), t.sent...)
}
