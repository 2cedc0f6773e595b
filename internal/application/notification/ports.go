// Package notification delivers outbound email in response to domain events.
package notification

import "context"

// Message is a rendered outbound email
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// MailTransport delivers rendered messages
type MailTransport interface {
	Send(ctx context.Context, msg Message) error
}

// TemplateRenderer renders a named template with a string model
type TemplateRenderer interface {
	Render(name string, model map[string]string) (string, error)
}
