package notification

import (
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeEmail = "Email"

// EventTypeSendEmail identifies SendEmailEvent on the bus
const EventTypeSendEmail = "SendEmail"

// SendEmailEvent asks the email consumer to render a template with the
// given model and send the result. Delivery is at-least-once; the send
// itself is not idempotent, which is an accepted residual risk.
type SendEmailEvent struct {
	shared.BaseDomainEvent
	From         string            `json:"from"`
	To           string            `json:"to"`
	Subject      string            `json:"subject"`
	TemplatePath string            `json:"template_path"`
	Model        map[string]string `json:"model,omitempty"`
}

// NewSendEmailEvent creates a new SendEmailEvent
func NewSendEmailEvent(companyID uuid.UUID, from, to, subject, templatePath string, model map[string]string) *SendEmailEvent {
	return &SendEmailEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSendEmail, AggregateTypeEmail, uuid.New(), companyID),
		From:            from,
		To:              to,
		Subject:         subject,
		TemplatePath:    templatePath,
		Model:           model,
	}
}
