// Package event provides consumer-side plumbing shared by event handlers.
package event

import (
	"context"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Consumer wraps an event handler with swallow-and-log semantics: the
// inner handler's error (or panic) is logged with the event identity and
// never propagated. Publishers stay unaware of consumer outcomes.
type Consumer struct {
	inner  shared.EventHandler
	logger *zap.Logger
}

// NewConsumer wraps a handler as a swallowing consumer
func NewConsumer(inner shared.EventHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		inner:  inner,
		logger: logger,
	}
}

// EventTypes delegates to the wrapped handler
func (c *Consumer) EventTypes() []string {
	return c.inner.EventTypes()
}

// Handle runs the wrapped handler and always returns nil
func (c *Consumer) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if err := c.run(ctx, evt); err != nil {
		c.logger.Error("event consumer failed",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.String("company_id", evt.CompanyID().String()),
			zap.Error(err),
		)
	}
	return nil
}

func (c *Consumer) run(ctx context.Context, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("consumer panicked: %v", r)
		}
	}()
	return c.inner.Handle(ctx, evt)
}

var _ shared.EventHandler = (*Consumer)(nil)
