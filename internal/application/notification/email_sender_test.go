package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/bizgrid/backend/internal/domain/notification"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/concurrency"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type foreignEvent struct {
	shared.BaseDomainEvent
}

type fakeRenderer struct {
	body string
	err  error
}

func (r *fakeRenderer) Render(name string, model map[string]string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.body, nil
}

type fakeTransport struct {
	sent []Message
	err  error
}

func (t *fakeTransport) Send(ctx context.Context, msg Message) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, msg)
	return nil
}

func newSendEvent() *notification.SendEmailEvent {
	return notification.NewSendEmailEvent(
		uuid.New(),
		"noreply@bizgrid.test",
		"ada@acme.test",
		"Welcome to Acme Foods",
		"welcome.html",
		map[string]string{"AdminName": "Ada"},
	)
}

func newGate(t *testing.T, capacity int) *concurrency.Gate {
	t.Helper()
	gate, err := concurrency.NewGate(capacity)
	require.NoError(t, err)
	return gate
}

func TestEmailSender_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and sends the message", func(t *testing.T) {
		renderer := &fakeRenderer{body: "<p>Welcome Ada</p>"}
		transport := &fakeTransport{}
		sender := NewEmailSender(newGate(t, 1), renderer, transport, zap.NewNop())

		err := sender.Handle(ctx, newSendEvent())

		require.NoError(t, err)
		require.Len(t, transport.sent, 1)
		assert.Equal(t, "ada@acme.test", transport.sent[0].To)
		assert.Equal(t, "Welcome to Acme Foods", transport.sent[0].Subject)
		assert.Equal(t, "<p>Welcome Ada</p>", transport.sent[0].Body)
		assert.Equal(t, "noreply@bizgrid.test", transport.sent[0].From)
	})

	t.Run("renderer failure means the transport is never called", func(t *testing.T) {
		renderer := &fakeRenderer{err: errors.New("template missing")}
		transport := &fakeTransport{}
		sender := NewEmailSender(newGate(t, 1), renderer, transport, zap.NewNop())

		err := sender.Handle(ctx, newSendEvent())

		assert.Error(t, err)
		assert.Empty(t, transport.sent)
	})

	t.Run("permit is released after a renderer failure", func(t *testing.T) {
		gate := newGate(t, 1)
		sender := NewEmailSender(gate, &fakeRenderer{err: errors.New("boom")}, &fakeTransport{}, zap.NewNop())

		_ = sender.Handle(ctx, newSendEvent())

		permit := gate.TryAcquire()
		require.NotNil(t, permit)
		permit.Release()
	})

	t.Run("permit is released after a transport failure", func(t *testing.T) {
		gate := newGate(t, 1)
		transport := &fakeTransport{err: errors.New("smtp unavailable")}
		sender := NewEmailSender(gate, &fakeRenderer{body: "x"}, transport, zap.NewNop())

		err := sender.Handle(ctx, newSendEvent())

		assert.Error(t, err)
		permit := gate.TryAcquire()
		require.NotNil(t, permit)
		permit.Release()
	})

	t.Run("cancelled context while waiting for a permit", func(t *testing.T) {
		gate := newGate(t, 1)
		held := gate.TryAcquire()
		require.NotNil(t, held)
		defer held.Release()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		sender := NewEmailSender(gate, &fakeRenderer{body: "x"}, &fakeTransport{}, zap.NewNop())
		err := sender.Handle(cancelled, newSendEvent())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		sender := NewEmailSender(newGate(t, 1), &fakeRenderer{}, &fakeTransport{}, zap.NewNop())

		foreign := &foreignEvent{BaseDomainEvent: shared.NewBaseDomainEvent("SomethingElse", "Thing", uuid.New(), uuid.New())}
		assert.Error(t, sender.Handle(ctx, foreign))
	})

	t.Run("subscribes to the send email event type", func(t *testing.T) {
		sender := NewEmailSender(newGate(t, 1), &fakeRenderer{}, &fakeTransport{}, zap.NewNop())
		assert.Equal(t, []string{notification.EventTypeSendEmail}, sender.EventTypes())
	})
}
