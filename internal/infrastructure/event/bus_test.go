package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freshmart/backend/internal/domain/shared"
)

type testEvent struct {
	shared.BaseDomainEvent
}

type testHandler struct {
	eventType string
	handled   []shared.DomainEvent
	err       error
	panics    bool
}

func (h *testHandler) EventType() string { return h.eventType }

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func newTestEvent(eventType string) testEvent {
	return testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, uuid.New())}
}

func TestInMemoryEventBus(t *testing.T) {
	t.Run("routes events by type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		orderHandler := &testHandler{eventType: "order.placed"}
		vendorHandler := &testHandler{eventType: "vendor.status_changed"}
		bus.Subscribe(orderHandler)
		bus.Subscribe(vendorHandler)

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.placed")))

		assert.Len(t, orderHandler.handled, 1)
		assert.Empty(t, vendorHandler.handled)
	})

	t.Run("unhandled event types are not an error", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		assert.NoError(t, bus.Publish(context.Background(), newTestEvent("nobody.listens")))
	})

	t.Run("handler error is returned but all handlers run", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &testHandler{eventType: "order.placed", err: assert.AnError}
		second := &testHandler{eventType: "order.placed"}
		bus.Subscribe(failing)
		bus.Subscribe(second)

		err := bus.Publish(context.Background(), newTestEvent("order.placed"))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Len(t, second.handled, 1)
	})

	t.Run("panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		bus.Subscribe(&testHandler{eventType: "order.placed", panics: true})

		err := bus.Publish(context.Background(), newTestEvent("order.placed"))
		assert.Error(t, err)
	})
}
