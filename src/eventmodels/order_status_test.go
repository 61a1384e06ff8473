package eventmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.False(t, OrderStatusCanceling.IsTerminal())
	assert.True(t, OrderStatusExecuted.IsTerminal())
	assert.True(t, OrderStatusCanceled.IsTerminal())
	assert.True(t, OrderStatusRejected.IsTerminal())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
		assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCanceled))
		assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusRejected))
		assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusExecuted))
		assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusCanceling))
	})

	t.Run("processing", func(t *testing.T) {
		assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusExecuted))
		assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCanceling))
		assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCanceled))
		assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusRejected))
		assert.False(t, OrderStatusProcessing.CanTransitionTo(OrderStatusPending))
	})

	t.Run("canceling", func(t *testing.T) {
		assert.True(t, OrderStatusCanceling.CanTransitionTo(OrderStatusCanceled))
		assert.True(t, OrderStatusCanceling.CanTransitionTo(OrderStatusRejected))
		assert.False(t, OrderStatusCanceling.CanTransitionTo(OrderStatusExecuted))
	})

	t.Run("terminal statuses never transition out", func(t *testing.T) {
		for _, terminal := range []OrderStatus{OrderStatusExecuted, OrderStatusCanceled, OrderStatusRejected} {
			for _, next := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusExecuted, OrderStatusCanceling, OrderStatusCanceled, OrderStatusRejected} {
				assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
			}
		}
	})
}
