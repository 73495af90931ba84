package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"processing skips shipped", OrderStatusProcessing, OrderStatusDelivered, false},
		{"shipped back to processing", OrderStatusShipped, OrderStatusProcessing, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusShipped, false},
		{"delivered to delivered", OrderStatusDelivered, OrderStatusDelivered, false},
		{"pending goes nowhere", OrderStatusPending, OrderStatusProcessing, false},
		{"nothing reaches pending", OrderStatusProcessing, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
