package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from DeliveryStatus
		to   DeliveryStatus
		want bool
	}{
		{"preparing to packed", DeliveryPreparing, DeliveryPacked, true},
		{"packed to in transit", DeliveryPacked, DeliveryInTransit, true},
		{"in transit to delivered", DeliveryInTransit, DeliveryDelivered, true},
		{"preparing to cancelled", DeliveryPreparing, DeliveryCancelled, true},
		{"packed to cancelled", DeliveryPacked, DeliveryCancelled, true},
		{"in transit to cancelled", DeliveryInTransit, DeliveryCancelled, true},

		// Stage skipping is rejected.
		{"preparing to in transit", DeliveryPreparing, DeliveryInTransit, false},
		{"preparing to delivered", DeliveryPreparing, DeliveryDelivered, false},
		{"packed to delivered", DeliveryPacked, DeliveryDelivered, false},

		// Backwards moves are rejected.
		{"packed to preparing", DeliveryPacked, DeliveryPreparing, false},
		{"delivered to in transit", DeliveryDelivered, DeliveryInTransit, false},

		// Terminal states have no outgoing edges.
		{"delivered to cancelled", DeliveryDelivered, DeliveryCancelled, false},
		{"cancelled to preparing", DeliveryCancelled, DeliveryPreparing, false},
		{"cancelled to delivered", DeliveryCancelled, DeliveryDelivered, false},

		{"self transition", DeliveryPacked, DeliveryPacked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, PaymentPending.Valid())
	assert.True(t, PaymentPaid.Valid())
	assert.True(t, PaymentRefunded.Valid())
	assert.False(t, PaymentStatus("Pending").Valid())
	assert.False(t, PaymentStatus("").Valid())

	assert.True(t, DeliveryPreparing.Valid())
	assert.True(t, DeliveryCancelled.Valid())
	assert.False(t, DeliveryStatus("shipped").Valid())
}

func TestOrderInFlight(t *testing.T) {
	tests := []struct {
		payment  PaymentStatus
		delivery DeliveryStatus
		want     bool
	}{
		{PaymentPending, DeliveryPreparing, true},
		{PaymentPaid, DeliveryPacked, true},
		{PaymentPaid, DeliveryInTransit, true},
		{PaymentPaid, DeliveryDelivered, false},
		{PaymentRefunded, DeliveryCancelled, false},
		{PaymentPending, DeliveryCancelled, false},
	}
	for _, tt := range tests {
		o := Order{PaymentStatus: tt.payment, DeliveryStatus: tt.delivery}
		assert.Equal(t, tt.want, o.InFlight(), "%s/%s", tt.payment, tt.delivery)
	}
}

func TestOrderTerminal(t *testing.T) {
	delivered := Order{PaymentStatus: PaymentPaid, DeliveryStatus: DeliveryDelivered}
	assert.True(t, delivered.Terminal())

	refunded := Order{PaymentStatus: PaymentRefunded, DeliveryStatus: DeliveryCancelled}
	assert.True(t, refunded.Terminal())

	open := Order{PaymentStatus: PaymentPaid, DeliveryStatus: DeliveryInTransit}
	assert.False(t, open.Terminal())
}

func TestOrderShipped(t *testing.T) {
	assert.False(t, (&Order{DeliveryStatus: DeliveryPreparing}).Shipped())
	assert.False(t, (&Order{DeliveryStatus: DeliveryPacked}).Shipped())
	assert.True(t, (&Order{DeliveryStatus: DeliveryInTransit}).Shipped())
	assert.True(t, (&Order{DeliveryStatus: DeliveryDelivered}).Shipped())
}

func TestNewTrackingNumber(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := NewTrackingNumber(at)
	assert.Equal(t, "TRK"+"1772366400000000000", got)

	// Deterministic for the same timestamp.
	assert.Equal(t, got, NewTrackingNumber(at))
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 12.5}
	assert.Equal(t, 37.5, item.LineTotal())
}
