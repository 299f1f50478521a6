package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PaymentStatus is the closed set of payment states an order can hold.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a recognised payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// DeliveryStatus is the closed set of delivery states an order can hold.
type DeliveryStatus string

const (
	DeliveryPreparing DeliveryStatus = "preparing"
	DeliveryPacked    DeliveryStatus = "packed"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Valid reports whether s is a recognised delivery status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPreparing, DeliveryPacked, DeliveryInTransit, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

// Payment methods accepted at checkout.
const (
	PaymentMethodCash        = "cash"
	PaymentMethodMobileMoney = "mobile_money"
)

// deliveryTransitions is the single authority on legal delivery-status
// moves. Stages advance one at a time; delivered and cancelled have no
// outgoing edges.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPreparing: {DeliveryPacked, DeliveryCancelled},
	DeliveryPacked:    {DeliveryInTransit, DeliveryCancelled},
	DeliveryInTransit: {DeliveryDelivered, DeliveryCancelled},
	DeliveryDelivered: {},
	DeliveryCancelled: {},
}

// CanTransition reports whether an order's delivery status may move
// from one state to another through the normal (non-forced) path.
func CanTransition(from, to DeliveryStatus) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order. Total amount and per-line unit prices are
// fixed at creation; later product price changes never alter them.
type Order struct {
	gorm.Model
	BuyerID           uint           `gorm:"not null;index" json:"buyer_id"`
	TotalAmount       float64        `gorm:"not null" json:"total_amount"`
	PaymentStatus     PaymentStatus  `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	PaymentMethod     string         `gorm:"size:30;not null" json:"payment_method"`
	DeliveryStatus    DeliveryStatus `gorm:"size:20;not null;default:preparing;index" json:"delivery_status"`
	DeliveryServiceID *uint          `gorm:"index" json:"delivery_service_id,omitempty"`
	DeliveryFee       float64        `gorm:"not null;default:0" json:"delivery_fee"`
	TrackingNumber    string         `gorm:"size:40;uniqueIndex" json:"tracking_number"`
	DeliveryAddress   string         `gorm:"size:500" json:"delivery_address"`
	DeliveryTown      string         `gorm:"size:120" json:"delivery_town"`
	DeliveryCounty    string         `gorm:"size:120" json:"delivery_county"`

	// Geolocation holds the buyer's coordinates encrypted at rest.
	Geolocation string `gorm:"size:500" json:"-"`

	PackedAt    *time.Time `json:"packed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	Buyer           *User `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	DeliveryService *User `gorm:"foreignKey:DeliveryServiceID" json:"delivery_service,omitempty"`
}

// OrderItem is one line of an order. UnitPrice is the product's price
// at the time of purchase, copied rather than joined live.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// LineTotal returns the amount charged for this line.
func (i *OrderItem) LineTotal() float64 { return float64(i.Quantity) * i.UnitPrice }

// NewTrackingNumber derives an order tracking number from the creation
// timestamp.
func NewTrackingNumber(t time.Time) string {
	return fmt.Sprintf("TRK%d", t.UnixNano())
}

// InFlight reports whether the order is still moving through the
// delivery pipeline: payment pending or paid, delivery not yet
// delivered or cancelled. Only in-flight orders are touched by a
// seller ban.
func (o *Order) InFlight() bool {
	switch o.PaymentStatus {
	case PaymentPending, PaymentPaid:
	default:
		return false
	}
	switch o.DeliveryStatus {
	case DeliveryPreparing, DeliveryPacked, DeliveryInTransit:
		return true
	}
	return false
}

// Terminal reports whether the order is in a state with no outgoing
// transitions.
func (o *Order) Terminal() bool {
	if o.DeliveryStatus == DeliveryDelivered {
		return true
	}
	return o.PaymentStatus == PaymentRefunded && o.DeliveryStatus == DeliveryCancelled
}

// Shipped reports whether the order has physically left the seller.
// Refunding a shipped order does not return its stock to the shelf.
func (o *Order) Shipped() bool {
	switch o.DeliveryStatus {
	case DeliveryInTransit, DeliveryDelivered:
		return true
	}
	return false
}
