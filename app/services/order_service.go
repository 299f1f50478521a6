package services

import (
	"time"

	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/crypt"
	"github.com/shashiranjanraj/sokoni/pkg/event"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
)

// OrderService owns the order lifecycle after placement: delivery
// assignment and the delivery-status state machine.
type OrderService struct {
	users  UserStore
	orders OrderStore
}

func NewOrderService(users UserStore, orders OrderStore) *OrderService {
	return &OrderService{users: users, orders: orders}
}

// Actor identifies who is issuing an operation.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) isAdmin() bool { return a.Role == models.RoleAdmin }

// canDrive reports whether the actor may advance this order's delivery
// status: the assigned delivery account, or an admin acting for it.
func (a Actor) canDrive(o *models.Order) bool {
	if a.isAdmin() {
		return true
	}
	return a.Role == models.RoleDelivery && o.DeliveryServiceID != nil && *o.DeliveryServiceID == a.ID
}

// Get returns an order, restricted to its buyer, its assigned delivery
// account, or an admin.
func (s *OrderService) Get(actor Actor, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return order, notFoundOr(err)
	}
	if actor.isAdmin() || order.BuyerID == actor.ID || actor.canDrive(&order) {
		return order, nil
	}
	return models.Order{}, ErrNotAuthorized
}

// ForBuyer returns a buyer's own orders.
func (s *OrderService) ForBuyer(buyerID uint) ([]models.Order, error) {
	return s.orders.ByBuyer(buyerID)
}

// Queue returns the orders assigned to a delivery account, optionally
// narrowed to a bucket: "pending" (preparing or packed), "in_transit",
// or "completed" (delivered). An empty bucket returns everything.
func (s *OrderService) Queue(deliveryID uint, bucket string) ([]models.Order, error) {
	switch bucket {
	case "":
		return s.orders.ByDeliveryService(deliveryID)
	case "pending":
		return s.orders.ByDeliveryService(deliveryID, models.DeliveryPreparing, models.DeliveryPacked)
	case "in_transit":
		return s.orders.ByDeliveryService(deliveryID, models.DeliveryInTransit)
	case "completed":
		return s.orders.ByDeliveryService(deliveryID, models.DeliveryDelivered)
	default:
		return nil, ErrNotFound
	}
}

// AssignDelivery attaches a delivery account to an order. Admin only.
func (s *OrderService) AssignDelivery(actor Actor, orderID, deliveryID uint) error {
	if !actor.isAdmin() {
		return ErrNotAuthorized
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return notFoundOr(err)
	}
	if order.Terminal() {
		return ErrOrderTerminal
	}

	courier, err := s.users.FindByID(deliveryID)
	if err != nil {
		return notFoundOr(err)
	}
	if courier.Role != models.RoleDelivery {
		return ErrNotAuthorized
	}

	if err := s.orders.AssignDelivery(order.ID, deliveryID); err != nil {
		return err
	}

	order.DeliveryServiceID = &deliveryID
	event.Fire(events.OrderAssigned, events.OrderAssignedPayload{Order: order, DeliveryID: deliveryID})
	return nil
}

// Transition advances an order's delivery status by one stage:
// preparing to packed, packed to in transit, in transit to delivered.
// Cancellation never happens through this path; it is reserved for the
// moderation cascade.
func (s *OrderService) Transition(actor Actor, orderID uint, to models.DeliveryStatus) (models.Order, error) {
	if !to.Valid() || to == models.DeliveryCancelled {
		return models.Order{}, ErrInvalidTransition
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, notFoundOr(err)
	}
	if !actor.canDrive(&order) {
		return models.Order{}, ErrNotAuthorized
	}
	if order.Terminal() {
		return models.Order{}, ErrOrderTerminal
	}
	if !models.CanTransition(order.DeliveryStatus, to) {
		return models.Order{}, ErrInvalidTransition
	}

	from := order.DeliveryStatus
	now := time.Now()
	if err := s.orders.SetDeliveryStatus(order.ID, to, now); err != nil {
		return models.Order{}, err
	}

	order.DeliveryStatus = to
	switch to {
	case models.DeliveryPacked:
		order.PackedAt = &now
	case models.DeliveryInTransit:
		order.ShippedAt = &now
	case models.DeliveryDelivered:
		order.DeliveredAt = &now
	}

	metrics.OrderTransitions.WithLabelValues(string(to), "false").Inc()
	event.Fire(events.OrderStatusChanged, events.OrderStatusChangedPayload{
		Order: order, From: from, To: to,
	})

	return order, nil
}

// ConfirmPayment records that a cash-on-delivery payment was collected.
// Only the assigned delivery account or an admin may confirm.
func (s *OrderService) ConfirmPayment(actor Actor, orderID uint) error {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return notFoundOr(err)
	}
	if !actor.canDrive(&order) {
		return ErrNotAuthorized
	}
	if order.PaymentStatus != models.PaymentPending {
		return ErrOrderTerminal
	}
	return s.orders.SetPaymentStatus(order.ID, models.PaymentPaid)
}

// BuyerLocation decrypts the order's stored geolocation for the
// delivery account carrying it. Returns nil when none was captured.
func (s *OrderService) BuyerLocation(actor Actor, orderID uint) (*Geo, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !actor.canDrive(&order) {
		return nil, ErrNotAuthorized
	}
	if order.Geolocation == "" {
		return nil, nil
	}

	var geo Geo
	if err := crypt.DecryptJSON(order.Geolocation, &geo); err != nil {
		return nil, err
	}
	return &geo, nil
}
