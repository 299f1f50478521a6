// Package events names the domain events fired by the services and the
// payloads carried with them. Listeners translate these into
// notifications and emails after the durable state change has
// committed, never inside it.
package events

import "github.com/shashiranjanraj/sokoni/app/models"

const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
	OrderRefunded      = "order.refunded"
	OrderAssigned      = "order.delivery_assigned"
	UserSuspended      = "user.suspended"
	UserUnsuspended    = "user.unsuspended"
	UserBanned         = "user.banned"
	ReportCreated      = "report.created"
)

// OrderPlacedPayload is fired once per successful checkout.
type OrderPlacedPayload struct {
	Order     models.Order
	SellerIDs []uint
}

// OrderStatusChangedPayload is fired on every delivery-status move.
type OrderStatusChangedPayload struct {
	Order models.Order
	From  models.DeliveryStatus
	To    models.DeliveryStatus
}

// OrderAssignedPayload is fired when an admin attaches a delivery
// account to an order.
type OrderAssignedPayload struct {
	Order      models.Order
	DeliveryID uint
}

// OrderRefundedPayload is fired for each order force-refunded by a
// seller ban.
type OrderRefundedPayload struct {
	Order  models.Order
	Reason string
}

// ModerationPayload is fired on suspend, unsuspend and ban. ReporterIDs
// is already de-duplicated; each listed reporter is notified once.
type ModerationPayload struct {
	User        models.User
	Reason      string
	ReporterIDs []uint
}

// ReportCreatedPayload is fired when a user files a report.
type ReportCreatedPayload struct {
	Report models.Report
}
