// Package notifications defines the concrete notifications the
// marketplace sends. Each type picks its channels via Via and renders
// its own mail and database payloads.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/notification"
)

// OrderPlaced confirms a checkout to the buyer.
type OrderPlaced struct {
	Order models.Order
}

func (n *OrderPlaced) Via() []string { return []string{"database", "mail"} }

func (n *OrderPlaced) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyOrder,
		Title:    "Order placed",
		Body:     fmt.Sprintf("Your order %s for %.2f was placed.", n.Order.TrackingNumber, n.Order.TotalAmount),
		Link:     fmt.Sprintf("/orders/%d", n.Order.ID),
	}
}

func (n *OrderPlaced) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order confirmation %s", n.Order.TrackingNumber),
		Body: fmt.Sprintf("<p>Thank you for your order.</p><p>Tracking number: <b>%s</b><br>Total: <b>%.2f</b></p>",
			n.Order.TrackingNumber, n.Order.TotalAmount),
		Text: fmt.Sprintf("Thank you for your order. Tracking number %s, total %.2f.",
			n.Order.TrackingNumber, n.Order.TotalAmount),
	}
}

// NewOrderForSeller tells a seller one of their products was bought.
type NewOrderForSeller struct {
	Order models.Order
}

func (n *NewOrderForSeller) Via() []string { return []string{"database", "push"} }

func (n *NewOrderForSeller) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyOrder,
		Title:    "New order",
		Body:     fmt.Sprintf("Order %s includes one of your products.", n.Order.TrackingNumber),
		Link:     fmt.Sprintf("/orders/%d", n.Order.ID),
	}
}

// DeliveryAssigned tells a courier an order was added to their queue.
type DeliveryAssigned struct {
	Order models.Order
}

func (n *DeliveryAssigned) Via() []string { return []string{"database", "push"} }

func (n *DeliveryAssigned) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyOrder,
		Title:    "Delivery assigned",
		Body:     fmt.Sprintf("Order %s was assigned to you for delivery.", n.Order.TrackingNumber),
		Link:     fmt.Sprintf("/delivery/orders/%d", n.Order.ID),
	}
}

// OrderStatus tells the buyer their order moved a delivery stage.
type OrderStatus struct {
	Order models.Order
	To    models.DeliveryStatus
}

func (n *OrderStatus) Via() []string { return []string{"database", "push"} }

func (n *OrderStatus) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyOrder,
		Title:    "Order update",
		Body:     fmt.Sprintf("Order %s is now %s.", n.Order.TrackingNumber, n.To),
		Link:     fmt.Sprintf("/orders/%d", n.Order.ID),
	}
}

// OrderRefunded tells the buyer their order was refunded and cancelled.
type OrderRefunded struct {
	Order models.Order
}

func (n *OrderRefunded) Via() []string { return []string{"database", "mail", "push"} }

func (n *OrderRefunded) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyOrder,
		Title:    "Order refunded",
		Body:     fmt.Sprintf("Order %s was cancelled and %.2f will be refunded.", n.Order.TrackingNumber, n.Order.TotalAmount),
		Link:     fmt.Sprintf("/orders/%d", n.Order.ID),
	}
}

func (n *OrderRefunded) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order %s refunded", n.Order.TrackingNumber),
		Body: fmt.Sprintf("<p>Your order <b>%s</b> was cancelled because a seller left the marketplace.</p><p>%.2f will be refunded to you.</p>",
			n.Order.TrackingNumber, n.Order.TotalAmount),
		Text: fmt.Sprintf("Your order %s was cancelled and %.2f will be refunded.",
			n.Order.TrackingNumber, n.Order.TotalAmount),
	}
}

// AccountSuspended tells a user their account was suspended.
type AccountSuspended struct {
	Reason string
}

func (n *AccountSuspended) Via() []string { return []string{"database", "mail"} }

func (n *AccountSuspended) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyModeration,
		Title:    "Account suspended",
		Body:     fmt.Sprintf("Your account has been suspended. Reason: %s", n.Reason),
	}
}

func (n *AccountSuspended) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your account has been suspended",
		Body:    fmt.Sprintf("<p>Your account has been suspended.</p><p>Reason: %s</p>", n.Reason),
		Text:    fmt.Sprintf("Your account has been suspended. Reason: %s", n.Reason),
	}
}

// AccountUnsuspended tells a user their suspension was lifted.
type AccountUnsuspended struct{}

func (n *AccountUnsuspended) Via() []string { return []string{"database", "mail"} }

func (n *AccountUnsuspended) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyModeration,
		Title:    "Account reinstated",
		Body:     "Your suspension has been lifted and your listings are visible again.",
	}
}

func (n *AccountUnsuspended) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your account has been reinstated",
		Body:    "<p>Your suspension has been lifted and your listings are visible again.</p>",
		Text:    "Your suspension has been lifted and your listings are visible again.",
	}
}

// AccountBanned tells a user they were permanently banned.
type AccountBanned struct {
	Reason string
}

func (n *AccountBanned) Via() []string { return []string{"database", "mail"} }

func (n *AccountBanned) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyModeration,
		Title:    "Account banned",
		Body:     fmt.Sprintf("Your account has been permanently banned. Reason: %s", n.Reason),
	}
}

func (n *AccountBanned) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your account has been banned",
		Body:    fmt.Sprintf("<p>Your account has been permanently banned.</p><p>Reason: %s</p>", n.Reason),
		Text:    fmt.Sprintf("Your account has been permanently banned. Reason: %s", n.Reason),
	}
}

// ReporterUpdate tells someone who reported a user that action was
// taken. Sent once per distinct reporter.
type ReporterUpdate struct {
	ReportedName string
	Action       string // "suspended" | "banned"
}

func (n *ReporterUpdate) Via() []string { return []string{"database", "mail"} }

func (n *ReporterUpdate) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyReport,
		Title:    "Action taken on your report",
		Body:     fmt.Sprintf("%s has been %s following reports from the community.", n.ReportedName, n.Action),
	}
}

func (n *ReporterUpdate) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Action taken on a user you reported",
		Body: fmt.Sprintf("<p>Thank you for your report. <b>%s</b> has been %s.</p>",
			n.ReportedName, n.Action),
		Text: fmt.Sprintf("Thank you for your report. %s has been %s.", n.ReportedName, n.Action),
	}
}

// ReportFiled alerts an admin that a new report was created.
type ReportFiled struct {
	Report models.Report
}

func (n *ReportFiled) Via() []string { return []string{"database", "push"} }

func (n *ReportFiled) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Category: models.NotifyReport,
		Title:    "New user report",
		Body:     fmt.Sprintf("User %d was reported: %s", n.Report.ReportedUserID, n.Report.Reason),
		Link:     fmt.Sprintf("/admin/reports/%d", n.Report.ID),
	}
}
