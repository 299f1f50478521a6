// Package notification provides a multi-channel notification system.
//
// Define a Notification:
//
//	type OrderRefundedNotification struct{ Order models.Order }
//	func (n *OrderRefundedNotification) Via() []string { return []string{"database", "push", "mail"} }
//	func (n *OrderRefundedNotification) ToDatabase() notification.DatabaseData { ... }
//	func (n *OrderRefundedNotification) ToMail() notification.MailData { ... }
//
// Send:
//
//	notification.Send(buyer.ID, buyer.Email, &OrderRefundedNotification{Order: order})
//
// Channel failures are logged and reported back, but Send never panics and
// never rolls back anything: notification delivery is best-effort by design
// of the callers, which treat their own state change as the durable effect.
package notification

import (
	"fmt"

	"github.com/shashiranjanraj/sokoni/pkg/logger"
	"github.com/shashiranjanraj/sokoni/pkg/mail"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// DatabaseData is persisted to the notifications table.
type DatabaseData struct {
	Category string // "order" | "delivery" | "admin" | "report"
	Title    string
	Body     string
	Link     string
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "database", "push".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Databaseable can be implemented to store the notification in the DB.
type Databaseable interface {
	ToDatabase() DatabaseData
}

// Store persists database-channel notifications. Wired at boot to the
// notifications repository.
type Store interface {
	SaveNotification(userID uint, d DatabaseData) error
}

// Pusher attempts real-time delivery (WebSocket). Wired at boot.
type Pusher interface {
	Push(userID uint, title, body string) error
}

var (
	store  Store
	pusher Pusher
)

// SetStore wires the database channel. Pass nil to disable.
func SetStore(s Store) { store = s }

// SetPusher wires the push channel. Pass nil to disable.
func SetPusher(p Pusher) { pusher = p }

// Send dispatches the notification through all channels returned by Via().
// email is used by the mail channel; userID by database and push.
func Send(userID uint, email string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(userID, email, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "user_id", userID, "error", err)
			metrics.NotificationFailures.WithLabelValues(channel).Inc()
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
func SendAsync(userID uint, email string, n Notification) {
	go func() {
		Send(userID, email, n)
	}()
}

func dispatch(userID uint, email, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(email, m.ToMail())

	case "database":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		if store == nil {
			return fmt.Errorf("notification: database store not configured")
		}
		return store.SaveNotification(userID, d.ToDatabase())

	case "push":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		if pusher == nil {
			return nil // push is optional; nothing to do without a hub
		}
		data := d.ToDatabase()
		return pusher.Push(userID, data.Title, data.Body)

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	if to == "" {
		return fmt.Errorf("notification: mail channel has no recipient")
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}
