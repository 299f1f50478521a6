// Package listeners turns domain events into notifications. Listeners
// run after the durable state change that fired the event; every
// delivery failure here is logged and swallowed.
package listeners

import (
	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/app/notifications"
	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/event"
	"github.com/shashiranjanraj/sokoni/pkg/logger"
	"github.com/shashiranjanraj/sokoni/pkg/notification"
	"github.com/shashiranjanraj/sokoni/pkg/workerpool"
)

// Listeners resolves recipients for each event and dispatches the
// matching notifications. Reporter fan-out goes through a bounded
// worker pool so a widely reported user cannot spawn unbounded
// goroutines.
type Listeners struct {
	users services.UserStore
	pool  *workerpool.Pool
}

func New(users services.UserStore, pool *workerpool.Pool) *Listeners {
	return &Listeners{users: users, pool: pool}
}

// Register attaches every listener to the default event bus.
func (l *Listeners) Register() {
	event.Listen(events.OrderPlaced, l.onOrderPlaced)
	event.Listen(events.OrderAssigned, l.onOrderAssigned)
	event.Listen(events.OrderStatusChanged, l.onOrderStatusChanged)
	event.Listen(events.OrderRefunded, l.onOrderRefunded)
	event.Listen(events.UserSuspended, l.onUserSuspended)
	event.Listen(events.UserUnsuspended, l.onUserUnsuspended)
	event.Listen(events.UserBanned, l.onUserBanned)
	event.Listen(events.ReportCreated, l.onReportCreated)
}

func (l *Listeners) onOrderPlaced(payload interface{}) {
	p, ok := payload.(events.OrderPlacedPayload)
	if !ok {
		return
	}

	if buyer, err := l.users.FindByID(p.Order.BuyerID); err == nil {
		notification.Send(buyer.ID, buyer.Email, &notifications.OrderPlaced{Order: p.Order})
	} else {
		logger.Error("listener: buyer lookup failed", "user_id", p.Order.BuyerID, "error", err)
	}

	for _, sellerID := range p.SellerIDs {
		seller, err := l.users.FindByID(sellerID)
		if err != nil {
			logger.Error("listener: seller lookup failed", "user_id", sellerID, "error", err)
			continue
		}
		notification.Send(seller.ID, seller.Email, &notifications.NewOrderForSeller{Order: p.Order})
	}
}

func (l *Listeners) onOrderAssigned(payload interface{}) {
	p, ok := payload.(events.OrderAssignedPayload)
	if !ok {
		return
	}
	courier, err := l.users.FindByID(p.DeliveryID)
	if err != nil {
		logger.Error("listener: courier lookup failed", "user_id", p.DeliveryID, "error", err)
		return
	}
	notification.Send(courier.ID, courier.Email, &notifications.DeliveryAssigned{Order: p.Order})
}

func (l *Listeners) onOrderStatusChanged(payload interface{}) {
	p, ok := payload.(events.OrderStatusChangedPayload)
	if !ok {
		return
	}
	buyer, err := l.users.FindByID(p.Order.BuyerID)
	if err != nil {
		logger.Error("listener: buyer lookup failed", "user_id", p.Order.BuyerID, "error", err)
		return
	}
	notification.Send(buyer.ID, buyer.Email, &notifications.OrderStatus{Order: p.Order, To: p.To})
}

func (l *Listeners) onOrderRefunded(payload interface{}) {
	p, ok := payload.(events.OrderRefundedPayload)
	if !ok {
		return
	}
	buyer, err := l.users.FindByID(p.Order.BuyerID)
	if err != nil {
		logger.Error("listener: buyer lookup failed", "user_id", p.Order.BuyerID, "error", err)
		return
	}
	notification.Send(buyer.ID, buyer.Email, &notifications.OrderRefunded{Order: p.Order})
}

func (l *Listeners) onUserSuspended(payload interface{}) {
	p, ok := payload.(events.ModerationPayload)
	if !ok {
		return
	}
	notification.Send(p.User.ID, p.User.Email, &notifications.AccountSuspended{Reason: p.Reason})
	l.notifyReporters(p.User, p.ReporterIDs, "suspended")
}

func (l *Listeners) onUserUnsuspended(payload interface{}) {
	p, ok := payload.(events.ModerationPayload)
	if !ok {
		return
	}
	notification.Send(p.User.ID, p.User.Email, &notifications.AccountUnsuspended{})
}

func (l *Listeners) onUserBanned(payload interface{}) {
	p, ok := payload.(events.ModerationPayload)
	if !ok {
		return
	}
	notification.Send(p.User.ID, p.User.Email, &notifications.AccountBanned{Reason: p.Reason})
	l.notifyReporters(p.User, p.ReporterIDs, "banned")
}

func (l *Listeners) onReportCreated(payload interface{}) {
	p, ok := payload.(events.ReportCreatedPayload)
	if !ok {
		return
	}
	admins, err := l.users.All(models.RoleAdmin)
	if err != nil {
		logger.Error("listener: admin lookup failed", "error", err)
		return
	}
	for _, admin := range admins {
		notification.Send(admin.ID, admin.Email, &notifications.ReportFiled{Report: p.Report})
	}
}

// notifyReporters fans a moderation outcome out to each distinct
// reporter through the worker pool.
func (l *Listeners) notifyReporters(target models.User, reporterIDs []uint, action string) {
	if len(reporterIDs) == 0 {
		return
	}

	tasks := make([]func(), 0, len(reporterIDs))
	for _, id := range reporterIDs {
		reporterID := id
		tasks = append(tasks, func() {
			reporter, err := l.users.FindByID(reporterID)
			if err != nil {
				logger.Error("listener: reporter lookup failed", "user_id", reporterID, "error", err)
				return
			}
			notification.Send(reporter.ID, reporter.Email, &notifications.ReporterUpdate{
				ReportedName: target.Name,
				Action:       action,
			})
		})
	}

	if err := l.pool.Do(tasks...); err != nil {
		logger.Error("listener: reporter fan-out failed", "error", err)
	}
}
