package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/config"
	"github.com/shashiranjanraj/sokoni/pkg/audit"
	"github.com/shashiranjanraj/sokoni/pkg/event"
	"github.com/shashiranjanraj/sokoni/pkg/logger"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
)

// ModerationService applies admin suspend, unsuspend and ban actions
// and the cascade of effects they imply. Actions against the same user
// are serialised by a per-user lock so racing admins cannot interleave
// a suspend with an unsuspend.
type ModerationService struct {
	users    UserStore
	products ProductStore
	orders   OrderStore
	reports  ReportStore
	trail    *audit.Trail

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewModerationService(users UserStore, products ProductStore, orders OrderStore, reports ReportStore, trail *audit.Trail) *ModerationService {
	return &ModerationService{
		users:    users,
		products: products,
		orders:   orders,
		reports:  reports,
		trail:    trail,
		locks:    make(map[uint]*sync.Mutex),
	}
}

// lockUser serialises moderation actions per target user. Returns the
// unlock function.
func (s *ModerationService) lockUser(userID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Suspend marks a user suspended, hides all their products and
// notifies the user plus everyone who ever reported them. The state
// change is durable before any notification is attempted.
func (s *ModerationService) Suspend(actor Actor, userID uint, reason string) error {
	if !actor.isAdmin() {
		return ErrNotAuthorized
	}

	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.FindByID(userID)
	if err != nil {
		return notFoundOr(err)
	}
	if user.IsBanned {
		return ErrUserBanned
	}
	if user.IsSuspended {
		return ErrAlreadySuspended
	}

	now := time.Now()
	if err := s.users.Suspend(userID, reason, now); err != nil {
		return err
	}
	if err := s.products.SetActiveBySeller(userID, false); err != nil {
		return err
	}

	user.IsSuspended = true
	user.SuspendedAt = &now
	user.SuspensionReason = reason

	reporters := s.reporterIDs(userID)

	metrics.ModerationActions.WithLabelValues("suspend").Inc()
	s.trail.Record(audit.Entry{
		Action:   "suspend",
		ActorID:  actor.ID,
		TargetID: userID,
		Reason:   reason,
	})
	event.Fire(events.UserSuspended, events.ModerationPayload{
		User: user, Reason: reason, ReporterIDs: reporters,
	})
	return nil
}

// Unsuspend clears a suspension and reactivates every product the user
// owns. Reactivation is deliberately blanket: products deactivated for
// other reasons come back too.
func (s *ModerationService) Unsuspend(actor Actor, userID uint) error {
	if !actor.isAdmin() {
		return ErrNotAuthorized
	}

	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.FindByID(userID)
	if err != nil {
		return notFoundOr(err)
	}
	if user.IsBanned {
		return ErrUserBanned
	}
	if !user.IsSuspended {
		return ErrNotSuspended
	}

	if err := s.users.Unsuspend(userID); err != nil {
		return err
	}
	if err := s.products.SetActiveBySeller(userID, true); err != nil {
		return err
	}

	user.IsSuspended = false
	user.SuspendedAt = nil
	user.SuspensionReason = ""

	metrics.ModerationActions.WithLabelValues("unsuspend").Inc()
	s.trail.Record(audit.Entry{
		Action:   "unsuspend",
		ActorID:  actor.ID,
		TargetID: userID,
	})
	event.Fire(events.UserUnsuspended, events.ModerationPayload{User: user})
	return nil
}

// Ban permanently bans a user. The cascade hides all their products,
// force-refunds every in-flight order containing one of them, restores
// stock for orders that had not yet shipped, and notifies the buyer of
// each refunded order, the banned user and every distinct reporter.
// Banning an already banned user is a conflict, which keeps the
// cascade from refunding or notifying twice.
func (s *ModerationService) Ban(actor Actor, userID uint, reason string) error {
	if !actor.isAdmin() {
		return ErrNotAuthorized
	}

	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.users.FindByID(userID)
	if err != nil {
		return notFoundOr(err)
	}
	if user.IsBanned {
		return ErrUserBanned
	}

	now := time.Now()
	if err := s.users.Ban(userID, reason, now); err != nil {
		return err
	}
	if err := s.products.SetActiveBySeller(userID, false); err != nil {
		return err
	}

	user.IsBanned = true
	user.BannedAt = &now
	user.BanReason = reason
	user.IsSuspended = true
	user.SuspendedAt = &now
	user.SuspensionReason = reason

	if err := s.refundInFlight(userID, reason); err != nil {
		// Ban and product state are already durable; surface the
		// partial cascade rather than pretending success.
		return err
	}

	reporters := s.reporterIDs(userID)

	metrics.ModerationActions.WithLabelValues("ban").Inc()
	s.trail.Record(audit.Entry{
		Action:   "ban",
		ActorID:  actor.ID,
		TargetID: userID,
		Reason:   reason,
	})
	event.Fire(events.UserBanned, events.ModerationPayload{
		User: user, Reason: reason, ReporterIDs: reporters,
	})
	return nil
}

// refundInFlight force-refunds every in-flight order containing one of
// the seller's products, in bounded batches. Refunded orders drop out
// of the in-flight filter, so each batch reads from offset zero.
func (s *ModerationService) refundInFlight(sellerID uint, reason string) error {
	productIDs, err := s.products.IDsBySeller(sellerID)
	if err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	batch := config.ModerationBatchSize()
	for {
		ids, err := s.orders.InFlightIDsByProducts(productIDs, batch, 0)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		skipped := 0
		for _, id := range ids {
			order, err := s.orders.FindByID(id)
			if err != nil {
				logger.Error("ban cascade: order lookup failed", "order_id", id, "error", err)
				skipped++
				continue
			}

			// The shipped flag comes out of the guarded write itself,
			// so a courier advancing the order between this read and
			// the refund cannot restock goods that already left.
			shipped, changed, err := s.orders.ForceRefund(id)
			if err != nil {
				return err
			}
			if !changed {
				// Raced a delivery or another cascade; the guard in
				// the write already kept the order untouched.
				continue
			}

			// Stock goes back on the shelf only when it never left
			// the seller.
			if !shipped {
				for _, item := range order.Items {
					if err := s.products.Restore(item.ProductID, item.Quantity); err != nil {
						logger.Error("ban cascade: stock restore failed",
							"order_id", id, "product_id", item.ProductID, "error", err)
					}
				}
			}

			order.PaymentStatus = models.PaymentRefunded
			order.DeliveryStatus = models.DeliveryCancelled

			metrics.OrderTransitions.WithLabelValues(string(models.DeliveryCancelled), "true").Inc()
			event.Fire(events.OrderRefunded, events.OrderRefundedPayload{Order: order, Reason: reason})
		}

		// An unreadable order stays in flight and would come back in
		// the next batch forever, so the cascade stops and reports
		// instead of looping on it.
		if skipped > 0 {
			return fmt.Errorf("ban cascade: %d in-flight orders could not be read", skipped)
		}
		if len(ids) < batch {
			return nil
		}
	}
}

// reporterIDs returns the de-duplicated reporters of a user, logging
// rather than failing when the lookup breaks: reporter notification is
// best effort and never blocks a moderation action.
func (s *ModerationService) reporterIDs(userID uint) []uint {
	ids, err := s.reports.DistinctReporterIDs(userID)
	if err != nil {
		logger.Error("moderation: reporter lookup failed", "user_id", userID, "error", err)
		return nil
	}
	return ids
}
