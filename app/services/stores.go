package services

import (
	"time"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// Persistence boundaries consumed by the services. The repositories
// package provides the database-backed implementations; tests use
// in-memory fakes.

// UserStore is the identity and moderation-state boundary.
type UserStore interface {
	FindByID(id uint) (models.User, error)
	FindByEmail(email string) (models.User, error)
	Create(user *models.User) error
	Suspend(id uint, reason string, at time.Time) error
	Unsuspend(id uint) error
	Ban(id uint, reason string, at time.Time) error
	IncrementReportCount(id uint) error
	Flagged() ([]models.User, error)
	All(role string) ([]models.User, error)
}

// ProductStore is the catalogue and inventory-ledger boundary.
// Reserve is the atomic check-and-decrement; it returns false instead
// of ever letting stock go negative.
type ProductStore interface {
	FindByID(id uint) (models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	ActiveCatalogue() ([]models.Product, error)
	BySeller(sellerID uint) ([]models.Product, error)
	IDsBySeller(sellerID uint) ([]uint, error)
	Reserve(productID uint, qty int) (bool, error)
	Restore(productID uint, qty int) error
	SetActiveBySeller(sellerID uint, active bool) error
	SetRating(productID uint, rating float64) error
}

// CartStore is the cart-aggregate boundary.
type CartStore interface {
	ItemsByUser(userID uint) ([]models.CartItem, error)
	Find(userID, productID uint) (models.CartItem, bool, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, qty int) error
	Delete(userID, productID uint) error
	Clear(userID uint) error
}

// OrderStore is the order persistence boundary. ForceRefund repeats
// the in-flight guard in its write so it is safe to call on an order
// that has already reached a terminal state; its shipped result is
// derived from the same guarded write and is only meaningful when
// changed is true.
type OrderStore interface {
	Create(order *models.Order) error
	FindByID(id uint) (models.Order, error)
	ByBuyer(buyerID uint) ([]models.Order, error)
	ByDeliveryService(deliveryID uint, statuses ...models.DeliveryStatus) ([]models.Order, error)
	All() ([]models.Order, error)
	AssignDelivery(id, deliveryID uint) error
	SetDeliveryStatus(id uint, status models.DeliveryStatus, at time.Time) error
	SetPaymentStatus(id uint, status models.PaymentStatus) error
	ForceRefund(id uint) (shipped, changed bool, err error)
	InFlightIDsByProducts(productIDs []uint, limit, offset int) ([]uint, error)
	CountByStatus() (map[models.DeliveryStatus]int64, error)
	Revenue() (float64, error)
}

// ReviewStore is the product-review boundary. Delete removes the row
// outright so the buyer can review the product again.
type ReviewStore interface {
	Create(review *models.Review) error
	FindByID(id uint) (models.Review, error)
	ByProduct(productID uint) ([]models.Review, error)
	Exists(userID, productID uint) (bool, error)
	Delete(id uint) error
	AverageRating(productID uint) (float64, error)
}

// ReportStore is the report-aggregation boundary.
type ReportStore interface {
	Create(report *models.Report) error
	FindByID(id uint) (models.Report, error)
	ByReportedUser(userID uint) ([]models.Report, error)
	Unresolved() ([]models.Report, error)
	Resolve(id uint, notes string) error
	DistinctReporterIDs(reportedUserID uint) ([]uint, error)
}
