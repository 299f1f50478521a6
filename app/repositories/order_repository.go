package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists an order together with its items.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindByID returns an order with its items and their products preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&order, id).Error
	return order, err
}

// ByBuyer returns a buyer's orders, newest first.
func (r *OrderRepository) ByBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("buyer_id = ?", buyerID).
		Order("id desc").Find(&orders).Error
	return orders, err
}

// ByDeliveryService returns orders assigned to a delivery account,
// oldest first so the work queue reads top down. With statuses given,
// only orders in one of those delivery statuses are returned.
func (r *OrderRepository) ByDeliveryService(deliveryID uint, statuses ...models.DeliveryStatus) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Preload("Items").Where("delivery_service_id = ?", deliveryID)
	if len(statuses) > 0 {
		q = q.Where("delivery_status IN ?", statuses)
	}
	err := q.Order("id").Find(&orders).Error
	return orders, err
}

// All returns every order, newest first.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("id desc").Find(&orders).Error
	return orders, err
}

// AssignDelivery attaches a delivery account to an order.
func (r *OrderRepository) AssignDelivery(id, deliveryID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		UpdateColumn("delivery_service_id", deliveryID).Error
}

// SetDeliveryStatus updates the delivery status and stamps the matching
// stage timestamp.
func (r *OrderRepository) SetDeliveryStatus(id uint, status models.DeliveryStatus, at time.Time) error {
	updates := map[string]interface{}{"delivery_status": status}
	switch status {
	case models.DeliveryPacked:
		updates["packed_at"] = at
	case models.DeliveryInTransit:
		updates["shipped_at"] = at
	case models.DeliveryDelivered:
		updates["delivered_at"] = at
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// SetPaymentStatus updates the payment status.
func (r *OrderRepository) SetPaymentStatus(id uint, status models.PaymentStatus) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		UpdateColumn("payment_status", status).Error
}

// ForceRefund moves an order to the refunded and cancelled terminal
// pair. The in-flight guard is repeated in the WHERE clause so a
// concurrent delivery or second cascade cannot double-refund. The
// write runs in two guarded steps, unshipped statuses first, so the
// returned shipped flag reflects the delivery status the order held at
// the moment it was refunded, not at some earlier read.
func (r *OrderRepository) ForceRefund(id uint) (shipped, changed bool, err error) {
	refund := map[string]interface{}{
		"payment_status":  models.PaymentRefunded,
		"delivery_status": models.DeliveryCancelled,
	}
	inFlightPayment := []models.PaymentStatus{models.PaymentPending, models.PaymentPaid}

	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Where("payment_status IN ?", inFlightPayment).
		Where("delivery_status IN ?", []models.DeliveryStatus{models.DeliveryPreparing, models.DeliveryPacked}).
		Updates(refund)
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, true, nil
	}

	res = r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Where("payment_status IN ?", inFlightPayment).
		Where("delivery_status = ?", models.DeliveryInTransit).
		Updates(refund)
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, true, nil
	}
	return false, false, nil
}

// InFlightIDsByProducts returns ids of in-flight orders containing at
// least one of the given products. Results are paged so a cascade over
// a large seller proceeds in bounded batches.
func (r *OrderRepository) InFlightIDsByProducts(productIDs []uint, limit, offset int) ([]uint, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Order{}).
		Distinct("orders.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.product_id IN ?", productIDs).
		Where("orders.payment_status IN ?", []models.PaymentStatus{models.PaymentPending, models.PaymentPaid}).
		Where("orders.delivery_status IN ?", []models.DeliveryStatus{models.DeliveryPreparing, models.DeliveryPacked, models.DeliveryInTransit}).
		Order("orders.id").
		Limit(limit).Offset(offset).
		Pluck("orders.id", &ids).Error
	return ids, err
}

// CountByStatus returns order counts grouped by delivery status, for
// the admin dashboard.
func (r *OrderRepository) CountByStatus() (map[models.DeliveryStatus]int64, error) {
	type row struct {
		DeliveryStatus models.DeliveryStatus
		N              int64
	}
	var rows []row
	err := r.db.Model(&models.Order{}).
		Select("delivery_status, count(*) as n").
		Group("delivery_status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.DeliveryStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.DeliveryStatus] = rw.N
	}
	return counts, nil
}

// Revenue sums the total amount of all orders that were not refunded.
func (r *OrderRepository) Revenue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("payment_status <> ?", models.PaymentRefunded).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}
