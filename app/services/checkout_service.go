package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/crypt"
	"github.com/shashiranjanraj/sokoni/pkg/event"
	"github.com/shashiranjanraj/sokoni/pkg/logger"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
)

// CheckoutService owns the cart aggregate and order placement.
type CheckoutService struct {
	users    UserStore
	products ProductStore
	carts    CartStore
	orders   OrderStore
}

func NewCheckoutService(users UserStore, products ProductStore, carts CartStore, orders OrderStore) *CheckoutService {
	return &CheckoutService{users: users, products: products, carts: carts, orders: orders}
}

// AddToCart merges qty into the user's existing line for the product,
// or creates a new line. Stock is checked against the merged quantity
// here and again, atomically, at order placement.
func (s *CheckoutService) AddToCart(userID, productID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return notFoundOr(err)
	}
	if !user.CanTrade() {
		return ErrAccountSuspended
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return notFoundOr(err)
	}
	if !product.IsActive {
		return ErrProductUnavailable
	}
	if product.SellerID == userID {
		return ErrCannotAddOwnProduct
	}

	line, exists, err := s.carts.Find(userID, productID)
	if err != nil {
		return err
	}

	merged := qty
	if exists {
		merged += line.Quantity
	}
	if merged > product.Quantity {
		return ErrInsufficientStock
	}

	if exists {
		return s.carts.UpdateQuantity(line.ID, merged)
	}
	return s.carts.Create(&models.CartItem{UserID: userID, ProductID: productID, Quantity: qty})
}

// Cart returns the user's cart lines in insertion order plus the
// running subtotal at current prices.
func (s *CheckoutService) Cart(userID uint) ([]models.CartItem, float64, error) {
	items, err := s.carts.ItemsByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	var subtotal float64
	for i := range items {
		subtotal += items[i].LineTotal()
	}
	return items, subtotal, nil
}

// RemoveFromCart deletes a single line from the user's cart.
func (s *CheckoutService) RemoveFromCart(userID, productID uint) error {
	return s.carts.Delete(userID, productID)
}

// Geo is a buyer location captured at checkout.
type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceOrderInput carries everything checkout needs beyond the cart.
type PlaceOrderInput struct {
	PaymentMethod   string
	DeliveryAddress string
	DeliveryTown    string
	DeliveryCounty  string
	DeliveryFee     float64
	Geolocation     *Geo
}

// PlaceOrder converts the user's cart into an order. Every line is
// reserved against the inventory ledger before the order is created;
// if any line fails, the lines reserved so far are restored and no
// order exists. The cart is cleared only after the order is durably
// created.
func (s *CheckoutService) PlaceOrder(userID uint, in PlaceOrderInput) (models.Order, error) {
	var order models.Order

	user, err := s.users.FindByID(userID)
	if err != nil {
		return order, notFoundOr(err)
	}
	if !user.CanTrade() {
		metrics.CheckoutRejections.WithLabelValues("account_suspended").Inc()
		return order, ErrAccountSuspended
	}

	if in.PaymentMethod != models.PaymentMethodCash && in.PaymentMethod != models.PaymentMethodMobileMoney {
		return order, ErrInvalidPaymentMethod
	}
	if in.DeliveryFee < 0 {
		return order, ErrInvalidQuantity
	}

	lines, err := s.carts.ItemsByUser(userID)
	if err != nil {
		return order, err
	}
	if len(lines) == 0 {
		metrics.CheckoutRejections.WithLabelValues("empty_cart").Inc()
		return order, ErrEmptyCart
	}

	// Reserve stock line by line. reserved tracks what must be
	// restored if a later line fails.
	type reservation struct {
		productID uint
		qty       int
	}
	var reserved []reservation

	rollback := func() {
		for _, r := range reserved {
			if err := s.products.Restore(r.productID, r.qty); err != nil {
				logger.Error("checkout rollback: restore failed",
					"product_id", r.productID, "qty", r.qty, "error", err)
			}
		}
	}

	now := time.Now()
	items := make([]models.OrderItem, 0, len(lines))
	total := in.DeliveryFee
	sellerSet := make(map[uint]bool)

	for _, line := range lines {
		product, err := s.products.FindByID(line.ProductID)
		if err != nil {
			rollback()
			return order, notFoundOr(err)
		}
		if !product.IsActive {
			rollback()
			metrics.CheckoutRejections.WithLabelValues("product_unavailable").Inc()
			return order, ErrProductUnavailable
		}

		ok, err := s.products.Reserve(line.ProductID, line.Quantity)
		if err != nil {
			rollback()
			return order, err
		}
		if !ok {
			rollback()
			metrics.CheckoutRejections.WithLabelValues("insufficient_stock").Inc()
			return order, ErrInsufficientStock
		}
		reserved = append(reserved, reservation{line.ProductID, line.Quantity})

		// Unit price is copied here; later price edits never touch
		// this order.
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		total += float64(line.Quantity) * product.Price
		sellerSet[product.SellerID] = true
	}

	payment := models.PaymentPending
	if in.PaymentMethod == models.PaymentMethodMobileMoney {
		payment = models.PaymentPaid
	}

	order = models.Order{
		BuyerID:         userID,
		TotalAmount:     total,
		PaymentStatus:   payment,
		PaymentMethod:   in.PaymentMethod,
		DeliveryStatus:  models.DeliveryPreparing,
		DeliveryFee:     in.DeliveryFee,
		TrackingNumber:  models.NewTrackingNumber(now),
		DeliveryAddress: in.DeliveryAddress,
		DeliveryTown:    in.DeliveryTown,
		DeliveryCounty:  in.DeliveryCounty,
		Items:           items,
	}

	if in.Geolocation != nil {
		enc, err := crypt.EncryptJSON(in.Geolocation)
		if err != nil {
			logger.Warn("checkout: geolocation encryption failed, dropping", "error", err)
		} else {
			order.Geolocation = enc
		}
	}

	if err := s.orders.Create(&order); err != nil {
		rollback()
		return models.Order{}, err
	}

	// The order exists; clearing the cart after creation means a
	// failed checkout never loses the cart. A stale cart would let the
	// buyer re-order the same lines, so transient failures get a few
	// retries before the error is only logged.
	if err := s.clearCart(userID); err != nil {
		logger.Error("checkout: cart clear failed after order creation",
			"order_id", order.ID, "user_id", userID, "error", err)
	}

	sellerIDs := make([]uint, 0, len(sellerSet))
	for id := range sellerSet {
		sellerIDs = append(sellerIDs, id)
	}

	metrics.OrdersPlaced.WithLabelValues(in.PaymentMethod).Inc()
	event.Fire(events.OrderPlaced, events.OrderPlacedPayload{Order: order, SellerIDs: sellerIDs})

	return order, nil
}

const (
	cartClearAttempts = 3
	cartClearBackoff  = 50 * time.Millisecond
)

// clearCart empties the user's cart, retrying transient failures.
func (s *CheckoutService) clearCart(userID uint) error {
	var err error
	for attempt := 0; attempt < cartClearAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(cartClearBackoff)
		}
		if err = s.carts.Clear(userID); err == nil {
			return nil
		}
	}
	return err
}

// notFoundOr maps the ORM's record-not-found onto the domain error and
// passes everything else through.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
