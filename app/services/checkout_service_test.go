package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/event"
)

type checkoutFixture struct {
	users    *fakeUserStore
	products *fakeProductStore
	carts    *fakeCartStore
	orders   *fakeOrderStore
	service  *services.CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	buyer := &models.User{Model: gormModel(1), Name: "Buyer", Email: "buyer@example.com", Role: models.RoleBuyer}
	seller := &models.User{Model: gormModel(2), Name: "Seller", Email: "seller@example.com", Role: models.RoleSeller}

	users := newFakeUserStore(buyer, seller)
	products := newFakeProductStore(
		&models.Product{Model: gormModel(10), SellerID: 2, Name: "Product A", Price: 100, Quantity: 10, IsActive: true},
		&models.Product{Model: gormModel(11), SellerID: 2, Name: "Product B", Price: 50, Quantity: 5, IsActive: true},
	)
	carts := newFakeCartStore()
	orders := newFakeOrderStore()

	return &checkoutFixture{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		service:  services.NewCheckoutService(users, products, carts, orders),
	}
}

func TestAddToCart_MergesLines(t *testing.T) {
	f := newCheckoutFixture()

	require.NoError(t, f.service.AddToCart(1, 10, 2))
	require.NoError(t, f.service.AddToCart(1, 10, 3))

	items, _, err := f.service.Cart(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCart_Rejections(t *testing.T) {
	f := newCheckoutFixture()

	assert.ErrorIs(t, f.service.AddToCart(1, 10, 0), services.ErrInvalidQuantity)
	assert.ErrorIs(t, f.service.AddToCart(1, 999, 1), services.ErrNotFound)

	// Sellers cannot buy their own products.
	assert.ErrorIs(t, f.service.AddToCart(2, 10, 1), services.ErrCannotAddOwnProduct)

	// Inactive products cannot be added.
	p, _ := f.products.FindByID(10)
	p.IsActive = false
	require.NoError(t, f.products.Update(&p))
	assert.ErrorIs(t, f.service.AddToCart(1, 10, 1), services.ErrProductUnavailable)

	// Merged quantity may not exceed stock.
	assert.ErrorIs(t, f.service.AddToCart(1, 11, 6), services.ErrInsufficientStock)
	require.NoError(t, f.service.AddToCart(1, 11, 3))
	assert.ErrorIs(t, f.service.AddToCart(1, 11, 3), services.ErrInsufficientStock)
}

func TestAddToCart_SuspendedBuyer(t *testing.T) {
	f := newCheckoutFixture()
	u, _ := f.users.FindByID(1)
	u.IsSuspended = true
	require.NoError(t, f.users.Create(&u))

	assert.ErrorIs(t, f.service.AddToCart(1, 10, 1), services.ErrAccountSuspended)
}

func TestPlaceOrder_ComputesTotalAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	defer event.Flush()

	var placed []events.OrderPlacedPayload
	event.Listen(events.OrderPlaced, func(payload interface{}) {
		placed = append(placed, payload.(events.OrderPlacedPayload))
	})

	// 2 units of Product A (100) and 1 unit of Product B (50).
	require.NoError(t, f.service.AddToCart(1, 10, 2))
	require.NoError(t, f.service.AddToCart(1, 11, 1))

	order, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
		DeliveryFee:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, 370.0, order.TotalAmount) // 2*100 + 1*50 + 20
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.DeliveryPreparing, order.DeliveryStatus)
	assert.NotEmpty(t, order.TrackingNumber)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 100.0, order.Items[0].UnitPrice)
	assert.Equal(t, 50.0, order.Items[1].UnitPrice)

	// Stock was reserved.
	assert.Equal(t, 8, f.products.stock(10))
	assert.Equal(t, 4, f.products.stock(11))

	// Cart is empty afterwards.
	items, _, err := f.service.Cart(1)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, placed, 1)
	assert.Equal(t, order.ID, placed[0].Order.ID)
	assert.Equal(t, []uint{2}, placed[0].SellerIDs)
}

func TestPlaceOrder_RetriesTransientCartClearFailure(t *testing.T) {
	f := newCheckoutFixture()
	defer event.Flush()

	require.NoError(t, f.service.AddToCart(1, 10, 1))

	// The first two Clear calls fail, the third succeeds.
	f.carts.clearFails = 2

	_, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, f.carts.clearCalls)

	// The retry emptied the cart, so the buyer cannot re-order the
	// same lines.
	items, _, err := f.service.Cart(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrder_MobileMoneyIsPaid(t *testing.T) {
	f := newCheckoutFixture()
	require.NoError(t, f.service.AddToCart(1, 10, 1))

	order, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodMobileMoney,
		DeliveryAddress: "12 Market Street",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
	})
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestPlaceOrder_InvalidPaymentMethod(t *testing.T) {
	f := newCheckoutFixture()
	require.NoError(t, f.service.AddToCart(1, 10, 1))

	_, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   "cheque",
		DeliveryAddress: "12 Market Street",
	})
	assert.ErrorIs(t, err, services.ErrInvalidPaymentMethod)
}

func TestPlaceOrder_InsufficientStockRollsBackReservations(t *testing.T) {
	f := newCheckoutFixture()

	require.NoError(t, f.service.AddToCart(1, 10, 2))
	require.NoError(t, f.service.AddToCart(1, 11, 3))

	// Stock for B drops to 1 after the cart was built.
	p, _ := f.products.FindByID(11)
	p.Quantity = 1
	require.NoError(t, f.products.Update(&p))

	_, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
	})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	// The reservation for A was rolled back, no order exists and the
	// cart is untouched.
	assert.Equal(t, 10, f.products.stock(10))
	assert.Equal(t, 1, f.products.stock(11))
	all, _ := f.orders.All()
	assert.Empty(t, all)
	items, _, _ := f.service.Cart(1)
	assert.Len(t, items, 2)
}

func TestPlaceOrder_ConcurrentReservationsNeverOversell(t *testing.T) {
	f := newCheckoutFixture()

	// Product with a single unit, two buyers racing for it.
	third := &models.User{Model: gormModel(3), Name: "Other", Email: "other@example.com", Role: models.RoleBuyer}
	require.NoError(t, f.users.Create(third))

	p, _ := f.products.FindByID(11)
	p.Quantity = 1
	require.NoError(t, f.products.Update(&p))

	require.NoError(t, f.service.AddToCart(1, 11, 1))
	require.NoError(t, f.service.AddToCart(3, 11, 1))

	in := services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = f.service.PlaceOrder(1, in) }()
	go func() { defer wg.Done(); _, errs[1] = f.service.PlaceOrder(3, in) }()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, services.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, f.products.stock(11))
}

func TestPlaceOrder_PriceChangesDoNotAffectExistingOrders(t *testing.T) {
	f := newCheckoutFixture()
	require.NoError(t, f.service.AddToCart(1, 10, 1))

	order, err := f.service.PlaceOrder(1, services.PlaceOrderInput{
		PaymentMethod:   models.PaymentMethodCash,
		DeliveryAddress: "12 Market Street",
	})
	require.NoError(t, err)

	p, _ := f.products.FindByID(10)
	p.Price = 999
	require.NoError(t, f.products.Update(&p))

	stored := f.orders.get(order.ID)
	assert.Equal(t, 100.0, stored.TotalAmount)
	assert.Equal(t, 100.0, stored.Items[0].UnitPrice)
}
