package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

// OrderController serves buyer-facing checkout and order history.
type OrderController struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

type placeOrderRequest struct {
	PaymentMethod   string        `json:"payment_method" validate:"required,in=cash|mobile_money"`
	DeliveryAddress string        `json:"delivery_address" validate:"required,min=5,max=500"`
	DeliveryTown    string        `json:"delivery_town" validate:"nullable,max=120"`
	DeliveryCounty  string        `json:"delivery_county" validate:"nullable,max=120"`
	DeliveryFee     float64       `json:"delivery_fee" validate:"gte=0"`
	Geolocation     *services.Geo `json:"geolocation" validate:"nullable"`
}

// Store places an order from the authenticated user's cart.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var body placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.PlaceOrder(actor(r).ID, services.PlaceOrderInput{
		PaymentMethod:   body.PaymentMethod,
		DeliveryAddress: body.DeliveryAddress,
		DeliveryTown:    body.DeliveryTown,
		DeliveryCounty:  body.DeliveryCounty,
		DeliveryFee:     body.DeliveryFee,
		Geolocation:     body.Geolocation,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, order)
}

// Index returns the authenticated buyer's order history.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ForBuyer(actor(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, orders)
}

// Show returns one order, scoped to buyer, courier or admin.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.Get(actor(r), uintParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, order)
}
