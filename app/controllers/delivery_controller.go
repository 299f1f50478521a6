package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

// DeliveryController serves the courier dashboard: the assigned order
// queue and delivery-status transitions.
type DeliveryController struct {
	orders *services.OrderService
}

func NewDeliveryController(orders *services.OrderService) *DeliveryController {
	return &DeliveryController{orders: orders}
}

// Queue returns the orders assigned to the authenticated courier.
// An optional ?status=pending|in_transit|completed narrows the list.
func (c *DeliveryController) Queue(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.Queue(actor(r).ID, r.URL.Query().Get("status"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, orders)
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,in=packed|in_transit|delivered"`
}

// Transition advances an order one delivery stage.
func (c *DeliveryController) Transition(w http.ResponseWriter, r *http.Request) {
	var body transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Transition(actor(r), uintParam(r, "id"), models.DeliveryStatus(body.Status))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, order)
}

// ConfirmPayment records a collected cash-on-delivery payment.
func (c *DeliveryController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if err := c.orders.ConfirmPayment(actor(r), uintParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Payment confirmed"})
}

// Location returns the buyer's drop-off coordinates for an order the
// courier is carrying.
func (c *DeliveryController) Location(w http.ResponseWriter, r *http.Request) {
	geo, err := c.orders.BuyerLocation(actor(r), uintParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if geo == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, geo)
}
