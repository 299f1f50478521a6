package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type CartController struct {
	service *services.CheckoutService
}

func NewCartController(service *services.CheckoutService) *CartController {
	return &CartController{service: service}
}

// Index returns the authenticated user's cart and subtotal.
func (c *CartController) Index(w http.ResponseWriter, r *http.Request) {
	items, subtotal, err := c.service.Cart(actor(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"items":    items,
		"subtotal": subtotal,
	})
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// Store adds a product to the cart, merging with any existing line.
func (c *CartController) Store(w http.ResponseWriter, r *http.Request) {
	var body addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.AddToCart(actor(r).ID, body.ProductID, body.Quantity); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Added to cart"})
}

// Destroy removes one product line from the cart.
func (c *CartController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.RemoveFromCart(actor(r).ID, uintParam(r, "product_id")); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Removed from cart"})
}
