package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index returns the active marketplace catalogue.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Catalogue()
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, products)
}

// Show returns one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(uintParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, product)
}

// Mine returns the authenticated seller's own listings.
func (c *ProductController) Mine(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Mine(actor(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, products)
}

type productRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category" validate:"nullable,max=100"`
	ImageURL    string  `json:"image_url" validate:"nullable,max=500"`
	IsActive    bool    `json:"is_active"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}

// Store creates a listing for the authenticated seller.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(actor(r).ID, body.input())
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, product)
}

// Update edits a listing the authenticated seller owns.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Update(actor(r).ID, uintParam(r, "id"), body.input())
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, product)
}
