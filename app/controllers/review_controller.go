package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

type addReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content string `json:"content" validate:"required,max=500"`
}

// Index lists a product's reviews. Public.
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.service.ByProduct(uintParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, reviews)
}

// Store creates the authenticated user's review of a product.
func (c *ReviewController) Store(w http.ResponseWriter, r *http.Request) {
	var body addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.service.Add(actor(r).ID, uintParam(r, "id"), body.Rating, body.Content)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, review)
}

// Destroy deletes a review. Author, product seller or admin only.
func (c *ReviewController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(actor(r), uintParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, nil)
}
