package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

// AdminController serves the admin dashboard, account listings and the
// moderation actions.
type AdminController struct {
	admin      *services.AdminService
	moderation *services.ModerationService
	orders     *services.OrderService
	reports    *services.ReportService
}

func NewAdminController(admin *services.AdminService, moderation *services.ModerationService, orders *services.OrderService, reports *services.ReportService) *AdminController {
	return &AdminController{admin: admin, moderation: moderation, orders: orders, reports: reports}
}

// Dashboard returns the aggregate admin view.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := c.admin.Dashboard(actor(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, d)
}

// Users lists accounts, optionally filtered with ?role=.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.admin.Users(actor(r), r.URL.Query().Get("role"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, users)
}

// Flagged lists users at or above the report threshold.
func (c *AdminController) Flagged(w http.ResponseWriter, r *http.Request) {
	users, err := c.admin.FlaggedUsers(actor(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, users)
}

// Orders lists every order.
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.admin.Orders(actor(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, orders)
}

type assignDeliveryRequest struct {
	DeliveryID uint `json:"delivery_id" validate:"required,gt=0"`
}

// AssignDelivery attaches a courier to an order.
func (c *AdminController) AssignDelivery(w http.ResponseWriter, r *http.Request) {
	var body assignDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.AssignDelivery(actor(r), uintParam(r, "id"), body.DeliveryID); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Delivery service assigned"})
}

type moderationRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// Suspend suspends a user and hides their listings.
func (c *AdminController) Suspend(w http.ResponseWriter, r *http.Request) {
	var body moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.moderation.Suspend(actor(r), uintParam(r, "id"), body.Reason); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "User suspended"})
}

// Unsuspend lifts a suspension and restores the user's listings.
func (c *AdminController) Unsuspend(w http.ResponseWriter, r *http.Request) {
	if err := c.moderation.Unsuspend(actor(r), uintParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "User unsuspended"})
}

// Ban permanently bans a user and runs the refund cascade.
func (c *AdminController) Ban(w http.ResponseWriter, r *http.Request) {
	var body moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.moderation.Ban(actor(r), uintParam(r, "id"), body.Reason); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "User banned"})
}

// Reports lists all unresolved reports.
func (c *AdminController) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := c.reports.Unresolved(actor(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, reports)
}

// ReportsAgainst lists every report against one user.
func (c *AdminController) ReportsAgainst(w http.ResponseWriter, r *http.Request) {
	reports, err := c.reports.Against(actor(r), uintParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, reports)
}

type resolveReportRequest struct {
	Notes string `json:"notes" validate:"nullable,max=2000"`
}

// ResolveReport closes a report with admin notes.
func (c *AdminController) ResolveReport(w http.ResponseWriter, r *http.Request) {
	var body resolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := c.reports.Resolve(actor(r), uintParam(r, "id"), body.Notes); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Report resolved"})
}
