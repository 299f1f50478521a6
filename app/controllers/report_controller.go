package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type ReportController struct {
	service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{service: service}
}

type fileReportRequest struct {
	ReportedUserID uint   `json:"reported_user_id" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required,min=3,max=255"`
	Description    string `json:"description" validate:"nullable,max=5000"`
}

// Store files a report against another user.
func (c *ReportController) Store(w http.ResponseWriter, r *http.Request) {
	var body fileReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	report, err := c.service.File(actor(r).ID, body.ReportedUserID, body.Reason, body.Description)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, report)
}
