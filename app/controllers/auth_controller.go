package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,in=buyer|seller|delivery"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(body.Email, body.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
