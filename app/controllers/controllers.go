// Package controllers holds the thin HTTP layer. Controllers decode and
// validate input, call a service and translate its result onto the
// JSON envelope. No business rules live here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/middleware"
	"github.com/shashiranjanraj/sokoni/pkg/response"
)

// respondErr maps domain errors onto HTTP statuses: validation to 422,
// conflicts to 409, missing records to 404, authorization to 403.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)

	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrSelfReport),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrEmptyReview):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrCannotAddOwnProduct),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderTerminal),
		errors.Is(err, services.ErrAlreadySuspended),
		errors.Is(err, services.ErrNotSuspended),
		errors.Is(err, services.ErrUserBanned),
		errors.Is(err, services.ErrAccountSuspended),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrCannotReviewOwn):
		response.Conflict(w, err.Error())

	case errors.Is(err, services.ErrNotAuthorized):
		response.Forbidden(w)

	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w)

	default:
		response.Error(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// actor builds the service-layer actor from the authenticated claims.
func actor(r *http.Request) services.Actor {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		return services.Actor{}
	}
	return services.Actor{ID: claims.UserID, Role: claims.Role}
}

// uintParam reads a positive integer URL parameter, 0 when malformed.
func uintParam(r *http.Request, name string) uint {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}
