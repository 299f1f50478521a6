package services

import "errors"

// Domain errors. Controllers map these onto HTTP statuses: validation
// errors to 422, conflict errors to 409, not-found to 404 and
// authorization failures to 403.
var (
	// ErrNotFound signals an unknown user, product, order or report id.
	ErrNotFound = errors.New("record not found")

	// Validation errors. No state is mutated when these are returned.
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrSelfReport           = errors.New("cannot report yourself")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrEmptyReview          = errors.New("review content is required")

	// Conflict errors. The request was well formed but the current
	// state forbids it.
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrCannotAddOwnProduct = errors.New("cannot add your own product to the cart")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrOrderTerminal       = errors.New("order is in a terminal state")
	ErrAlreadySuspended    = errors.New("user is already suspended")
	ErrNotSuspended        = errors.New("user is not suspended")
	ErrUserBanned          = errors.New("user is banned")
	ErrAccountSuspended    = errors.New("account is suspended")
	ErrAlreadyReviewed     = errors.New("product already reviewed")
	ErrCannotReviewOwn     = errors.New("cannot review your own product")

	// ErrNotAuthorized signals that the acting account may not perform
	// the operation on this resource.
	ErrNotAuthorized = errors.New("not authorized for this operation")
)
