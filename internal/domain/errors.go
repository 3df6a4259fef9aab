package domain

import "errors"

// Typed errors returned by the service layer. Handlers map these onto
// HTTP statuses; anything else is an internal error.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrQuantityExceedsOwned = errors.New("quantity exceeds owned")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrValidation           = errors.New("invalid data")
)
