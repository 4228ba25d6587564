package transaction

import "errors"

var (
	// -- Validation & Input --
	ErrMissingFields   = errors.New("all fields are required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// -- Resource State --
	ErrProductSold       = errors.New("product already sold")
	ErrInsufficientStock = errors.New("insufficient product stock")
)
