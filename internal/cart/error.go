package cart

import "errors"

var (
	ErrItemNotFound      = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductSold       = errors.New("product is already sold")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrMissingFields     = errors.New("user id and product id are required")
)
