package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrMissingRequiredFields = errors.New("product name, user ID and price are required")
	ErrFrontPhotoRequired    = errors.New("front photo is required")
	ErrInvalidPhotoPayload   = errors.New("photo payload is not valid base64")
)
