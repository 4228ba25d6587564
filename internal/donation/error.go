package donation

import "errors"

var (
	ErrDonationNotFound = errors.New("donation not found")

	// -- Validation & Input --
	ErrMissingFields       = errors.New("required campaign fields missing")
	ErrPhotoRequired       = errors.New("photo is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrEventDateInPast     = errors.New("event date must be in the future")
	ErrDeadlineAfterEvent  = errors.New("deadline must be before the event date")
	ErrDeadlineInPast      = errors.New("deadline must not be in the past")

	// -- Authorization & State --
	ErrNotCreator             = errors.New("only the campaign creator may submit a report")
	ErrReportAlreadySubmitted = errors.New("report already submitted")
)
