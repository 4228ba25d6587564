package user

import "errors"

var (
	ErrEmailExists   = errors.New("email already registered")
	ErrEmailNotFound = errors.New("email not registered")
	ErrWrongPassword = errors.New("wrong password")
	ErrUserNotFound  = errors.New("user not found")

	// -- Validation & Input --
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFields      = errors.New("email, password and name are required")
	ErrAddressTooShort    = errors.New("address too short (minimum 10 characters)")
	ErrLocationTooShort   = errors.New("location name too short")
	ErrNoUpdateFields     = errors.New("no fields to update")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
