package httpapi

import (
	"errors"
	"net/http"

	"rewear-be/internal/cart"
	"rewear-be/internal/donation"
	"rewear-be/internal/grading"
	"rewear-be/internal/product"
	"rewear-be/internal/transaction"
	"rewear-be/internal/user"

	"github.com/gin-gonic/gin"
)

// respond writes the success envelope with the given payload merged in.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// failFor maps a domain error onto its HTTP status and writes the error
// envelope.
func failFor(c *gin.Context, err error) {
	fail(c, statusFor(err), err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrWrongPassword):
		return http.StatusUnauthorized

	case errors.Is(err, donation.ErrNotCreator):
		return http.StatusForbidden

	case errors.Is(err, user.ErrEmailNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, donation.ErrDonationNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrMissingCredentials),
		errors.Is(err, user.ErrMissingFields),
		errors.Is(err, user.ErrAddressTooShort),
		errors.Is(err, user.ErrLocationTooShort),
		errors.Is(err, user.ErrNoUpdateFields),
		errors.Is(err, product.ErrMissingRequiredFields),
		errors.Is(err, product.ErrFrontPhotoRequired),
		errors.Is(err, product.ErrInvalidPhotoPayload),
		errors.Is(err, transaction.ErrMissingFields),
		errors.Is(err, transaction.ErrInvalidQuantity),
		errors.Is(err, transaction.ErrProductSold),
		errors.Is(err, transaction.ErrInsufficientStock),
		errors.Is(err, cart.ErrMissingFields),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductSold),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, donation.ErrMissingFields),
		errors.Is(err, donation.ErrPhotoRequired),
		errors.Is(err, donation.ErrInvalidQuantity),
		errors.Is(err, donation.ErrEventDateInPast),
		errors.Is(err, donation.ErrDeadlineAfterEvent),
		errors.Is(err, donation.ErrDeadlineInPast),
		errors.Is(err, donation.ErrReportAlreadySubmitted),
		errors.Is(err, grading.ErrNoPhotos):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
