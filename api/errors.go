package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skywings/skybooking/internal/domain"
)

// trackingNotFoundMessage is deliberately vague: a typo and a missing
// booking look the same to the caller.
const trackingNotFoundMessage = "No booking found with this tracking code. Please check and try again."

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSeatUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHoldExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHoldNotFound), errors.Is(err, domain.ErrDraftNotFound),
		errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": trackingNotFoundMessage})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMalformedCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
