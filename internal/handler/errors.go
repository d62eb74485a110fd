package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// handleError maps domain errors to HTTP responses
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", "")
	case errors.Is(err, domain.ErrNotAuthenticated):
		response.Unauthorized(c, "Not logged in")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, "You are not allowed to do this")

	case errors.Is(err, domain.ErrSlotNotFound):
		response.NotFound(c, "Parking slot not found")
	case errors.Is(err, domain.ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, domain.ErrAdNotFound):
		response.NotFound(c, "Ad not found")
	case errors.Is(err, domain.ErrWithdrawalNotFound):
		response.NotFound(c, "Withdrawal request not found")

	case errors.Is(err, domain.ErrSlotInactive):
		response.Conflict(c, "SLOT_INACTIVE", "Parking slot is not accepting bookings")
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		response.Conflict(c, "INVALID_TRANSITION", "Booking cannot move to that status")
	case errors.Is(err, domain.ErrInvalidPaymentTransition):
		response.Conflict(c, "INVALID_PAYMENT_TRANSITION", "Payment cannot move to that status")
	case errors.Is(err, domain.ErrAdInactive):
		response.Conflict(c, "AD_INACTIVE", "Ad is no longer available")
	case errors.Is(err, domain.ErrAlreadyActivated):
		response.Conflict(c, "ALREADY_ACTIVATED", "Account is already activated")
	case errors.Is(err, domain.ErrWithdrawalProcessed):
		response.Conflict(c, "ALREADY_PROCESSED", "Withdrawal request was already processed")
	case errors.Is(err, domain.ErrNotActivated):
		response.Error(c, http.StatusForbidden, "NOT_ACTIVATED", "Activate your account to earn from ads", "")
	case errors.Is(err, domain.ErrInsufficientBalance):
		response.Error(c, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", "Wallet balance is too low", "")
	case errors.Is(err, domain.ErrBelowMinimumWithdrawal):
		response.Error(c, http.StatusUnprocessableEntity, "BELOW_MINIMUM", "Amount is below the minimum withdrawal", "")

	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidUser),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrOccupancyOutOfRange),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrStartInPast),
		errors.Is(err, domain.ErrInvalidBookingStatus),
		errors.Is(err, domain.ErrInvalidPaymentStatus),
		errors.Is(err, domain.ErrMissingPaymentDetails):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")

	default:
		logger.Get().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, err)
	}
}
