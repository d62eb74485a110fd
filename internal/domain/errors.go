package domain

import "errors"

// Domain errors
var (
	// Session errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("operation not permitted for this role")

	// User errors
	ErrInvalidUser         = errors.New("invalid user")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// Slot errors
	ErrSlotNotFound        = errors.New("parking slot not found")
	ErrSlotInactive        = errors.New("parking slot is not active")
	ErrInvalidSlot         = errors.New("invalid parking slot")
	ErrOccupancyOutOfRange = errors.New("occupancy must be between 0 and capacity")

	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrInvalidDuration          = errors.New("duration must be positive")
	ErrStartInPast              = errors.New("start time is in the past")
	ErrInvalidBookingStatus     = errors.New("invalid booking status")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrInvalidPaymentStatus     = errors.New("invalid payment status")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")

	// Earning errors
	ErrAdNotFound             = errors.New("ad not found")
	ErrAdInactive             = errors.New("ad is not active")
	ErrNotActivated           = errors.New("account is not activated")
	ErrAlreadyActivated       = errors.New("account is already activated")
	ErrWithdrawalNotFound     = errors.New("withdrawal request not found")
	ErrWithdrawalProcessed    = errors.New("withdrawal request already processed")
	ErrBelowMinimumWithdrawal = errors.New("amount is below the minimum withdrawal")
	ErrMissingPaymentDetails  = errors.New("payment method and account details are required")
)
