package dto

import (
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

// CreateBookingRequest represents a request to book a slot
type CreateBookingRequest struct {
	SlotID    string    `json:"slotId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	Duration  float64   `json:"duration" binding:"required,gt=0"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest records a payment outcome
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// BookingView is a booking with the name of its slot. SlotName is blank
// when the slot no longer exists.
type BookingView struct {
	domain.Booking
	SlotName string `json:"slotName"`
}
