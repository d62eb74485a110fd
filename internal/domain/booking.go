package domain

import (
	"math"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// IsValid checks if the booking status is valid
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsActive reports pending or confirmed
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// IsTerminal reports completed or cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether s -> next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusSuccess, PaymentStatusFailed},
	PaymentStatusFailed:  {PaymentStatusPending},
}

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> next is allowed
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a reservation of a parking slot
type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	SlotID        string        `json:"slotId"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	Duration      float64       `json:"duration"` // hours
	TotalCost     float64       `json:"totalCost"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// GetID implements repository.Entity
func (b Booking) GetID() string { return b.ID }

// NewBooking prices a booking at creation. The cost is not recomputed later
// even if the slot rate changes.
func NewBooking(userID string, slot *ParkingSlot, start time.Time, hours float64, now time.Time) (*Booking, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if !slot.IsActive {
		return nil, ErrSlotInactive
	}
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, ErrInvalidDuration
	}
	if start.Before(now) {
		return nil, ErrStartInPast
	}

	return &Booking{
		UserID:        userID,
		SlotID:        slot.ID,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(hours * float64(time.Hour))),
		Duration:      hours,
		TotalCost:     hours * slot.HourlyRate,
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TransitionTo moves the booking through its state machine
func (b *Booking) TransitionTo(next BookingStatus, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidBookingStatus
	}
	if !b.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	b.Status = next
	b.UpdatedAt = now
	return nil
}

// SetPaymentStatus moves the payment state, independent of Status
func (b *Booking) SetPaymentStatus(next PaymentStatus, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidPaymentStatus
	}
	if !b.PaymentStatus.CanTransitionTo(next) {
		return ErrInvalidPaymentTransition
	}
	b.PaymentStatus = next
	b.UpdatedAt = now
	return nil
}
