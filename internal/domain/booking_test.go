package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		want   bool
	}{
		{"pending is valid", BookingStatusPending, true},
		{"confirmed is valid", BookingStatusConfirmed, true},
		{"cancelled is valid", BookingStatusCancelled, true},
		{"completed is valid", BookingStatusCompleted, true},
		{"unknown is invalid", BookingStatus("reserved"), false},
		{"empty is invalid", BookingStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("BookingStatus.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slot := &ParkingSlot{ID: "s1", Capacity: 10, HourlyRate: 150, IsActive: true}

	t.Run("prices duration times rate", func(t *testing.T) {
		b, err := NewBooking("u1", slot, now.Add(time.Hour), 2.5, now)
		require.NoError(t, err)

		assert.Equal(t, 375.0, b.TotalCost)
		assert.Equal(t, now.Add(3*time.Hour+30*time.Minute), b.EndTime)
		assert.Equal(t, BookingStatusPending, b.Status)
		assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
		assert.Equal(t, "s1", b.SlotID)
	})

	t.Run("cost is not recomputed when rate changes", func(t *testing.T) {
		s := *slot
		b, err := NewBooking("u1", &s, now, 1, now)
		require.NoError(t, err)
		s.HourlyRate = 999
		assert.Equal(t, 150.0, b.TotalCost)
	})

	tests := []struct {
		name    string
		userID  string
		slot    *ParkingSlot
		start   time.Time
		hours   float64
		wantErr error
	}{
		{"missing user", "", slot, now, 1, ErrNotAuthenticated},
		{"missing slot", "u1", nil, now, 1, ErrSlotNotFound},
		{"inactive slot", "u1", &ParkingSlot{ID: "s2"}, now, 1, ErrSlotInactive},
		{"zero hours", "u1", slot, now, 0, ErrInvalidDuration},
		{"negative hours", "u1", slot, now, -1, ErrInvalidDuration},
		{"start in past", "u1", slot, now.Add(-time.Minute), 1, ErrStartInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBooking(tt.userID, tt.slot, tt.start, tt.hours, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBooking_TransitionTo(t *testing.T) {
	now := time.Now()
	b := &Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}

	require.NoError(t, b.TransitionTo(BookingStatusConfirmed, now))
	assert.Equal(t, now, b.UpdatedAt)

	assert.ErrorIs(t, b.TransitionTo(BookingStatusPending, now), ErrInvalidStatusTransition)
	assert.ErrorIs(t, b.TransitionTo(BookingStatus("lost"), now), ErrInvalidBookingStatus)

	require.NoError(t, b.TransitionTo(BookingStatusCompleted, now))
	assert.ErrorIs(t, b.TransitionTo(BookingStatusCancelled, now), ErrInvalidStatusTransition)

	// payment evolves independently of status
	require.NoError(t, b.SetPaymentStatus(PaymentStatusFailed, now))
	require.NoError(t, b.SetPaymentStatus(PaymentStatusPending, now))
	require.NoError(t, b.SetPaymentStatus(PaymentStatusSuccess, now))
	assert.ErrorIs(t, b.SetPaymentStatus(PaymentStatusFailed, now), ErrInvalidPaymentTransition)
	assert.ErrorIs(t, b.SetPaymentStatus(PaymentStatus("refunded"), now), ErrInvalidPaymentStatus)
	assert.Equal(t, BookingStatusCompleted, b.Status)
}
