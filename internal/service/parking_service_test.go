package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

var (
	testAdmin      = &domain.User{ID: "1", Email: "admin@urbanslot.com", Role: domain.RoleAdmin}
	testOtherAdmin = &domain.User{ID: "9", Email: "other@urbanslot.com", Role: domain.RoleAdmin}
	testDriver     = &domain.User{ID: "2", Email: "user@urbanslot.com", Role: domain.RoleUser}
)

func newParkingServices(t *testing.T) (*fixture, SlotService, BookingService) {
	f := newFixture(t, repository.VariantParking)
	slots := NewSlotService(f.repos.Slots, testClock, logger.NewNop())
	bookings := NewBookingService(f.repos.Bookings, f.repos.Slots, testClock, logger.NewNop())
	return f, slots, bookings
}

func TestSlotService_Create(t *testing.T) {
	ctx := context.Background()
	_, slots, _ := newParkingServices(t)

	req := &dto.CreateSlotRequest{Name: " Harbour Lot ", Address: "1 Quay St", Capacity: 10, HourlyRate: 4}

	_, err := slots.Create(ctx, testDriver, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	created, err := slots.Create(ctx, testAdmin, req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Harbour Lot", created.Name)
	assert.Equal(t, "1", created.AdminID)
	assert.True(t, created.IsActive)
	assert.NotNil(t, created.Amenities)

	assert.Len(t, slots.List(ctx), 4)
	assert.Len(t, slots.ListOwned(ctx, "1"), 4)
	assert.Empty(t, slots.ListOwned(ctx, "9"))

	_, err = slots.Create(ctx, testAdmin, &dto.CreateSlotRequest{Name: "  ", Address: "x", Capacity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestSlotService_Update(t *testing.T) {
	ctx := context.Background()
	_, slots, _ := newParkingServices(t)

	updated, err := slots.SetOccupancy(ctx, testAdmin, "1", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.CurrentOccupancy)

	_, err = slots.SetOccupancy(ctx, testAdmin, "1", 51)
	assert.ErrorIs(t, err, domain.ErrOccupancyOutOfRange)

	_, err = slots.SetOccupancy(ctx, testOtherAdmin, "1", 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = slots.SetActive(ctx, testAdmin, "missing", false)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	closed, err := slots.SetActive(ctx, testAdmin, "2", false)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
}

func TestSlotService_Delete(t *testing.T) {
	ctx := context.Background()
	f, slots, _ := newParkingServices(t)
	require.NoError(t, f.repos.Slots.Save(ctx, slots.List(ctx)))
	before, err := f.store.Get(ctx, f.repos.Keys.Slots)
	require.NoError(t, err)

	assert.ErrorIs(t, slots.Delete(ctx, testAdmin, "missing"), domain.ErrSlotNotFound)
	assert.ErrorIs(t, slots.Delete(ctx, testOtherAdmin, "1"), domain.ErrForbidden)

	after, err := f.store.Get(ctx, f.repos.Keys.Slots)
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected deletes leave storage untouched")

	require.NoError(t, slots.Delete(ctx, testAdmin, "1"))
	_, err = slots.Get(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	_, slots, bookings := newParkingServices(t)

	view, err := bookings.Create(ctx, testDriver, &dto.CreateBookingRequest{
		SlotID: "1", StartTime: testNow.Add(time.Hour), Duration: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Downtown Plaza Parking", view.SlotName)
	assert.Equal(t, 15.0, view.TotalCost)
	assert.Equal(t, testNow.Add(4*time.Hour), view.EndTime)
	assert.Equal(t, domain.BookingStatusPending, view.Status)
	assert.Equal(t, domain.PaymentStatusPending, view.PaymentStatus)

	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		wantErr error
	}{
		{"unknown slot", dto.CreateBookingRequest{SlotID: "missing", StartTime: testNow.Add(time.Hour), Duration: 1}, domain.ErrSlotNotFound},
		{"zero duration", dto.CreateBookingRequest{SlotID: "1", StartTime: testNow.Add(time.Hour), Duration: 0}, domain.ErrInvalidDuration},
		{"start in past", dto.CreateBookingRequest{SlotID: "1", StartTime: testNow.Add(-time.Hour), Duration: 1}, domain.ErrStartInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bookings.Create(ctx, testDriver, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("inactive slot", func(t *testing.T) {
		_, err := slots.SetActive(ctx, testAdmin, "3", false)
		require.NoError(t, err)
		_, err = bookings.Create(ctx, testDriver, &dto.CreateBookingRequest{SlotID: "3", StartTime: testNow.Add(time.Hour), Duration: 1})
		assert.ErrorIs(t, err, domain.ErrSlotInactive)
	})

	assert.Len(t, bookings.ListForUser(ctx, "2"), 1)
}

func TestBookingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	_, _, bookings := newParkingServices(t)

	view, err := bookings.Create(ctx, testDriver, &dto.CreateBookingRequest{
		SlotID: "2", StartTime: testNow.Add(time.Hour), Duration: 2,
	})
	require.NoError(t, err)
	id := view.ID

	// the slot's admin may confirm, another admin may not
	_, err = bookings.Transition(ctx, testOtherAdmin, id, domain.BookingStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	confirmed, err := bookings.Transition(ctx, testAdmin, id, domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)

	_, err = bookings.Transition(ctx, testDriver, id, domain.BookingStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	paid, err := bookings.SetPaymentStatus(ctx, testDriver, id, domain.PaymentStatusSuccess)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, paid.PaymentStatus)

	_, err = bookings.SetPaymentStatus(ctx, testDriver, id, domain.PaymentStatusFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTransition)

	_, err = bookings.Transition(ctx, testDriver, "missing", domain.BookingStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_Delete(t *testing.T) {
	ctx := context.Background()
	f, _, bookings := newParkingServices(t)

	view, err := bookings.Create(ctx, testDriver, &dto.CreateBookingRequest{
		SlotID: "1", StartTime: testNow.Add(time.Hour), Duration: 1,
	})
	require.NoError(t, err)

	before, err := f.store.Get(ctx, f.repos.Keys.Bookings)
	require.NoError(t, err)

	assert.ErrorIs(t, bookings.Delete(ctx, testDriver, "missing"), domain.ErrBookingNotFound)
	stranger := &domain.User{ID: "7", Role: domain.RoleUser}
	assert.ErrorIs(t, bookings.Delete(ctx, stranger, view.ID), domain.ErrForbidden)

	after, err := f.store.Get(ctx, f.repos.Keys.Bookings)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.NoError(t, bookings.Delete(ctx, testDriver, view.ID))
	assert.Empty(t, bookings.ListForUser(ctx, "2"))
}

func TestBookingService_ListKeepsOrphans(t *testing.T) {
	ctx := context.Background()
	f, _, bookings := newParkingServices(t)

	_, err := f.repos.Bookings.Add(ctx, domain.Booking{
		UserID: "2", SlotID: "gone", StartTime: testNow, EndTime: testNow.Add(time.Hour),
		Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	views := bookings.ListForUser(ctx, "2")
	require.Len(t, views, 1)
	assert.Empty(t, views[0].SlotName)
}
