package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/analytics"
	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// BookingService manages parking bookings
type BookingService interface {
	// Create books a slot for actor
	Create(ctx context.Context, actor *domain.User, req *dto.CreateBookingRequest) (*dto.BookingView, error)
	// ListForUser returns the user's bookings with slot names
	ListForUser(ctx context.Context, userID string) []dto.BookingView
	// Transition moves a booking to a new status
	Transition(ctx context.Context, actor *domain.User, id string, status domain.BookingStatus) (*domain.Booking, error)
	// SetPaymentStatus records a payment outcome
	SetPaymentStatus(ctx context.Context, actor *domain.User, id string, status domain.PaymentStatus) (*domain.Booking, error)
	// Delete removes a booking
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type bookingService struct {
	bookings *repository.Collection[domain.Booking]
	slots    *repository.Collection[domain.ParkingSlot]
	clock    func() time.Time
	log      *logger.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookings *repository.Collection[domain.Booking],
	slots *repository.Collection[domain.ParkingSlot],
	clock func() time.Time,
	log *logger.Logger,
) BookingService {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &bookingService{bookings: bookings, slots: slots, clock: clock, log: log}
}

func (s *bookingService) Create(ctx context.Context, actor *domain.User, req *dto.CreateBookingRequest) (*dto.BookingView, error) {
	slot, ok := s.slots.Find(ctx, req.SlotID)
	if !ok {
		return nil, domain.ErrSlotNotFound
	}

	booking, err := domain.NewBooking(actor.ID, &slot, req.StartTime, req.Duration, s.clock())
	if err != nil {
		return nil, err
	}

	created, err := s.bookings.Add(ctx, *booking)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", created.ID),
		zap.String("user_id", actor.ID),
		zap.String("slot_id", slot.ID),
		zap.Float64("total_cost", created.TotalCost),
	)
	return &dto.BookingView{Booking: created, SlotName: slot.Name}, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string) []dto.BookingView {
	slots := s.slots.All(ctx)
	mine := analytics.BookingsForUser(s.bookings.All(ctx), userID)
	return toBookingViews(mine, slots)
}

func (s *bookingService) Transition(ctx context.Context, actor *domain.User, id string, status domain.BookingStatus) (*domain.Booking, error) {
	return s.update(ctx, actor, id, func(b *domain.Booking) error {
		return b.TransitionTo(status, s.clock())
	})
}

func (s *bookingService) SetPaymentStatus(ctx context.Context, actor *domain.User, id string, status domain.PaymentStatus) (*domain.Booking, error) {
	return s.update(ctx, actor, id, func(b *domain.Booking) error {
		return b.SetPaymentStatus(status, s.clock())
	})
}

func (s *bookingService) update(ctx context.Context, actor *domain.User, id string, fn func(*domain.Booking) error) (*domain.Booking, error) {
	slots := s.slots.All(ctx)
	updated, err := s.bookings.Update(ctx, id, func(b *domain.Booking) error {
		if !s.canManage(actor, b, slots) {
			return domain.ErrForbidden
		}
		return fn(b)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", id),
		zap.String("status", string(updated.Status)),
		zap.String("payment_status", string(updated.PaymentStatus)),
	)
	return &updated, nil
}

func (s *bookingService) Delete(ctx context.Context, actor *domain.User, id string) error {
	booking, ok := s.bookings.Find(ctx, id)
	if !ok {
		return domain.ErrBookingNotFound
	}
	if !s.canManage(actor, &booking, s.slots.All(ctx)) {
		return domain.ErrForbidden
	}

	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrBookingNotFound
	}

	s.log.Info("Booking deleted", zap.String("booking_id", id), zap.String("user_id", actor.ID))
	return nil
}

// canManage allows the booking's owner and the admin owning its slot
func (s *bookingService) canManage(actor *domain.User, b *domain.Booking, slots []domain.ParkingSlot) bool {
	if b.UserID == actor.ID {
		return true
	}
	if !actor.IsAdmin() {
		return false
	}
	slot, ok := analytics.SlotByID(slots, b.SlotID)
	return ok && slot.AdminID == actor.ID
}

func toBookingViews(bookings []domain.Booking, slots []domain.ParkingSlot) []dto.BookingView {
	views := make([]dto.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, dto.BookingView{Booking: b, SlotName: analytics.SlotName(slots, b.SlotID)})
	}
	return views
}
