package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/analytics"
	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// SlotService manages parking slots
type SlotService interface {
	// List returns every slot
	List(ctx context.Context) []domain.ParkingSlot
	// ListOwned returns the slots managed by adminID
	ListOwned(ctx context.Context, adminID string) []domain.ParkingSlot
	// Get returns one slot
	Get(ctx context.Context, id string) (*domain.ParkingSlot, error)
	// Create publishes a new slot owned by actor
	Create(ctx context.Context, actor *domain.User, req *dto.CreateSlotRequest) (*domain.ParkingSlot, error)
	// SetOccupancy updates how many spaces are taken
	SetOccupancy(ctx context.Context, actor *domain.User, id string, occupancy int) (*domain.ParkingSlot, error)
	// SetActive toggles whether the slot accepts bookings
	SetActive(ctx context.Context, actor *domain.User, id string, active bool) (*domain.ParkingSlot, error)
	// Delete removes a slot
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type slotService struct {
	slots *repository.Collection[domain.ParkingSlot]
	clock func() time.Time
	log   *logger.Logger
}

// NewSlotService creates a new SlotService
func NewSlotService(slots *repository.Collection[domain.ParkingSlot], clock func() time.Time, log *logger.Logger) SlotService {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &slotService{slots: slots, clock: clock, log: log}
}

func (s *slotService) List(ctx context.Context) []domain.ParkingSlot {
	return s.slots.All(ctx)
}

func (s *slotService) ListOwned(ctx context.Context, adminID string) []domain.ParkingSlot {
	return analytics.SlotsOwnedBy(s.slots.All(ctx), adminID)
}

func (s *slotService) Get(ctx context.Context, id string) (*domain.ParkingSlot, error) {
	slot, ok := s.slots.Find(ctx, id)
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return &slot, nil
}

func (s *slotService) Create(ctx context.Context, actor *domain.User, req *dto.CreateSlotRequest) (*domain.ParkingSlot, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	slot := domain.ParkingSlot{
		Name: strings.TrimSpace(req.Name),
		Location: domain.Location{
			Address:   strings.TrimSpace(req.Address),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		Capacity:   req.Capacity,
		HourlyRate: req.HourlyRate,
		AdminID:    actor.ID,
		Amenities:  req.Amenities,
		IsActive:   true,
		CreatedAt:  s.clock(),
	}
	if slot.Amenities == nil {
		slot.Amenities = []string{}
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	created, err := s.slots.Add(ctx, slot)
	if err != nil {
		return nil, err
	}

	s.log.Info("Parking slot created", zap.String("slot_id", created.ID), zap.String("admin_id", actor.ID))
	return &created, nil
}

func (s *slotService) SetOccupancy(ctx context.Context, actor *domain.User, id string, occupancy int) (*domain.ParkingSlot, error) {
	return s.update(ctx, actor, id, func(slot *domain.ParkingSlot) error {
		return slot.SetOccupancy(occupancy)
	})
}

func (s *slotService) SetActive(ctx context.Context, actor *domain.User, id string, active bool) (*domain.ParkingSlot, error) {
	return s.update(ctx, actor, id, func(slot *domain.ParkingSlot) error {
		slot.IsActive = active
		return nil
	})
}

func (s *slotService) update(ctx context.Context, actor *domain.User, id string, fn func(*domain.ParkingSlot) error) (*domain.ParkingSlot, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	updated, err := s.slots.Update(ctx, id, func(slot *domain.ParkingSlot) error {
		if slot.AdminID != actor.ID {
			return domain.ErrForbidden
		}
		return fn(slot)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *slotService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	slot, ok := s.slots.Find(ctx, id)
	if !ok {
		return domain.ErrSlotNotFound
	}
	if slot.AdminID != actor.ID {
		return domain.ErrForbidden
	}

	deleted, err := s.slots.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrSlotNotFound
	}

	s.log.Info("Parking slot deleted", zap.String("slot_id", id), zap.String("admin_id", actor.ID))
	return nil
}
