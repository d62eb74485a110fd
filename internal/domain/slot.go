package domain

import (
	"fmt"
	"strings"
	"time"
)

// Location is where a parking slot is
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParkingSlot is a parking location owned by an admin
type ParkingSlot struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Location         Location  `json:"location"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	HourlyRate       float64   `json:"hourlyRate"`
	AdminID          string    `json:"adminId"`
	Amenities        []string  `json:"amenities"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// GetID implements repository.Entity
func (s ParkingSlot) GetID() string { return s.ID }

// Validate checks the slot invariants
func (s *ParkingSlot) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSlot)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidSlot)
	}
	if s.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidSlot)
	}
	if s.CurrentOccupancy < 0 || s.CurrentOccupancy > s.Capacity {
		return ErrOccupancyOutOfRange
	}
	return nil
}

// SetOccupancy updates the occupied count within [0, capacity]
func (s *ParkingSlot) SetOccupancy(n int) error {
	if n < 0 || n > s.Capacity {
		return ErrOccupancyOutOfRange
	}
	s.CurrentOccupancy = n
	return nil
}

// Available returns the number of free spaces
func (s *ParkingSlot) Available() int {
	return s.Capacity - s.CurrentOccupancy
}
