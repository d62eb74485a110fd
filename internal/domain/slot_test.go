package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParkingSlot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slot    ParkingSlot
		wantErr error
	}{
		{"valid", ParkingSlot{Name: "A", Capacity: 10, CurrentOccupancy: 10}, nil},
		{"empty name", ParkingSlot{Name: " ", Capacity: 10}, ErrInvalidSlot},
		{"negative capacity", ParkingSlot{Name: "A", Capacity: -1}, ErrInvalidSlot},
		{"negative rate", ParkingSlot{Name: "A", Capacity: 1, HourlyRate: -1}, ErrInvalidSlot},
		{"over capacity", ParkingSlot{Name: "A", Capacity: 5, CurrentOccupancy: 6}, ErrOccupancyOutOfRange},
		{"negative occupancy", ParkingSlot{Name: "A", Capacity: 5, CurrentOccupancy: -1}, ErrOccupancyOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParkingSlot_SetOccupancy(t *testing.T) {
	s := &ParkingSlot{Capacity: 4, CurrentOccupancy: 1}

	require.NoError(t, s.SetOccupancy(4))
	assert.Equal(t, 0, s.Available())

	assert.ErrorIs(t, s.SetOccupancy(5), ErrOccupancyOutOfRange)
	assert.ErrorIs(t, s.SetOccupancy(-1), ErrOccupancyOutOfRange)
	assert.Equal(t, 4, s.CurrentOccupancy)
}
