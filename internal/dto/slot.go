package dto

// CreateSlotRequest represents a request to publish a parking slot
type CreateSlotRequest struct {
	Name       string   `json:"name" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	Latitude   float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude  float64  `json:"longitude" binding:"min=-180,max=180"`
	Capacity   int      `json:"capacity" binding:"required,min=1"`
	HourlyRate float64  `json:"hourlyRate" binding:"min=0"`
	Amenities  []string `json:"amenities,omitempty"`
}

// UpdateOccupancyRequest sets the occupied count of a slot
type UpdateOccupancyRequest struct {
	CurrentOccupancy *int `json:"currentOccupancy" binding:"required"`
}

// SetActiveRequest toggles whether a slot accepts bookings
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
