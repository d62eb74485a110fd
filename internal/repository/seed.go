package repository

import (
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

// DemoAdminID owns the seeded parking slots
const DemoAdminID = "1"

// DemoSlots is the parking slot list used when none is stored
func DemoSlots(now time.Time) []domain.ParkingSlot {
	return []domain.ParkingSlot{
		{
			ID:   "1",
			Name: "Downtown Plaza Parking",
			Location: domain.Location{
				Address:   "123 Main Street, Downtown",
				Latitude:  40.7128,
				Longitude: -74.0060,
			},
			Capacity:         50,
			CurrentOccupancy: 23,
			HourlyRate:       5,
			AdminID:          DemoAdminID,
			Amenities:        []string{"CCTV", "Covered", "EV Charging"},
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:   "2",
			Name: "Central Mall Garage",
			Location: domain.Location{
				Address:   "456 Market Avenue",
				Latitude:  40.7580,
				Longitude: -73.9855,
			},
			Capacity:         120,
			CurrentOccupancy: 87,
			HourlyRate:       3.5,
			AdminID:          DemoAdminID,
			Amenities:        []string{"Security Guard", "Covered", "Disabled Access"},
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:   "3",
			Name: "Riverside Open Lot",
			Location: domain.Location{
				Address:   "789 River Road",
				Latitude:  40.7306,
				Longitude: -73.9352,
			},
			Capacity:         30,
			CurrentOccupancy: 5,
			HourlyRate:       2,
			AdminID:          DemoAdminID,
			Amenities:        []string{"Open Air"},
			IsActive:         true,
			CreatedAt:        now,
		},
	}
}

// DemoAds is the ad list used when none is stored
func DemoAds(now time.Time) []domain.Ad {
	return []domain.Ad{
		{
			ID:          "1",
			Title:       "Safaricom Data Bundles",
			Description: "Get the best data deals from Kenya's leading network",
			ImageURL:    "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400&h=300&fit=crop",
			Duration:    30,
			Reward:      10,
			IsActive:    true,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "KCB Bank Services",
			Description: "Open your account today and enjoy great banking benefits",
			ImageURL:    "https://images.unsplash.com/photo-1551836022-deb4988cc6c0?w=400&h=300&fit=crop",
			Duration:    45,
			Reward:      10,
			IsActive:    true,
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "Jumia Flash Sale",
			Description: "Massive discounts on electronics and fashion",
			ImageURL:    "https://images.unsplash.com/photo-1472851294608-062f824d29cc?w=400&h=300&fit=crop",
			Duration:    35,
			Reward:      10,
			IsActive:    true,
			CreatedAt:   now,
		},
	}
}

// DemoAdViews is the view history used when none is stored
func DemoAdViews(now time.Time) []domain.AdView {
	return []domain.AdView{
		{
			ID:           "1",
			UserID:       "2",
			AdID:         "1",
			EarnedAmount: 10,
			WatchedAt:    now.Add(-time.Hour),
			Duration:     30,
		},
	}
}
