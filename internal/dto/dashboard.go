package dto

import "github.com/Dannesh12/urban-slot-finder/internal/domain"

// ParkingUserDashboard summarizes a driver's bookings
type ParkingUserDashboard struct {
	TotalBookings  int           `json:"totalBookings"`
	ActiveBookings int           `json:"activeBookings"`
	TotalSpent     float64       `json:"totalSpent"`
	AvailableSlots int           `json:"availableSlots"`
	Upcoming       *BookingView  `json:"upcoming"`
	Recent         []BookingView `json:"recent"`
}

// ParkingAdminDashboard summarizes the slots an admin owns
type ParkingAdminDashboard struct {
	TotalSlots    int                  `json:"totalSlots"`
	TotalBookings int                  `json:"totalBookings"`
	TotalRevenue  float64              `json:"totalRevenue"`
	TotalCapacity int                  `json:"totalCapacity"`
	TotalOccupied int                  `json:"totalOccupied"`
	OccupancyRate int                  `json:"occupancyRate"`
	Slots         []domain.ParkingSlot `json:"slots"`
}

// EarningUserDashboard summarizes a user's wallet and activity
type EarningUserDashboard struct {
	WalletBalance     float64 `json:"walletBalance"`
	IsActivated       bool    `json:"isActivated"`
	AdsWatched        int     `json:"adsWatched"`
	TotalEarned       float64 `json:"totalEarned"`
	TodayEarnings     float64 `json:"todayEarnings"`
	TotalReferrals    int     `json:"totalReferrals"`
	ReferralCode      string  `json:"referralCode"`
	PendingWithdrawal float64 `json:"pendingWithdrawal"`
	AvailableAds      int     `json:"availableAds"`
}

// EarningAdminDashboard summarizes platform activity
type EarningAdminDashboard struct {
	TotalAds           int     `json:"totalAds"`
	ActiveAds          int     `json:"activeAds"`
	TotalViews         int     `json:"totalViews"`
	TotalRewardsPaid   float64 `json:"totalRewardsPaid"`
	ActiveUsers        int     `json:"activeUsers"`
	PendingWithdrawals int     `json:"pendingWithdrawals"`
	PendingAmount      float64 `json:"pendingAmount"`
	ApprovedPayouts    float64 `json:"approvedPayouts"`
	TotalReferrals     int     `json:"totalReferrals"`
}

// DashboardResponse wraps whichever dashboard applies to the caller
type DashboardResponse struct {
	Variant string      `json:"variant"`
	Role    domain.Role `json:"role"`
	Data    interface{} `json:"data"`
}
