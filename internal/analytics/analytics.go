// Package analytics derives dashboard figures from collection snapshots.
// Every function is pure and treats a nil slice as empty.
package analytics

import (
	"math"
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

// TotalRevenue sums the cost of bookings whose payment succeeded
func TotalRevenue(bookings []domain.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.PaymentStatus == domain.PaymentStatusSuccess {
			total += b.TotalCost
		}
	}
	return total
}

// TotalEarned sums the rewards of ad views
func TotalEarned(views []domain.AdView) float64 {
	var total float64
	for _, v := range views {
		total += v.EarnedAmount
	}
	return total
}

// TotalPaidOut sums approved withdrawals
func TotalPaidOut(withdrawals []domain.WithdrawalRequest) float64 {
	var total float64
	for _, w := range withdrawals {
		if w.Status == domain.WithdrawalApproved {
			total += w.Amount
		}
	}
	return total
}

// TotalCapacity sums slot capacity
func TotalCapacity(slots []domain.ParkingSlot) int {
	n := 0
	for _, s := range slots {
		n += s.Capacity
	}
	return n
}

// SlotsWithSpace counts slots that still have a free space
func SlotsWithSpace(slots []domain.ParkingSlot) int {
	n := 0
	for i := range slots {
		if slots[i].Available() > 0 {
			n++
		}
	}
	return n
}

// TotalOccupied sums current occupancy
func TotalOccupied(slots []domain.ParkingSlot) int {
	n := 0
	for _, s := range slots {
		n += s.CurrentOccupancy
	}
	return n
}

// OccupancyRate is round(100 * occupied / capacity), 0 without capacity
func OccupancyRate(slots []domain.ParkingSlot) int {
	capacity := TotalCapacity(slots)
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(TotalOccupied(slots)) / float64(capacity)))
}

// UpcomingBooking picks the user's active booking with the earliest start
// strictly after now. Ties keep the earlier record.
func UpcomingBooking(bookings []domain.Booking, userID string, now time.Time) (domain.Booking, bool) {
	var (
		best  domain.Booking
		found bool
	)
	for _, b := range bookings {
		if b.UserID != userID || !b.Status.IsActive() || !b.StartTime.After(now) {
			continue
		}
		if !found || b.StartTime.Before(best.StartTime) {
			best = b
			found = true
		}
	}
	return best, found
}

// DistinctActiveUsers counts the distinct users with at least one ad view
func DistinctActiveUsers(views []domain.AdView) int {
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		seen[v.UserID] = struct{}{}
	}
	return len(seen)
}
