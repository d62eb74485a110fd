package analytics

import (
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// BookingsForUser keeps bookings made by userID
func BookingsForUser(bookings []domain.Booking, userID string) []domain.Booking {
	return filter(bookings, func(b domain.Booking) bool { return b.UserID == userID })
}

// ActiveBookings keeps pending and confirmed bookings
func ActiveBookings(bookings []domain.Booking) []domain.Booking {
	return filter(bookings, func(b domain.Booking) bool { return b.Status.IsActive() })
}

// SlotsOwnedBy keeps slots managed by adminID
func SlotsOwnedBy(slots []domain.ParkingSlot, adminID string) []domain.ParkingSlot {
	return filter(slots, func(s domain.ParkingSlot) bool { return s.AdminID == adminID })
}

// BookingsForSlots keeps bookings on any of slots
func BookingsForSlots(bookings []domain.Booking, slots []domain.ParkingSlot) []domain.Booking {
	ids := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		ids[s.ID] = struct{}{}
	}
	return filter(bookings, func(b domain.Booking) bool {
		_, ok := ids[b.SlotID]
		return ok
	})
}

// SlotByID looks a slot up; dangling references are expected
func SlotByID(slots []domain.ParkingSlot, id string) (domain.ParkingSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.ParkingSlot{}, false
}

// SlotName returns the slot's name, or "" when the slot is missing
func SlotName(slots []domain.ParkingSlot, id string) string {
	s, _ := SlotByID(slots, id)
	return s.Name
}

// ViewsForUser keeps ad views by userID
func ViewsForUser(views []domain.AdView, userID string) []domain.AdView {
	return filter(views, func(v domain.AdView) bool { return v.UserID == userID })
}

// ViewsSince keeps ad views at or after since
func ViewsSince(views []domain.AdView, since time.Time) []domain.AdView {
	return filter(views, func(v domain.AdView) bool { return !v.WatchedAt.Before(since) })
}

// ActiveAds keeps ads that can be watched
func ActiveAds(ads []domain.Ad) []domain.Ad {
	return filter(ads, func(a domain.Ad) bool { return a.IsActive })
}

// PendingWithdrawals keeps requests awaiting processing
func PendingWithdrawals(withdrawals []domain.WithdrawalRequest) []domain.WithdrawalRequest {
	return filter(withdrawals, func(w domain.WithdrawalRequest) bool { return w.Status == domain.WithdrawalPending })
}

// WithdrawalsForUser keeps requests made by userID
func WithdrawalsForUser(withdrawals []domain.WithdrawalRequest, userID string) []domain.WithdrawalRequest {
	return filter(withdrawals, func(w domain.WithdrawalRequest) bool { return w.UserID == userID })
}

// ReferralsBy keeps referrals made by referrerID
func ReferralsBy(referrals []domain.Referral, referrerID string) []domain.Referral {
	return filter(referrals, func(r domain.Referral) bool { return r.ReferrerID == referrerID })
}

// TotalRequested sums withdrawal amounts regardless of status
func TotalRequested(withdrawals []domain.WithdrawalRequest) float64 {
	var total float64
	for _, w := range withdrawals {
		total += w.Amount
	}
	return total
}

// Recent returns the first n items in collection order
func Recent[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) < n {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

// StartOfDay truncates t to midnight in its location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
