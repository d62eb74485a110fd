package service

import (
	"context"
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/analytics"
	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
)

const (
	recentBookingsLimit = 3
	adminSlotsLimit     = 5
)

// DashboardService builds the role-specific summary for a user
type DashboardService interface {
	Dashboard(ctx context.Context, user *domain.User) *dto.DashboardResponse
}

type dashboardService struct {
	variant string
	repos   *repository.Repositories
	clock   func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(variant string, repos *repository.Repositories, clock func() time.Time) DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &dashboardService{variant: variant, repos: repos, clock: clock}
}

func (s *dashboardService) Dashboard(ctx context.Context, user *domain.User) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{Variant: s.variant, Role: user.Role}

	switch {
	case s.variant == repository.VariantEarning && user.IsAdmin():
		resp.Data = s.earningAdmin(ctx)
	case s.variant == repository.VariantEarning:
		resp.Data = s.earningUser(ctx, user)
	case user.IsAdmin():
		resp.Data = s.parkingAdmin(ctx, user)
	default:
		resp.Data = s.parkingUser(ctx, user)
	}
	return resp
}

func (s *dashboardService) parkingUser(ctx context.Context, user *domain.User) *dto.ParkingUserDashboard {
	slots := s.repos.Slots.All(ctx)
	mine := analytics.BookingsForUser(s.repos.Bookings.All(ctx), user.ID)

	d := &dto.ParkingUserDashboard{
		TotalBookings:  len(mine),
		ActiveBookings: len(analytics.ActiveBookings(mine)),
		TotalSpent:     analytics.TotalRevenue(mine),
		AvailableSlots: analytics.SlotsWithSpace(slots),
		Recent:         toBookingViews(analytics.Recent(mine, recentBookingsLimit), slots),
	}

	if next, ok := analytics.UpcomingBooking(mine, user.ID, s.clock()); ok {
		d.Upcoming = &dto.BookingView{Booking: next, SlotName: analytics.SlotName(slots, next.SlotID)}
	}
	return d
}

func (s *dashboardService) parkingAdmin(ctx context.Context, user *domain.User) *dto.ParkingAdminDashboard {
	owned := analytics.SlotsOwnedBy(s.repos.Slots.All(ctx), user.ID)
	onMySlots := analytics.BookingsForSlots(s.repos.Bookings.All(ctx), owned)

	return &dto.ParkingAdminDashboard{
		TotalSlots:    len(owned),
		TotalBookings: len(onMySlots),
		TotalRevenue:  analytics.TotalRevenue(onMySlots),
		TotalCapacity: analytics.TotalCapacity(owned),
		TotalOccupied: analytics.TotalOccupied(owned),
		OccupancyRate: analytics.OccupancyRate(owned),
		Slots:         analytics.Recent(owned, adminSlotsLimit),
	}
}

func (s *dashboardService) earningUser(ctx context.Context, user *domain.User) *dto.EarningUserDashboard {
	views := analytics.ViewsForUser(s.repos.AdViews.All(ctx), user.ID)
	today := analytics.ViewsSince(views, analytics.StartOfDay(s.clock()))
	pending := analytics.PendingWithdrawals(analytics.WithdrawalsForUser(s.repos.Withdrawals.All(ctx), user.ID))

	return &dto.EarningUserDashboard{
		WalletBalance:     user.WalletBalance,
		IsActivated:       user.IsActivated,
		AdsWatched:        user.AdsWatched,
		TotalEarned:       analytics.TotalEarned(views),
		TodayEarnings:     analytics.TotalEarned(today),
		TotalReferrals:    len(analytics.ReferralsBy(s.repos.Referrals.All(ctx), user.ID)),
		ReferralCode:      user.ReferralCode,
		PendingWithdrawal: analytics.TotalRequested(pending),
		AvailableAds:      len(analytics.ActiveAds(s.repos.Ads.All(ctx))),
	}
}

func (s *dashboardService) earningAdmin(ctx context.Context) *dto.EarningAdminDashboard {
	ads := s.repos.Ads.All(ctx)
	views := s.repos.AdViews.All(ctx)
	withdrawals := s.repos.Withdrawals.All(ctx)
	pending := analytics.PendingWithdrawals(withdrawals)

	return &dto.EarningAdminDashboard{
		TotalAds:           len(ads),
		ActiveAds:          len(analytics.ActiveAds(ads)),
		TotalViews:         len(views),
		TotalRewardsPaid:   analytics.TotalEarned(views),
		ActiveUsers:        analytics.DistinctActiveUsers(views),
		PendingWithdrawals: len(pending),
		PendingAmount:      analytics.TotalRequested(pending),
		ApprovedPayouts:    analytics.TotalPaidOut(withdrawals),
		TotalReferrals:     len(s.repos.Referrals.All(ctx)),
	}
}
