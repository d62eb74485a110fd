package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/analytics"
	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// EarningConfig holds the money amounts of the earning program (KES)
type EarningConfig struct {
	ActivationFee float64
	ReferralBonus float64
	MinWithdrawal float64
	PublicURL     string
	Clock         func() time.Time
}

// EarningService runs the ad rewards, activation, referral and payout flows
// for the logged-in user
type EarningService interface {
	// ListAds returns the watchable ads
	ListAds(ctx context.Context) []domain.Ad
	// WatchAd rewards the current user for watching an ad
	WatchAd(ctx context.Context, adID string) (*dto.WatchAdResponse, error)
	// Activate pays the one-time activation fee
	Activate(ctx context.Context, method string) (*dto.ActivationResponse, error)
	// RequestWithdrawal reserves wallet funds for a payout
	RequestWithdrawal(ctx context.Context, req *dto.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	// ProcessWithdrawal approves or rejects a pending payout
	ProcessWithdrawal(ctx context.Context, id string, approve bool) (*domain.WithdrawalRequest, error)
	// ListWithdrawals returns every request for admins, own requests otherwise
	ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
	// Referrals returns the current user's referral summary
	Referrals(ctx context.Context) (*dto.ReferralsResponse, error)
	// ReferralQRCode renders the referral link as a PNG
	ReferralQRCode(ctx context.Context, size int) ([]byte, error)
}

type earningService struct {
	session     Session
	ads         *repository.Collection[domain.Ad]
	views       *repository.Collection[domain.AdView]
	referrals   *repository.Collection[domain.Referral]
	withdrawals *repository.Collection[domain.WithdrawalRequest]
	activations *repository.Collection[domain.ActivationPayment]
	config      *EarningConfig
	log         *logger.Logger
}

// NewEarningService creates a new EarningService
func NewEarningService(session Session, repos *repository.Repositories, config *EarningConfig, log *logger.Logger) EarningService {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &earningService{
		session:     session,
		ads:         repos.Ads,
		views:       repos.AdViews,
		referrals:   repos.Referrals,
		withdrawals: repos.Withdrawals,
		activations: repos.Activations,
		config:      config,
		log:         log,
	}
}

func (s *earningService) ListAds(ctx context.Context) []domain.Ad {
	return analytics.ActiveAds(s.ads.All(ctx))
}

func (s *earningService) WatchAd(ctx context.Context, adID string) (*dto.WatchAdResponse, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if !user.IsActivated {
		return nil, domain.ErrNotActivated
	}

	ad, ok := s.ads.Find(ctx, adID)
	if !ok {
		return nil, domain.ErrAdNotFound
	}
	if !ad.IsActive {
		return nil, domain.ErrAdInactive
	}

	view, err := s.views.Add(ctx, domain.AdView{
		UserID:       user.ID,
		AdID:         ad.ID,
		EarnedAmount: ad.Reward,
		WatchedAt:    s.config.Clock(),
		Duration:     ad.Duration,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.session.UpdateUser(ctx, func(u *domain.User) error {
		if err := u.Credit(ad.Reward); err != nil {
			return err
		}
		u.AdsWatched++
		u.TotalEarnings += ad.Reward
		return nil
	})
	if err != nil {
		s.discard(ctx, "ad view", view.ID, s.views.Delete)
		return nil, fmt.Errorf("credit reward: %w", err)
	}

	s.log.Info("Ad watched",
		zap.String("user_id", user.ID),
		zap.String("ad_id", ad.ID),
		zap.Float64("reward", ad.Reward),
	)
	return &dto.WatchAdResponse{
		View:          view,
		WalletBalance: updated.WalletBalance,
		AdsWatched:    updated.AdsWatched,
	}, nil
}

func (s *earningService) Activate(ctx context.Context, method string) (*dto.ActivationResponse, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if user.IsActivated {
		return nil, domain.ErrAlreadyActivated
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, domain.ErrMissingPaymentDetails
	}

	now := s.config.Clock()
	payment, err := s.activations.Add(ctx, domain.ActivationPayment{
		UserID:    user.ID,
		Amount:    s.config.ActivationFee,
		Method:    method,
		Status:    domain.ActivationCompleted,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.session.UpdateUser(ctx, func(u *domain.User) error {
		u.IsActivated = true
		return nil
	})
	if err != nil {
		s.discard(ctx, "activation payment", payment.ID, s.activations.Delete)
		return nil, fmt.Errorf("activate user: %w", err)
	}

	err = s.referrals.Mutate(ctx, func(refs []domain.Referral) ([]domain.Referral, error) {
		for i := range refs {
			if refs[i].ReferredUserID == user.ID && !refs[i].IsActivated {
				refs[i].IsActivated = true
				refs[i].EarnedAmount = s.config.ReferralBonus
			}
		}
		return refs, nil
	})
	if err != nil {
		s.log.Warn("Failed to update referrals after activation", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.log.Info("Account activated",
		zap.String("user_id", user.ID),
		zap.String("method", method),
		zap.Float64("amount", payment.Amount),
	)
	return &dto.ActivationResponse{Payment: payment, User: updated}, nil
}

// discard removes a record whose follow-up user update failed
func (s *earningService) discard(ctx context.Context, kind, id string, del func(context.Context, string) (bool, error)) {
	if _, err := del(ctx, id); err != nil {
		s.log.Error("Failed to discard "+kind, zap.String("id", id), zap.Error(err))
	}
}

func (s *earningService) RequestWithdrawal(ctx context.Context, req *dto.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if req.Amount < s.config.MinWithdrawal {
		return nil, domain.ErrBelowMinimumWithdrawal
	}
	if strings.TrimSpace(req.PaymentMethod) == "" || strings.TrimSpace(req.AccountDetails) == "" {
		return nil, domain.ErrMissingPaymentDetails
	}

	if _, err := s.session.UpdateUser(ctx, func(u *domain.User) error {
		return u.Debit(req.Amount)
	}); err != nil {
		return nil, err
	}

	created, err := s.withdrawals.Add(ctx, domain.WithdrawalRequest{
		UserID:         user.ID,
		Amount:         req.Amount,
		Status:         domain.WithdrawalPending,
		RequestedAt:    s.config.Clock(),
		PaymentMethod:  strings.TrimSpace(req.PaymentMethod),
		AccountDetails: strings.TrimSpace(req.AccountDetails),
	})
	if err != nil {
		// give the reserved funds back
		if _, rerr := s.session.UpdateUser(ctx, func(u *domain.User) error { return u.Credit(req.Amount) }); rerr != nil {
			s.log.Error("Failed to restore wallet after withdrawal failure", zap.String("user_id", user.ID), zap.Error(rerr))
		}
		return nil, err
	}

	s.log.Info("Withdrawal requested", zap.String("withdrawal_id", created.ID), zap.String("user_id", user.ID), zap.Float64("amount", req.Amount))
	return &created, nil
}

func (s *earningService) ProcessWithdrawal(ctx context.Context, id string, approve bool) (*domain.WithdrawalRequest, error) {
	actor, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	processed, err := s.withdrawals.Update(ctx, id, func(w *domain.WithdrawalRequest) error {
		return w.Process(approve, s.config.Clock())
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, err
	}

	// the refund belongs to the requester; only the session user's wallet is held here
	if !approve && processed.UserID == actor.ID {
		if _, err := s.session.UpdateUser(ctx, func(u *domain.User) error {
			return u.Credit(processed.Amount)
		}); err != nil {
			s.log.Error("Failed to refund rejected withdrawal", zap.String("withdrawal_id", id), zap.Error(err))
		}
	}

	s.log.Info("Withdrawal processed",
		zap.String("withdrawal_id", id),
		zap.String("status", string(processed.Status)),
		zap.String("admin_id", actor.ID),
	)
	return &processed, nil
}

func (s *earningService) ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	all := s.withdrawals.All(ctx)
	if user.IsAdmin() {
		return all, nil
	}
	return analytics.WithdrawalsForUser(all, user.ID), nil
}

func (s *earningService) Referrals(ctx context.Context) (*dto.ReferralsResponse, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	mine := analytics.ReferralsBy(s.referrals.All(ctx), user.ID)
	var earned float64
	for _, r := range mine {
		earned += r.EarnedAmount
	}

	return &dto.ReferralsResponse{
		ReferralCode: user.ReferralCode,
		ReferralLink: s.referralLink(user.ReferralCode),
		Referrals:    mine,
		TotalEarned:  earned,
	}, nil
}

func (s *earningService) ReferralQRCode(_ context.Context, size int) ([]byte, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(s.referralLink(user.ReferralCode), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render referral QR code: %w", err)
	}
	return png, nil
}

func (s *earningService) referralLink(code string) string {
	return fmt.Sprintf("%s/register?ref=%s", strings.TrimRight(s.config.PublicURL, "/"), url.QueryEscape(code))
}
