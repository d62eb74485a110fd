package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

func newEarningService(t *testing.T) (*fixture, EarningService) {
	return newEarningServiceWithStore(t, kvstore.NewMemory())
}

func TestEarningService_RequiresSession(t *testing.T) {
	ctx := context.Background()
	_, svc := newEarningService(t)

	_, err := svc.WatchAd(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = svc.Activate(ctx, "mpesa")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = svc.Referrals(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = svc.ReferralQRCode(ctx, 128)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestEarningService_WatchAd(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)
	f.login(t, "admin@earnke.com")

	assert.Len(t, svc.ListAds(ctx), 3)

	resp, err := svc.WatchAd(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 50010.0, resp.WalletBalance)
	assert.Equal(t, "2", resp.View.AdID)
	assert.Equal(t, "1", resp.View.UserID)
	assert.Equal(t, 10.0, resp.View.EarnedAmount)

	current, _ := f.session.CurrentUser()
	assert.Equal(t, 50010.0, current.TotalEarnings)
	assert.Len(t, f.repos.AdViews.All(ctx), 2)

	_, err = svc.WatchAd(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAdNotFound)

	_, err = f.repos.Ads.Update(ctx, "3", func(a *domain.Ad) error {
		a.IsActive = false
		return nil
	})
	require.NoError(t, err)
	_, err = svc.WatchAd(ctx, "3")
	assert.ErrorIs(t, err, domain.ErrAdInactive)
	assert.Len(t, svc.ListAds(ctx), 2)
}

func TestEarningService_WatchAdNotActivated(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)
	f.login(t, "user@earnke.com")

	_, err := svc.WatchAd(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotActivated)
	assert.Len(t, f.repos.AdViews.All(ctx), 1, "no view recorded")
}

func TestEarningService_ActivateMarksReferral(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)

	_, err := f.session.Register(ctx, RegisterParams{
		Email: "jane@earnke.com", Name: "Jane", Role: domain.RoleUser, ReferralCode: "DEMO02",
	})
	require.NoError(t, err)

	_, err = svc.Activate(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingPaymentDetails)

	resp, err := svc.Activate(ctx, "mpesa")
	require.NoError(t, err)
	assert.True(t, resp.User.IsActivated)
	assert.Equal(t, 500.0, resp.Payment.Amount)
	assert.Equal(t, domain.ActivationCompleted, resp.Payment.Status)

	refs := f.repos.Referrals.All(ctx)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].IsActivated)
	assert.Equal(t, 100.0, refs[0].EarnedAmount)

	_, err = svc.Activate(ctx, "mpesa")
	assert.ErrorIs(t, err, domain.ErrAlreadyActivated)
	assert.Len(t, f.repos.Activations.All(ctx), 1)
}

func TestEarningService_Withdrawals(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)
	f.login(t, "admin@earnke.com")

	_, err := svc.RequestWithdrawal(ctx, &dto.WithdrawalRequest{Amount: 199, PaymentMethod: "mpesa", AccountDetails: "0700"})
	assert.ErrorIs(t, err, domain.ErrBelowMinimumWithdrawal)

	_, err = svc.RequestWithdrawal(ctx, &dto.WithdrawalRequest{Amount: 1e9, PaymentMethod: "mpesa", AccountDetails: "0700"})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, f.repos.Withdrawals.All(ctx))

	w, err := svc.RequestWithdrawal(ctx, &dto.WithdrawalRequest{Amount: 1000, PaymentMethod: "mpesa", AccountDetails: "0700"})
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalPending, w.Status)

	current, _ := f.session.CurrentUser()
	assert.Equal(t, 49000.0, current.WalletBalance, "funds are reserved on request")

	approved, err := svc.ProcessWithdrawal(ctx, w.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalApproved, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, testNow, *approved.ProcessedAt)

	_, err = svc.ProcessWithdrawal(ctx, w.ID, false)
	assert.ErrorIs(t, err, domain.ErrWithdrawalProcessed)

	_, err = svc.ProcessWithdrawal(ctx, "missing", true)
	assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)

	current, _ = f.session.CurrentUser()
	assert.Equal(t, 49000.0, current.WalletBalance)

	list, err := svc.ListWithdrawals(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEarningService_RejectRefunds(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)
	f.login(t, "admin@earnke.com")

	w, err := svc.RequestWithdrawal(ctx, &dto.WithdrawalRequest{Amount: 300, PaymentMethod: "bank", AccountDetails: "ACC"})
	require.NoError(t, err)

	rejected, err := svc.ProcessWithdrawal(ctx, w.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalRejected, rejected.Status)

	current, _ := f.session.CurrentUser()
	assert.Equal(t, 50000.0, current.WalletBalance)
}

func TestEarningService_ProcessRequiresAdmin(t *testing.T) {
	f, svc := newEarningService(t)
	f.login(t, "user@earnke.com")

	_, err := svc.ProcessWithdrawal(context.Background(), "1", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := svc.ListWithdrawals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEarningService_Referrals(t *testing.T) {
	ctx := context.Background()
	f, svc := newEarningService(t)
	f.login(t, "user@earnke.com")

	resp, err := svc.Referrals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DEMO02", resp.ReferralCode)
	assert.Equal(t, "https://earnke.test/register?ref=DEMO02", resp.ReferralLink)
	assert.Empty(t, resp.Referrals)
	assert.Zero(t, resp.TotalEarned)

	png, err := svc.ReferralQRCode(ctx, 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

// sessionWriteFailStore rejects writes to one key once armed
type sessionWriteFailStore struct {
	*kvstore.Memory
	key   string
	armed bool
}

func (s *sessionWriteFailStore) Set(ctx context.Context, key string, value []byte) error {
	if s.armed && key == s.key {
		return errors.New("disk full")
	}
	return s.Memory.Set(ctx, key, value)
}

func newEarningServiceWithStore(t *testing.T, store kvstore.Store) (*fixture, EarningService) {
	f := newFixtureWithStore(t, repository.VariantEarning, store)
	svc := NewEarningService(f.session, f.repos, &EarningConfig{
		ActivationFee: 500,
		ReferralBonus: 100,
		MinWithdrawal: 200,
		PublicURL:     "https://earnke.test/",
		Clock:         testClock,
	}, logger.NewNop())
	return f, svc
}

func TestEarningService_WatchAdSessionWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := &sessionWriteFailStore{Memory: kvstore.NewMemory(), key: "earning_auth"}
	f, svc := newEarningServiceWithStore(t, store)
	f.login(t, "admin@earnke.com")
	before := len(f.repos.AdViews.All(ctx))

	store.armed = true
	_, err := svc.WatchAd(ctx, "1")
	require.Error(t, err)

	assert.Len(t, f.repos.AdViews.All(ctx), before, "view removed when the reward is not credited")
	current, _ := f.session.CurrentUser()
	assert.Equal(t, 50000.0, current.WalletBalance)
	assert.Equal(t, 0, current.AdsWatched)
}

func TestEarningService_ActivateSessionWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := &sessionWriteFailStore{Memory: kvstore.NewMemory(), key: "earning_auth"}
	f, svc := newEarningServiceWithStore(t, store)
	f.login(t, "user@earnke.com")

	store.armed = true
	_, err := svc.Activate(ctx, "mpesa")
	require.Error(t, err)
	assert.Empty(t, f.repos.Activations.All(ctx))
	current, _ := f.session.CurrentUser()
	assert.False(t, current.IsActivated)

	store.armed = false
	resp, err := svc.Activate(ctx, "mpesa")
	require.NoError(t, err)
	assert.True(t, resp.User.IsActivated)
	assert.Len(t, f.repos.Activations.All(ctx), 1, "retry records a single payment")
}
