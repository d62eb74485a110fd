package dto

import "github.com/Dannesh12/urban-slot-finder/internal/domain"

// ActivationRequest pays the activation fee
type ActivationRequest struct {
	Method string `json:"method" binding:"required"`
}

// WithdrawalRequest asks for a payout
type WithdrawalRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod  string  `json:"paymentMethod" binding:"required"`
	AccountDetails string  `json:"accountDetails" binding:"required"`
}

// ProcessWithdrawalRequest approves or rejects a payout
type ProcessWithdrawalRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// WatchAdResponse is returned after a rewarded view
type WatchAdResponse struct {
	View          domain.AdView `json:"view"`
	WalletBalance float64       `json:"walletBalance"`
	AdsWatched    int           `json:"adsWatched"`
}

// ActivationResponse is returned after activation
type ActivationResponse struct {
	Payment domain.ActivationPayment `json:"payment"`
	User    *domain.User             `json:"user"`
}

// ReferralsResponse lists the referrals of the current user
type ReferralsResponse struct {
	ReferralCode string            `json:"referralCode"`
	ReferralLink string            `json:"referralLink"`
	Referrals    []domain.Referral `json:"referrals"`
	TotalEarned  float64           `json:"totalEarned"`
}
