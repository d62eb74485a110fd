package domain

import "time"

// Ad is a watchable advertisement paying a fixed reward
type Ad struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Duration    int       `json:"duration"` // seconds
	Reward      float64   `json:"reward"`   // KES
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a Ad) GetID() string { return a.ID }

// AdView records one rewarded ad watch
type AdView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AdID         string    `json:"adId"`
	EarnedAmount float64   `json:"earnedAmount"`
	WatchedAt    time.Time `json:"watchedAt"`
	Duration     int       `json:"duration"`
}

func (v AdView) GetID() string { return v.ID }

// Referral links a referrer to a user who signed up with their code
type Referral struct {
	ID             string    `json:"id"`
	ReferrerID     string    `json:"referrerId"`
	ReferredUserID string    `json:"referredUserId"`
	ReferredEmail  string    `json:"referredEmail"`
	IsActivated    bool      `json:"isActivated"`
	EarnedAmount   float64   `json:"earnedAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r Referral) GetID() string { return r.ID }

// WithdrawalStatus represents the state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest asks for wallet funds to be paid out
type WithdrawalRequest struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	Amount         float64          `json:"amount"`
	Status         WithdrawalStatus `json:"status"`
	RequestedAt    time.Time        `json:"requestedAt"`
	ProcessedAt    *time.Time       `json:"processedAt,omitempty"`
	PaymentMethod  string           `json:"paymentMethod"`
	AccountDetails string           `json:"accountDetails"`
}

func (w WithdrawalRequest) GetID() string { return w.ID }

// Process approves or rejects a pending request
func (w *WithdrawalRequest) Process(approve bool, now time.Time) error {
	if w.Status != WithdrawalPending {
		return ErrWithdrawalProcessed
	}
	if approve {
		w.Status = WithdrawalApproved
	} else {
		w.Status = WithdrawalRejected
	}
	w.ProcessedAt = &now
	return nil
}

// SpinResult is stored for the spin-the-wheel bonus; nothing produces it yet
type SpinResult struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Amount float64   `json:"amount"`
	SpunAt time.Time `json:"spunAt"`
}

// ActivationStatus represents the state of an activation payment
type ActivationStatus string

const (
	ActivationPending   ActivationStatus = "pending"
	ActivationCompleted ActivationStatus = "completed"
	ActivationFailed    ActivationStatus = "failed"
)

// ActivationPayment records the one-time fee that unlocks earning
type ActivationPayment struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Amount    float64          `json:"amount"`
	Method    string           `json:"method"`
	Status    ActivationStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (p ActivationPayment) GetID() string { return p.ID }
