package repository

import (
	"strings"
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

// DefaultPhone is assigned to accounts that did not provide one
const DefaultPhone = "+254700000000"

// Directory is the fixed set of demo accounts that can log in
type Directory struct {
	users []domain.User
}

// NewDirectory returns the demo accounts of a variant
func NewDirectory(variant string, now time.Time) *Directory {
	if variant == VariantEarning {
		return &Directory{users: []domain.User{
			{
				ID:            "1",
				Email:         "admin@earnke.com",
				Name:          "Admin User",
				Phone:         DefaultPhone,
				Role:          domain.RoleAdmin,
				IsActivated:   true,
				WalletBalance: 50000,
				ReferralCode:  "ADMN01",
				TotalEarnings: 50000,
				CreatedAt:     now,
			},
			{
				ID:           "2",
				Email:        "user@earnke.com",
				Name:         "Demo User",
				Phone:        "+254700000001",
				Role:         domain.RoleUser,
				ReferralCode: "DEMO02",
				CreatedAt:    now,
			},
		}}
	}

	return &Directory{users: []domain.User{
		{
			ID:           "1",
			Email:        "admin@urbanslot.com",
			Name:         "Admin User",
			Phone:        DefaultPhone,
			Role:         domain.RoleAdmin,
			ReferralCode: "ADMN01",
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Email:        "user@urbanslot.com",
			Name:         "Demo User",
			Phone:        "+254700000001",
			Role:         domain.RoleUser,
			ReferralCode: "DEMO02",
			CreatedAt:    now,
		},
	}}
}

// FindByEmail matches the email exactly
func (d *Directory) FindByEmail(email string) (*domain.User, bool) {
	for i := range d.users {
		if d.users[i].Email == email {
			return d.users[i].Clone(), true
		}
	}
	return nil, false
}

// FindByReferralCode matches a referral code, ignoring case
func (d *Directory) FindByReferralCode(code string) (*domain.User, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, false
	}
	for i := range d.users {
		if strings.EqualFold(d.users[i].ReferralCode, code) {
			return d.users[i].Clone(), true
		}
	}
	return nil, false
}
