package repository

import (
	"time"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// Repositories groups the collections of one variant. Collections the
// variant does not use are nil.
type Repositories struct {
	Keys        Keys
	Session     *SessionStore
	Slots       *Collection[domain.ParkingSlot]
	Bookings    *Collection[domain.Booking]
	Ads         *Collection[domain.Ad]
	AdViews     *Collection[domain.AdView]
	Referrals   *Collection[domain.Referral]
	Withdrawals *Collection[domain.WithdrawalRequest]
	Activations *Collection[domain.ActivationPayment]
}

// New builds the collections of variant over store. clock supplies the
// timestamps of seed data.
func New(store kvstore.Store, variant string, clock func() time.Time, log *logger.Logger) *Repositories {
	if clock == nil {
		clock = time.Now
	}
	keys := KeysFor(variant)
	r := &Repositories{
		Keys:    keys,
		Session: NewSessionStore(store, keys.Session, log),
	}

	if variant == VariantEarning {
		r.Ads = NewCollection(store, keys.Ads,
			func() []domain.Ad { return DemoAds(clock()) },
			func(a *domain.Ad, id string) { a.ID = id }, log)
		r.AdViews = NewCollection(store, keys.AdViews,
			func() []domain.AdView { return DemoAdViews(clock()) },
			func(v *domain.AdView, id string) { v.ID = id }, log)
		r.Referrals = NewCollection(store, keys.Referrals, nil,
			func(ref *domain.Referral, id string) { ref.ID = id }, log)
		r.Withdrawals = NewCollection(store, keys.Withdrawals, nil,
			func(w *domain.WithdrawalRequest, id string) { w.ID = id }, log)
		r.Activations = NewCollection(store, keys.Activations, nil,
			func(p *domain.ActivationPayment, id string) { p.ID = id }, log)
		return r
	}

	r.Slots = NewCollection(store, keys.Slots,
		func() []domain.ParkingSlot { return DemoSlots(clock()) },
		func(s *domain.ParkingSlot, id string) { s.ID = id }, log)
	r.Bookings = NewCollection(store, keys.Bookings, nil,
		func(b *domain.Booking, id string) { b.ID = id }, log)
	return r
}
