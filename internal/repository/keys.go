package repository

// Variants
const (
	VariantParking = "parking"
	VariantEarning = "earning"
)

// Keys names the storage key of each collection. Collections a variant does
// not use have an empty key.
type Keys struct {
	Session     string
	Slots       string
	Bookings    string
	Ads         string
	AdViews     string
	Referrals   string
	Withdrawals string
	Activations string
}

// KeysFor returns the storage layout of a variant
func KeysFor(variant string) Keys {
	if variant == VariantEarning {
		return Keys{
			Session:     "earning_auth",
			Ads:         "earn_ads",
			AdViews:     "earn_ad_views",
			Referrals:   "earn_referrals",
			Withdrawals: "earn_withdrawals",
			Activations: "earn_activations",
		}
	}
	return Keys{
		Session:  "parking_auth",
		Slots:    "parking_slots",
		Bookings: "parking_bookings",
	}
}
