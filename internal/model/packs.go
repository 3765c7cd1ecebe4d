package model

// CheckoutTier identifies a purchasable credit pack on the checkout endpoint
type CheckoutTier string

const (
	CheckoutStarter  CheckoutTier = "starter"
	CheckoutStandard CheckoutTier = "standard"
	CheckoutPro      CheckoutTier = "pro"
	CheckoutBusiness CheckoutTier = "business"
)

// CreditPack describes a purchasable credit bundle shown in the upgrade
// dialog. Prices are display-only; the hosted checkout page is authoritative.
type CreditPack struct {
	Tier       CheckoutTier
	Name       string
	PriceCents int
	Credits    int
	UnlocksAPI bool
}

// CreditPacks returns the static pack catalogue, cheapest first
func CreditPacks() []CreditPack {
	return []CreditPack{
		{Tier: CheckoutStarter, Name: "Starter", PriceCents: 900, Credits: 20},
		{Tier: CheckoutStandard, Name: "Standard", PriceCents: 1900, Credits: 50},
		{Tier: CheckoutPro, Name: "Pro", PriceCents: 4900, Credits: 200, UnlocksAPI: true},
		{Tier: CheckoutBusiness, Name: "Business", PriceCents: 14900, Credits: 1000, UnlocksAPI: true},
	}
}

// ValidCheckoutTier reports whether the tier is known to the checkout endpoint
func ValidCheckoutTier(t CheckoutTier) bool {
	switch t {
	case CheckoutStarter, CheckoutStandard, CheckoutPro, CheckoutBusiness:
		return true
	}
	return false
}

// APIKey is the metadata record for a programmatic access key. The key value
// itself is only returned once at creation time.
type APIKey struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Prefix     string `json:"prefix"`
	IsActive   bool   `json:"is_active"`
	LastUsedAt string `json:"last_used_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}
