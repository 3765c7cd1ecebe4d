package model

import "time"

// Tier represents a subscription tier reported by the server
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// UserProfile is the cached snapshot of the authenticated account. It is
// owned by the session manager, which replaces the whole snapshot from
// server responses; the balance is never computed client-side.
type UserProfile struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name,omitempty"`
	CreditsBalance    int       `json:"credits_balance"`
	SubscriptionTier  Tier      `json:"subscription_tier"`
	APIAccessUnlocked bool      `json:"api_access_unlocked"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasCredits returns true if the account can spend a credit
func (p *UserProfile) HasCredits() bool {
	return p != nil && p.CreditsBalance > 0
}

// DisplayName returns the full name, falling back to the email address
func (p *UserProfile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
