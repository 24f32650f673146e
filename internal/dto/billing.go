package dto

import (
	"time"

	"markbook_backend/internal/models"
)

type CheckoutResponse struct {
	URL string `json:"url"`
}

type GrantPremiumRequest struct {
	// Lifetime grants never expire; otherwise Days controls the expiry.
	Lifetime bool `json:"lifetime"`
	Days     int  `json:"days" validate:"omitempty,gte=1"`
}

// EntitlementSnapshot is the subscription state returned by billing and
// admin endpoints.
type EntitlementSnapshot struct {
	ID                    string                    `json:"id"`
	Email                 string                    `json:"email"`
	FullName              string                    `json:"full_name"`
	SubscriptionPlan      models.SubscriptionPlan   `json:"subscription_plan"`
	SubscriptionStatus    models.SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time                `json:"subscription_expires_at,omitempty"`
	Entitled              bool                      `json:"entitled"`
	UpdatedAt             time.Time                 `json:"updated_at"`
}

func NewEntitlementSnapshot(u *models.User, entitled bool) EntitlementSnapshot {
	return EntitlementSnapshot{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		Entitled:              entitled,
		UpdatedAt:             u.UpdatedAt,
	}
}
