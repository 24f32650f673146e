package models

import "time"

// User carries the entitlement state inline: plan, status, expiry and the
// Stripe customer reference live on the users row and are read on every
// authenticated request that needs an entitlement decision.
type User struct {
	BaseModel
	FullName     string   `gorm:"size:255;not null" json:"full_name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'TEACHER'" json:"role"`

	SubscriptionPlan      SubscriptionPlan   `gorm:"type:varchar(50);not null;default:'FREE'" json:"subscription_plan"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:varchar(50);not null;default:'INACTIVE'" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `json:"subscription_expires_at"`
	// Set the first time a checkout completes, stable thereafter. Never
	// cleared by webhook reconciliation.
	StripeCustomerID string `gorm:"size:255;uniqueIndex;default:null" json:"-"`
}
