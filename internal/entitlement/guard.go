package entitlement

import (
	"time"

	"markbook_backend/internal/models"
)

// Guard answers access questions from an already-loaded user record. It is
// pure: no I/O, no side effects, safe to call on every request. The clock is
// injectable so expiry behaviour is testable.
type Guard struct {
	registry *Registry
	now      func() time.Time
}

func NewGuard(registry *Registry) *Guard {
	return &Guard{registry: registry, now: time.Now}
}

// NewGuardAt builds a guard with a fixed clock. Test use.
func NewGuardAt(registry *Registry, now func() time.Time) *Guard {
	return &Guard{registry: registry, now: now}
}

// IsEntitled reports whether the user has any paid entitlement. Admins
// always pass. A FREE plan never grants access regardless of status or
// expiry; a paid plan grants access only while ACTIVE and unexpired
// (nil expiry means a lifetime grant).
func (g *Guard) IsEntitled(user *models.User) bool {
	if user == nil {
		return false
	}
	if user.Role == models.UserRoleAdmin {
		return true
	}
	if user.SubscriptionPlan == models.PlanFree {
		return false
	}
	if user.SubscriptionStatus != models.SubscriptionStatusActive {
		return false
	}
	if user.SubscriptionExpiresAt != nil && !user.SubscriptionExpiresAt.After(g.now()) {
		return false
	}
	return true
}

// HasFeature reports whether the user may use the named feature. Admins
// always pass. Unknown feature keys fail closed. For everyone else the plan
// must be on the feature's allow-list and the entitlement itself must be
// live (status and expiry still apply).
func (g *Guard) HasFeature(user *models.User, featureKey string) bool {
	if user == nil {
		return false
	}
	if user.Role == models.UserRoleAdmin {
		return true
	}
	if !g.registry.Allows(featureKey, user.SubscriptionPlan) {
		return false
	}
	return g.IsEntitled(user)
}
