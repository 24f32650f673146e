package middleware

import (
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/logger"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RequireFeature gates a route behind a premium feature key. Denials return
// 402 PLAN_REQUIRED so clients can distinguish "upgrade needed" from auth
// failures. Must run after AuthMiddleware.
func RequireFeature(guard *entitlement.Guard, featureKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			c.Abort()
			return
		}

		if !guard.HasFeature(user, featureKey) {
			logger.CtxInfo(c.Request.Context(), "feature access denied",
				"feature", featureKey,
				"plan", user.SubscriptionPlan,
				"status", user.SubscriptionStatus,
			)
			apperrors.HandleError(c, apperrors.ErrPlanRequired)
			c.Abort()
			return
		}

		c.Next()
	}
}
