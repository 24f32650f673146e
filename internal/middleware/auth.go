package middleware

import (
	"strings"

	"markbook_backend/internal/auth"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys set by AuthMiddleware.
	ContextUserIDKey = "userID"
	ContextUserKey   = "currentUser"
)

// AuthMiddleware validates the Bearer token and loads the authenticated user
// into the gin context. The fresh load matters: entitlement checks must see
// the current subscription state, not claims baked into an old token.
func AuthMiddleware(tokens *auth.TokenManager, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing or malformed Authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.NewUnauthorizedError("Account no longer exists"))
			} else {
				logger.CtxWithError(c.Request.Context(), "failed to load authenticated user", err)
				apperrors.HandleError(c, apperrors.InternalError(err))
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// RequireAdmin allows only ADMIN accounts past. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			c.Abort()
			return
		}
		if user.Role != models.UserRoleAdmin {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
