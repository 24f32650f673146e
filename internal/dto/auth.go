package dto

import (
	"time"

	"markbook_backend/internal/models"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID                    string                    `json:"id"`
	FullName              string                    `json:"full_name"`
	Email                 string                    `json:"email"`
	Role                  models.UserRole           `json:"role"`
	SubscriptionPlan      models.SubscriptionPlan   `json:"subscription_plan"`
	SubscriptionStatus    models.SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time                `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time                 `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		FullName:              u.FullName,
		Email:                 u.Email,
		Role:                  u.Role,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:             u.CreatedAt,
	}
}
