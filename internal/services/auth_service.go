package services

import (
	"fmt"

	"markbook_backend/internal/auth"
	"markbook_backend/internal/dto"
	"markbook_backend/internal/email"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetMe(userID string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	emails   email.Provider
	activity ActivityService
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager, emails email.Provider, activity ActivityService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		emails:   emails,
		activity: activity,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// New accounts start on the FREE baseline; only billing webhooks and
	// the admin override move them off it.
	user := &models.User{
		FullName:           req.FullName,
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               models.UserRoleTeacher,
		SubscriptionPlan:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}

	s.activity.Log(user, "USER_REGISTERED", user.ID, nil)
	s.sendWelcomeEmail(user)

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Log(user, "USER_LOGIN", user.ID, nil)

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) GetMe(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) sendWelcomeEmail(user *models.User) {
	msg := &email.Email{
		To:      []string{user.Email},
		Subject: "Welcome to Markbook",
		Body: fmt.Sprintf("Hi %s,\n\nYour Markbook account is ready. "+
			"Log in to start keeping your register, assessments and evidence in one place.\n", user.FullName),
	}
	if err := s.emails.Send(msg); err != nil {
		logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
	}
}
