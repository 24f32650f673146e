package services

import (
	"testing"

	"markbook_backend/internal/auth"
	"markbook_backend/internal/dto"
	"markbook_backend/internal/email"
	"markbook_backend/internal/models"
	"markbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailProvider struct {
	sent []*email.Email
	fail bool
}

func (p *fakeEmailProvider) Send(msg *email.Email) error {
	if p.fail {
		return assert.AnError
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakeEmailProvider) Validate() error { return nil }

func newAuthFixture(emails *fakeEmailProvider, users ...*models.User) (*fakeUserRepo, AuthService) {
	repo := newFakeUserRepo(users...)
	tokens := auth.NewTokenManager("test-secret", 60)
	svc := NewAuthService(repo, tokens, emails, &fakeActivity{})
	return repo, svc
}

func TestRegister_CreatesFreeInactiveTeacher(t *testing.T) {
	emails := &fakeEmailProvider{}
	repo, svc := newAuthFixture(emails)

	resp, err := svc.Register(&dto.RegisterRequest{
		FullName: "New Teacher",
		Email:    "teacher@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.UserRoleTeacher, resp.User.Role)
	assert.Equal(t, models.PlanFree, resp.User.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusInactive, resp.User.SubscriptionStatus)
	assert.Nil(t, resp.User.SubscriptionExpiresAt)

	stored, err := repo.FindByEmail("teacher@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Len(t, emails.sent, 1)
}

func TestRegister_FailedEmailDoesNotFailRegistration(t *testing.T) {
	_, svc := newAuthFixture(&fakeEmailProvider{fail: true})

	_, err := svc.Register(&dto.RegisterRequest{
		FullName: "New Teacher",
		Email:    "teacher@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := freeUser("u1")
	existing.Email = "teacher@example.com"
	_, svc := newAuthFixture(&fakeEmailProvider{}, existing)

	_, err := svc.Register(&dto.RegisterRequest{
		FullName: "New Teacher",
		Email:    "teacher@example.com",
		Password: "password123",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := freeUser("u1")
	user.Email = "teacher@example.com"
	user.PasswordHash = hash
	_, svc := newAuthFixture(&fakeEmailProvider{}, user)

	resp, err := svc.Login(&dto.LoginRequest{Email: "teacher@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := freeUser("u1")
	user.Email = "teacher@example.com"
	user.PasswordHash = hash
	_, svc := newAuthFixture(&fakeEmailProvider{}, user)

	_, err = svc.Login(&dto.LoginRequest{Email: "teacher@example.com", Password: "wrong"})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}

func TestLogin_UnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	_, svc := newAuthFixture(&fakeEmailProvider{})

	_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}
