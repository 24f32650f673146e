package services

import (
	"testing"
	"time"

	"markbook_backend/internal/config"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   map[string]*models.User
	updates int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByStripeCustomerID(customerID string) (*models.User, error) {
	for _, u := range r.users {
		if u.StripeCustomerID == customerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.updates++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll() (int64, error) { return int64(len(r.users)), nil }

func (r *fakeUserRepo) CountByPlan() (map[models.SubscriptionPlan]int64, error) {
	out := map[models.SubscriptionPlan]int64{}
	for _, u := range r.users {
		out[u.SubscriptionPlan]++
	}
	return out, nil
}

func (r *fakeUserRepo) CountCreatedSince(since time.Time) (int64, error) { return 0, nil }

type fakeActivity struct {
	entries []string
}

func (a *fakeActivity) Log(user *models.User, action, resource string, metadata map[string]interface{}) {
	a.entries = append(a.entries, action)
}

func (a *fakeActivity) GetRecent(limit int) ([]models.ActivityLog, error) { return nil, nil }

func newBillingFixture(users ...*models.User) (*fakeUserRepo, *fakeActivity, BillingService) {
	repo := newFakeUserRepo(users...)
	activity := &fakeActivity{}
	svc := NewBillingService(&config.Config{}, repo, activity)
	return repo, activity, svc
}

func freeUser(id string) *models.User {
	u := &models.User{
		FullName:           "Test Teacher",
		Email:              id + "@example.com",
		Role:               models.UserRoleTeacher,
		SubscriptionPlan:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}
	u.ID = id
	return u
}

func TestHandleCheckoutCompleted_GrantsPremium(t *testing.T) {
	repo, _, svc := newBillingFixture(freeUser("u1"))
	periodEnd := time.Now().Add(30 * 24 * time.Hour)

	err := svc.HandleCheckoutCompleted("u1", "cus_123", &periodEnd)
	require.NoError(t, err)

	u, _ := repo.FindByID("u1")
	assert.Equal(t, models.PlanPremium, u.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusActive, u.SubscriptionStatus)
	require.NotNil(t, u.SubscriptionExpiresAt)
	assert.True(t, u.SubscriptionExpiresAt.Equal(periodEnd))
	assert.Equal(t, "cus_123", u.StripeCustomerID)
}

func TestHandleCheckoutCompleted_DuplicateSkipsStateWrite(t *testing.T) {
	repo, _, svc := newBillingFixture(freeUser("u1"))
	first := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, svc.HandleCheckoutCompleted("u1", "cus_123", &first))

	// Redelivery with a different period must not clobber the stored expiry.
	later := first.Add(48 * time.Hour)
	require.NoError(t, svc.HandleCheckoutCompleted("u1", "cus_123", &later))

	u, _ := repo.FindByID("u1")
	assert.True(t, u.SubscriptionExpiresAt.Equal(first))
	assert.Equal(t, models.PlanPremium, u.SubscriptionPlan)
}

func TestHandleCheckoutCompleted_BackfillsCustomerIDOnDuplicate(t *testing.T) {
	u := freeUser("u1")
	u.SubscriptionPlan = models.PlanPremium
	u.SubscriptionStatus = models.SubscriptionStatusActive
	repo, _, svc := newBillingFixture(u)

	require.NoError(t, svc.HandleCheckoutCompleted("u1", "cus_999", nil))

	got, _ := repo.FindByID("u1")
	assert.Equal(t, "cus_999", got.StripeCustomerID)
	assert.Equal(t, models.PlanPremium, got.SubscriptionPlan)
}

func TestHandleCheckoutCompleted_UnknownUserAcknowledged(t *testing.T) {
	repo, _, svc := newBillingFixture()

	err := svc.HandleCheckoutCompleted("missing", "cus_123", nil)

	assert.NoError(t, err)
	assert.Zero(t, repo.updates)
}

func TestHandlePaymentSucceeded_RefreshesExpiry(t *testing.T) {
	u := freeUser("u1")
	u.SubscriptionPlan = models.PlanPremium
	u.SubscriptionStatus = models.SubscriptionStatusActive
	u.StripeCustomerID = "cus_123"
	old := time.Now().Add(24 * time.Hour)
	u.SubscriptionExpiresAt = &old
	repo, _, svc := newBillingFixture(u)

	renewed := old.Add(30 * 24 * time.Hour)
	require.NoError(t, svc.HandlePaymentSucceeded("cus_123", &renewed))

	got, _ := repo.FindByID("u1")
	assert.True(t, got.SubscriptionExpiresAt.Equal(renewed))
}

func TestHandlePaymentSucceeded_UnknownCustomerAcknowledged(t *testing.T) {
	repo, _, svc := newBillingFixture(freeUser("u1"))

	err := svc.HandlePaymentSucceeded("cus_unknown", nil)

	assert.NoError(t, err)
	assert.Zero(t, repo.updates)
}

func TestHandleSubscriptionDeleted_RevokesAndKeepsCustomerID(t *testing.T) {
	u := freeUser("u1")
	u.SubscriptionPlan = models.PlanPremium
	u.SubscriptionStatus = models.SubscriptionStatusActive
	u.StripeCustomerID = "cus_123"
	exp := time.Now().Add(24 * time.Hour)
	u.SubscriptionExpiresAt = &exp
	repo, _, svc := newBillingFixture(u)

	require.NoError(t, svc.HandleSubscriptionDeleted("cus_123"))

	got, _ := repo.FindByID("u1")
	assert.Equal(t, models.PlanFree, got.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusInactive, got.SubscriptionStatus)
	assert.Nil(t, got.SubscriptionExpiresAt)
	assert.Equal(t, "cus_123", got.StripeCustomerID)
}

func TestHandleSubscriptionDeleted_AlreadyRevokedSkips(t *testing.T) {
	u := freeUser("u1")
	u.StripeCustomerID = "cus_123"
	repo, _, svc := newBillingFixture(u)

	require.NoError(t, svc.HandleSubscriptionDeleted("cus_123"))
	assert.Zero(t, repo.updates)
}

// A payment event delivered after the subscription was already cancelled must
// not restore access: it may move the expiry but never the plan or status.
func TestReordering_LatePaymentAfterDeletionDoesNotRestoreAccess(t *testing.T) {
	u := freeUser("u1")
	u.SubscriptionPlan = models.PlanPremium
	u.SubscriptionStatus = models.SubscriptionStatusActive
	u.StripeCustomerID = "cus_123"
	repo, _, svc := newBillingFixture(u)

	require.NoError(t, svc.HandleSubscriptionDeleted("cus_123"))
	future := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, svc.HandlePaymentSucceeded("cus_123", &future))

	got, _ := repo.FindByID("u1")
	assert.Equal(t, models.PlanFree, got.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusInactive, got.SubscriptionStatus)

	guard := entitlement.NewGuard(entitlement.NewRegistry())
	assert.False(t, guard.IsEntitled(got))
}

func TestGrantPremium_Lifetime(t *testing.T) {
	repo, activity, svc := newBillingFixture(freeUser("u1"))
	admin := freeUser("admin")
	admin.Role = models.UserRoleAdmin

	granted, err := svc.GrantPremium(admin, "u1", true, 0)
	require.NoError(t, err)

	assert.Equal(t, models.PlanPremium, granted.SubscriptionPlan)
	assert.Equal(t, models.SubscriptionStatusActive, granted.SubscriptionStatus)
	assert.Nil(t, granted.SubscriptionExpiresAt)
	assert.Contains(t, activity.entries, "GRANT_PREMIUM")

	got, _ := repo.FindByID("u1")
	assert.Equal(t, models.PlanPremium, got.SubscriptionPlan)
}

func TestGrantPremium_Days(t *testing.T) {
	_, _, svc := newBillingFixture(freeUser("u1"))
	admin := freeUser("admin")
	admin.Role = models.UserRoleAdmin

	granted, err := svc.GrantPremium(admin, "u1", false, 30)
	require.NoError(t, err)

	require.NotNil(t, granted.SubscriptionExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), *granted.SubscriptionExpiresAt, time.Minute)
}

func TestGrantPremium_InvalidDays(t *testing.T) {
	_, _, svc := newBillingFixture(freeUser("u1"))

	_, err := svc.GrantPremium(freeUser("admin"), "u1", false, 0)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestGrantPremium_UnknownUser(t *testing.T) {
	_, _, svc := newBillingFixture()

	_, err := svc.GrantPremium(freeUser("admin"), "missing", true, 0)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRevokePremium_KeepsCustomerID(t *testing.T) {
	u := freeUser("u1")
	u.SubscriptionPlan = models.PlanPremium
	u.SubscriptionStatus = models.SubscriptionStatusActive
	u.StripeCustomerID = "cus_123"
	repo, activity, svc := newBillingFixture(u)
	admin := freeUser("admin")
	admin.Role = models.UserRoleAdmin

	revoked, err := svc.RevokePremium(admin, "u1")
	require.NoError(t, err)

	assert.Equal(t, models.PlanFree, revoked.SubscriptionPlan)
	assert.Nil(t, revoked.SubscriptionExpiresAt)
	assert.Contains(t, activity.entries, "REVOKE_PREMIUM")

	got, _ := repo.FindByID("u1")
	assert.Equal(t, "cus_123", got.StripeCustomerID)
}
