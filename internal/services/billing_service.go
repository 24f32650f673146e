package services

import (
	"fmt"
	"net/http"
	"time"

	"markbook_backend/internal/config"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
)

// BillingService owns the entitlement fields on the users row. Webhook
// events and the admin override are the only writers; everything else reads
// through the entitlement guard.
type BillingService interface {
	// CreateCheckoutSession starts a Stripe checkout for the PREMIUM plan and
	// returns the redirect URL. Creates and stores the Stripe customer if the
	// user has none yet. Checkout never grants access by itself; webhooks are
	// the sole automatic authority.
	CreateCheckoutSession(user *models.User) (string, error)

	// Webhook reconciler. Each handler is idempotent and correct under
	// arbitrary reordering and duplication; unresolvable references are
	// logged and acknowledged without a state change so the provider does
	// not retry forever.
	HandleCheckoutCompleted(userID, customerID string, periodEnd *time.Time) error
	HandlePaymentSucceeded(customerID string, periodEnd *time.Time) error
	HandleSubscriptionDeleted(customerID string) error

	// Admin override. Unconditional writes, last write wins by design.
	GrantPremium(adminUser *models.User, userID string, lifetime bool, days int) (*models.User, error)
	RevokePremium(adminUser *models.User, userID string) (*models.User, error)
}

type billingService struct {
	cfg      *config.Config
	userRepo repositories.UserRepository
	activity ActivityService
}

func NewBillingService(cfg *config.Config, userRepo repositories.UserRepository, activity ActivityService) BillingService {
	return &billingService{
		cfg:      cfg,
		userRepo: userRepo,
		activity: activity,
	}
}

func (s *billingService) CreateCheckoutSession(user *models.User) (string, error) {
	if s.cfg.Stripe.SecretKey == "" || s.cfg.Stripe.PricePremium == "" {
		return "", apperrors.New(apperrors.CodeExternalServiceError, "billing",
			"Stripe is not configured", http.StatusInternalServerError)
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		params := &stripe.CustomerParams{
			Email: stripe.String(user.Email),
		}
		params.AddMetadata("user_id", user.ID)

		cust, err := customer.New(params)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "billing",
				"Failed to create billing customer", http.StatusInternalServerError)
		}
		customerID = cust.ID

		user.StripeCustomerID = customerID
		if err := s.userRepo.Update(user); err != nil {
			// The webhook backfills the customer id on checkout completion,
			// so a failed save here is recoverable.
			logger.Warn("failed to save stripe customer id", "user_id", user.ID, "error", err)
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(s.cfg.Stripe.SuccessURL),
		CancelURL:  stripe.String(s.cfg.Stripe.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.cfg.Stripe.PricePremium),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("user_id", user.ID)

	sess, err := session.New(params)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "billing",
			"Failed to create checkout session", http.StatusInternalServerError)
	}

	return sess.URL, nil
}

// HandleCheckoutCompleted grants premium access. Idempotency is state-based:
// if the user already holds a live paid plan the plan/status/expiry write is
// skipped, but a missing customer id is still backfilled.
func (s *billingService) HandleCheckoutCompleted(userID, customerID string, periodEnd *time.Time) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("checkout.session.completed references unknown user",
				"user_id", userID, "customer_id", customerID)
			return nil
		}
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	if user.SubscriptionPlan != models.PlanFree && user.SubscriptionStatus == models.SubscriptionStatusActive {
		if user.StripeCustomerID == "" && customerID != "" {
			user.StripeCustomerID = customerID
			if err := s.userRepo.Update(user); err != nil {
				return fmt.Errorf("failed to backfill customer id: %w", err)
			}
		}
		logger.Info("checkout already applied, skipping", "user_id", userID)
		return nil
	}

	user.SubscriptionPlan = models.PlanPremium
	user.SubscriptionStatus = models.SubscriptionStatusActive
	user.SubscriptionExpiresAt = periodEnd
	if user.StripeCustomerID == "" && customerID != "" {
		user.StripeCustomerID = customerID
	}

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to grant premium: %w", err)
	}

	logger.Info("granted premium via checkout.session.completed",
		"user_id", userID, "expires_at", periodEnd)
	return nil
}

// HandlePaymentSucceeded refreshes the expiry from the renewed billing
// period. Always safe to reapply; last value wins. It deliberately does not
// touch plan or status, so a stale event cannot resurrect a revoked
// subscription.
func (s *billingService) HandlePaymentSucceeded(customerID string, periodEnd *time.Time) error {
	user, err := s.userRepo.FindByStripeCustomerID(customerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("invoice.payment_succeeded references unknown customer", "customer_id", customerID)
			return nil
		}
		return fmt.Errorf("failed to load user for customer %s: %w", customerID, err)
	}

	if periodEnd == nil {
		return nil
	}

	user.SubscriptionExpiresAt = periodEnd
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to refresh expiry: %w", err)
	}

	logger.Info("refreshed subscription expiry", "user_id", user.ID, "expires_at", periodEnd)
	return nil
}

// HandleSubscriptionDeleted revokes premium access, resetting the row to the
// FREE baseline. The customer id is kept so future events still resolve.
func (s *billingService) HandleSubscriptionDeleted(customerID string) error {
	user, err := s.userRepo.FindByStripeCustomerID(customerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("customer.subscription.deleted references unknown customer", "customer_id", customerID)
			return nil
		}
		return fmt.Errorf("failed to load user for customer %s: %w", customerID, err)
	}

	if user.SubscriptionPlan == models.PlanFree && user.SubscriptionStatus == models.SubscriptionStatusInactive {
		logger.Info("subscription already revoked, skipping", "user_id", user.ID)
		return nil
	}

	user.SubscriptionPlan = models.PlanFree
	user.SubscriptionStatus = models.SubscriptionStatusInactive
	user.SubscriptionExpiresAt = nil

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to revoke premium: %w", err)
	}

	logger.Info("revoked premium via customer.subscription.deleted", "user_id", user.ID)
	return nil
}

func (s *billingService) GrantPremium(adminUser *models.User, userID string, lifetime bool, days int) (*models.User, error) {
	if !lifetime && days < 1 {
		return nil, apperrors.ValidationError(map[string]string{
			"days": "Must be at least 1 when lifetime is false",
		})
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	user.SubscriptionPlan = models.PlanPremium
	user.SubscriptionStatus = models.SubscriptionStatusActive
	if lifetime {
		user.SubscriptionExpiresAt = nil
	} else {
		expiresAt := time.Now().UTC().AddDate(0, 0, days)
		user.SubscriptionExpiresAt = &expiresAt
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.activity.Log(adminUser, "GRANT_PREMIUM", user.ID, map[string]interface{}{
		"lifetime": lifetime,
		"days":     days,
		"email":    user.Email,
	})

	logger.Info("admin granted premium", "user_id", user.ID, "lifetime", lifetime,
		"expires_at", user.SubscriptionExpiresAt)
	return user, nil
}

func (s *billingService) RevokePremium(adminUser *models.User, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	// StripeCustomerID is intentionally left untouched.
	user.SubscriptionPlan = models.PlanFree
	user.SubscriptionStatus = models.SubscriptionStatusInactive
	user.SubscriptionExpiresAt = nil

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.activity.Log(adminUser, "REVOKE_PREMIUM", user.ID, map[string]interface{}{
		"email": user.Email,
	})

	logger.Info("admin revoked premium", "user_id", user.ID)
	return user, nil
}
