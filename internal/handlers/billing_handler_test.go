package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"markbook_backend/internal/config"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/models"
	"markbook_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test_secret"

type recordingBillingService struct {
	checkoutUserID     string
	checkoutCustomerID string
	checkoutPeriodEnd  *time.Time
	paymentCustomerID  string
	paymentPeriodEnd   *time.Time
	deletedCustomerID  string
	calls              int
}

func (s *recordingBillingService) CreateCheckoutSession(user *models.User) (string, error) {
	return "https://checkout.stripe.test/session", nil
}

func (s *recordingBillingService) HandleCheckoutCompleted(userID, customerID string, periodEnd *time.Time) error {
	s.calls++
	s.checkoutUserID = userID
	s.checkoutCustomerID = customerID
	s.checkoutPeriodEnd = periodEnd
	return nil
}

func (s *recordingBillingService) HandlePaymentSucceeded(customerID string, periodEnd *time.Time) error {
	s.calls++
	s.paymentCustomerID = customerID
	s.paymentPeriodEnd = periodEnd
	return nil
}

func (s *recordingBillingService) HandleSubscriptionDeleted(customerID string) error {
	s.calls++
	s.deletedCustomerID = customerID
	return nil
}

func (s *recordingBillingService) GrantPremium(adminUser *models.User, userID string, lifetime bool, days int) (*models.User, error) {
	return nil, nil
}

func (s *recordingBillingService) RevokePremium(adminUser *models.User, userID string) (*models.User, error) {
	return nil, nil
}

func newWebhookFixture(t *testing.T) (*recordingBillingService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Stripe.WebhookSecret = testWebhookSecret

	svc := &recordingBillingService{}
	guard := entitlement.NewGuard(entitlement.NewRegistry())
	h := NewBillingHandler(NewBaseHandler(validator.New()), svc, guard, cfg)
	h.retrieveSubscription = func(id string) (*stripe.Subscription, error) {
		return &stripe.Subscription{CurrentPeriodEnd: 1900000000}, nil
	}

	router := gin.New()
	router.POST("/api/v1/billing/webhook", h.Webhook)
	return svc, router
}

// signPayload builds a Stripe-Signature header the same way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string, at time.Time) string {
	signed := fmt.Sprintf("%d.%s", at.Unix(), payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(router *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_RejectsInvalidSignature(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{}}}`)

	w := postWebhook(router, payload, signPayload(payload, "whsec_wrong", time.Now()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestWebhook_RejectsMissingSignature(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{}}}`)

	w := postWebhook(router, payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestWebhook_CheckoutCompleted(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"customer": "cus_123",
			"subscription": "sub_1",
			"metadata": {"user_id": "user-42"}
		}}
	}`)

	w := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", svc.checkoutUserID)
	assert.Equal(t, "cus_123", svc.checkoutCustomerID)
	require.NotNil(t, svc.checkoutPeriodEnd)
	assert.Equal(t, int64(1900000000), svc.checkoutPeriodEnd.Unix())
}

func TestWebhook_PaymentSucceeded(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{
		"id": "evt_2",
		"type": "invoice.payment_succeeded",
		"data": {"object": {
			"id": "in_1",
			"customer": "cus_123",
			"subscription": "sub_1"
		}}
	}`)

	w := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cus_123", svc.paymentCustomerID)
	require.NotNil(t, svc.paymentPeriodEnd)
}

func TestWebhook_SubscriptionDeleted(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{
		"id": "evt_3",
		"type": "customer.subscription.deleted",
		"data": {"object": {
			"id": "sub_1",
			"customer": "cus_123"
		}}
	}`)

	w := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cus_123", svc.deletedCustomerID)
}

func TestWebhook_UnhandledEventAcknowledged(t *testing.T) {
	svc, router := newWebhookFixture(t)
	payload := []byte(`{"id":"evt_4","type":"invoice.created","data":{"object":{"id":"in_9"}}}`)

	w := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, svc.calls)
}
