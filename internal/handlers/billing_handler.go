package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"markbook_backend/internal/config"
	"markbook_backend/internal/dto"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/services"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Stripe recommends capping webhook bodies at 64KB.
const maxWebhookBody = 65536

type BillingHandler struct {
	*BaseHandler
	billingService services.BillingService
	guard          *entitlement.Guard
	cfg            *config.Config

	// Overridable in tests; fetches the subscription to resolve the
	// current period end.
	retrieveSubscription func(id string) (*stripe.Subscription, error)
}

func NewBillingHandler(base *BaseHandler, billingService services.BillingService, guard *entitlement.Guard, cfg *config.Config) *BillingHandler {
	return &BillingHandler{
		BaseHandler:    base,
		billingService: billingService,
		guard:          guard,
		cfg:            cfg,
		retrieveSubscription: func(id string) (*stripe.Subscription, error) {
			return subscription.Get(id, nil)
		},
	}
}

func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	billing := rg.Group("/billing")
	{
		billing.POST("/webhook", h.Webhook)
		billing.POST("/checkout", authRequired, h.Checkout)
		billing.GET("/status", authRequired, h.Status)
	}
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	url, err := h.billingService.CreateCheckoutSession(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}

func (h *BillingHandler) Status(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewEntitlementSnapshot(user, h.guard.IsEntitled(user)))
}

// Webhook receives Stripe events. The signature is verified over the raw
// body; a bad signature gets 400 and nothing else happens. Once verified the
// response is always 200: handler failures are logged, not surfaced, so the
// provider does not retry an event we cannot process.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read request body"))
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, c.GetHeader("Stripe-Signature"),
		h.cfg.Stripe.WebhookSecret, webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "webhook signature verification failed", "error", err)
		apperrors.HandleError(c, apperrors.ErrInvalidWebhookSignature)
		return
	}

	if err := h.dispatch(&event); err != nil {
		logger.CtxWithError(c.Request.Context(), "webhook handler failed", err, "type", string(event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *BillingHandler) dispatch(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := unmarshalEvent(event, &sess); err != nil {
			return err
		}
		userID := sess.Metadata["user_id"]
		if userID == "" {
			userID = sess.ClientReferenceID
		}
		var customerID string
		if sess.Customer != nil {
			customerID = sess.Customer.ID
		}
		var periodEnd *time.Time
		if sess.Subscription != nil {
			periodEnd = h.subscriptionPeriodEnd(sess.Subscription.ID)
		}
		return h.billingService.HandleCheckoutCompleted(userID, customerID, periodEnd)

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := unmarshalEvent(event, &inv); err != nil {
			return err
		}
		if inv.Customer == nil {
			logger.Warn("invoice without customer, ignoring", "event_id", event.ID)
			return nil
		}
		var periodEnd *time.Time
		if inv.Subscription != nil {
			periodEnd = h.subscriptionPeriodEnd(inv.Subscription.ID)
		}
		return h.billingService.HandlePaymentSucceeded(inv.Customer.ID, periodEnd)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := unmarshalEvent(event, &sub); err != nil {
			return err
		}
		if sub.Customer == nil {
			logger.Warn("subscription without customer, ignoring", "event_id", event.ID)
			return nil
		}
		return h.billingService.HandleSubscriptionDeleted(sub.Customer.ID)

	default:
		// Unhandled event kinds are acknowledged without action.
		logger.Debug("ignoring webhook event", "type", string(event.Type))
		return nil
	}
}

func (h *BillingHandler) subscriptionPeriodEnd(subID string) *time.Time {
	if subID == "" {
		return nil
	}
	sub, err := h.retrieveSubscription(subID)
	if err != nil {
		logger.Warn("failed to fetch subscription for period end", "subscription_id", subID, "error", err)
		return nil
	}
	if sub.CurrentPeriodEnd == 0 {
		return nil
	}
	t := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	return &t
}

func unmarshalEvent(event *stripe.Event, dst interface{}) error {
	return json.Unmarshal(event.Data.Raw, dst)
}
