package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the markbook domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrPlanRequired is the entitlement-denied error. 402 keeps it
// distinguishable from authentication (401) and role (403) failures so
// clients can render an upgrade prompt.
var ErrPlanRequired = New(
	CodePlanRequired,
	"billing",
	"Upgrade to Premium to access this feature",
	http.StatusPaymentRequired,
)

// ErrInvalidWebhookSignature rejects unverifiable payment-provider payloads
// before any state change.
var ErrInvalidWebhookSignature = New(
	CodeInvalidSignature,
	"billing",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailTaken = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

// ErrUploadLimitReached is returned when a FREE-plan user hits the upload cap.
var ErrUploadLimitReached = New(
	CodeLimitExceeded,
	"evidence",
	"Upload limit reached for the free plan",
	http.StatusPaymentRequired,
)
