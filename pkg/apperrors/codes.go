package apperrors

// ErrorCode identifies an application error kind independent of HTTP status.
type ErrorCode string

const (
	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// AuthN / AuthZ
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Billing / entitlement. PLAN_REQUIRED is deliberately distinct from
	// UNAUTHORIZED and FORBIDDEN: the caller is authenticated and allowed
	// to be here, their plan just does not cover the feature.
	CodePlanRequired     ErrorCode = "PLAN_REQUIRED"
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
)
