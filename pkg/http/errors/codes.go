package errors

// Error codes for standardized error responses.
const (
	// Validation errors
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeValidationFailed  = "validation_failed"
	ErrCodeIncompleteAnswers = "incomplete_answers"

	// Entitlement errors
	ErrCodeEntitlementRequired = "entitlement_required"

	// Payment errors
	ErrCodePaymentNotConfigured = "payment_not_configured"
	ErrCodeCheckoutFailed       = "checkout_failed"
	ErrCodeInvalidSignature     = "invalid_signature"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Server errors
	ErrCodeInternalError     = "internal_error"
	ErrCodeGenerationFailed  = "generation_failed"
	ErrCodeCertificateFailed = "certificate_failed"
)
