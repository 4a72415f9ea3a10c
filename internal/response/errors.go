package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation          ErrCode = "VALIDATION_ERROR"
	ErrInvalidID           ErrCode = "INVALID_ID"
	ErrInvalidPayload      ErrCode = "INVALID_PAYLOAD"
	ErrUnknownField        ErrCode = "UNKNOWN_FIELD"
	ErrUnknownCourse       ErrCode = "UNKNOWN_COURSE"
	ErrUnknownPayment      ErrCode = "UNKNOWN_PAYMENT_METHOD"
	ErrFieldTooLong        ErrCode = "FIELD_TOO_LONG"
	ErrRegistrationInvalid ErrCode = "REGISTRATION_INVALID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"

	// ─── Payment ───────────────────────────────────────────────────────
	ErrPaymentFailed ErrCode = "PAYMENT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrUnknownField:
		return "Unknown registration field."
	case ErrUnknownCourse:
		return "The selected course does not exist."
	case ErrUnknownPayment:
		return "The selected payment method does not exist."
	case ErrFieldTooLong:
		return "The value is too long for this field."
	case ErrRegistrationInvalid:
		return "The registration form is incomplete."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrSessionNotFound:
		return "Registration session not found or expired."

	// ─── Payment ───────────────────────────────────────────────────────
	case ErrPaymentFailed:
		return "There was an error processing your payment. Please try again."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
