package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidEmail   ErrCode = "INVALID_EMAIL"
	ErrMissingQuery   ErrCode = "MISSING_QUERY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz-specific ─────────────────────────────────────────────────
	ErrQuestionsUnavailable ErrCode = "QUESTIONS_UNAVAILABLE"
	ErrSubmissionRejected   ErrCode = "SUBMISSION_REJECTED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidEmail:
		return "Please enter a valid email address."
	case ErrMissingQuery:
		return "Either email or userId is required."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "An account with this email already exists."
	case ErrQuestionsUnavailable:
		return "Quiz questions are currently unavailable. Please try again later."
	case ErrSubmissionRejected:
		return "Quiz submission could not be processed."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
