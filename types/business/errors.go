package business

import "fmt"

// ValidationErrorKind enumerates the locally detected failures. None of
// these ever reach the network: a mutation whose intent fails validation is
// returned synchronously without a broadcast attempt.
type ValidationErrorKind string

const (
	DuplicateKey     ValidationErrorKind = "duplicate_key"
	DuplicateAccount ValidationErrorKind = "duplicate_account"
	EmptyIdentifier  ValidationErrorKind = "empty_identifier"
	InvalidWeight    ValidationErrorKind = "invalid_weight"
	InvalidThreshold ValidationErrorKind = "invalid_threshold"
	NotAKey          ValidationErrorKind = "not_a_key"
	MemberNotFound   ValidationErrorKind = "member_not_found"
	LevelMismatch    ValidationErrorKind = "level_mismatch"
)

// ValidationError is a locally detected rejection of an edit intent.
type ValidationError struct {
	Kind    ValidationErrorKind `json:"kind"`
	Field   string              `json:"field"`
	Message string              `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(kind ValidationErrorKind, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// BroadcastErrorKind enumerates the stable classifications of a failed
// broadcast. Every raw failure shape the node or the signer can produce maps
// to exactly one of these.
type BroadcastErrorKind string

const (
	UserRejected      BroadcastErrorKind = "user_rejected"
	RateLimited       BroadcastErrorKind = "rate_limited"
	DanglingReference BroadcastErrorKind = "dangling_reference"
	MissingOwnerAuth  BroadcastErrorKind = "missing_owner_auth"
	InvalidKey        BroadcastErrorKind = "invalid_key"
	UnknownError      BroadcastErrorKind = "unknown"
)

// ClassifiedError is the stable result of classifying a raw broadcast
// failure: a kind the caller can branch on plus a short human-readable
// sentence safe to show directly.
type ClassifiedError struct {
	Kind    BroadcastErrorKind `json:"kind"`
	Message string             `json:"message"`
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("broadcast failed (%s): %s", e.Kind, e.Message)
}
