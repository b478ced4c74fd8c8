package validator

import "errors"

var (
	// ErrValidationFailed matches any ValidationErrors.
	ErrValidationFailed = errors.New("validation failed")

	ErrFieldRequired = errors.New("field is required")
	ErrInvalidLength = errors.New("invalid length")
	ErrInvalidFormat = errors.New("invalid format")
	ErrMismatch      = errors.New("values do not match")
)

const (
	keyRequired   = "validation.required"
	keyMinLength  = "validation.min_length"
	keyMaxLength  = "validation.max_length"
	keyPattern    = "validation.regex_pattern"
	keyNotPattern = "validation.regex_not_pattern"
	keyMismatch   = "validation.mismatch"
)

// kinds maps a translation key to the sentinel a ValidationError unwraps to.
var kinds = map[string]error{
	keyRequired:   ErrFieldRequired,
	keyMinLength:  ErrInvalidLength,
	keyMaxLength:  ErrInvalidLength,
	keyPattern:    ErrInvalidFormat,
	keyNotPattern: ErrInvalidFormat,
	keyMismatch:   ErrMismatch,
}
