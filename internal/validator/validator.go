// Package validator collects field-level validation failures and registers
// custom validation functions with Gin's binding engine.
package validator

import (
	"regexp"
	"unicode/utf8"

	apperrors "fittrack/internal/errors"
)

// EmailRX matches a standard email address (local-part/domain, RFC 5322 lite).
var EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Validator accumulates failures during a single validation pass without
// stopping at the first one. The zero value is ready to use.
type Validator struct {
	errors []apperrors.FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Check records (field, message) when violated is true. The condition always
// describes the invalid case.
func (v *Validator) Check(violated bool, field, message string) {
	if violated {
		v.errors = append(v.errors, apperrors.FieldError{Field: field, Message: message})
	}
}

// Valid reports whether no failures were recorded.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the recorded failures in insertion order.
func (v *Validator) Errors() []apperrors.FieldError {
	out := make([]apperrors.FieldError, len(v.errors))
	copy(out, v.errors)
	return out
}

// Err returns nil when valid, otherwise an ErrValidation carrying every failure.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.WithFields(apperrors.ErrValidation, v.Errors())
}

// Matches reports whether value matches rx.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// MinChars reports whether value has at least n characters (runes, not bytes).
func MinChars(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// MaxChars reports whether value has at most n characters.
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

// OutOfRange reports whether a non-nil value lies outside [lo, hi].
// A nil value is never out of range.
func OutOfRange(value *int, lo, hi int) bool {
	return value != nil && (*value < lo || *value > hi)
}

// PermittedValue reports whether value is one of permitted.
func PermittedValue[T comparable](value T, permitted ...T) bool {
	for _, p := range permitted {
		if value == p {
			return true
		}
	}
	return false
}
