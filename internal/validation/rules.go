// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/passvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PrintableText validates that a string is valid UTF-8 without control characters.
var PrintableText = validation.NewStringRuleWithError(
	func(s string) bool {
		if !utf8.ValidString(s) {
			return false
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_printable_text", "must not contain control characters"),
)

// SecretBytes validates a plaintext secret held as bytes: it must be present and at most max bytes long.
func SecretBytes(max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		b, ok := value.([]byte)
		if !ok {
			return validation.NewError("validation_secret_type", "must be a byte slice")
		}
		if len(b) == 0 {
			return validation.NewError("validation_secret_required", "is required")
		}
		if len(b) > max {
			return validation.NewError("validation_secret_length", "is too long")
		}
		return nil
	})
}
