// Package validation provides the input rules shared by the authentication use cases.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	apperrors "github.com/allisson/authcore/internal/errors"
)

// MaxIdentityLength bounds usernames and email addresses used as lockout identities.
const MaxIdentityLength = 254

// WrapValidationError wraps validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ClientIP validates an IPv4 or IPv6 client address.
var ClientIP = []validation.Rule{validation.Required, is.IP}

// Identity validates a username or email used to key failed login attempts.
var Identity = []validation.Rule{
	validation.Required,
	NotBlank,
	validation.RuneLength(1, MaxIdentityLength),
}
