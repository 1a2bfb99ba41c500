package kernel

import (
	"regexp"

	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// e164Pattern matches phone numbers in E.164 format: a leading plus, a
// non-zero country code digit, and 10 to 15 digits total.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)

// ErrPhoneNumberIsNotConstructed is returned when using an improperly
// initialized PhoneNumber.
var ErrPhoneNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"phone number must be created via NewPhoneNumber constructor")

// PhoneNumber is a value object holding an SMS destination in E.164 format.
// Construction rejects anything that does not match the E.164 pattern, so a
// valid PhoneNumber can be handed to the SMS gateway without further checks.
type PhoneNumber struct {
	value string
	guard guard.ConstructorGuard
}

// NewPhoneNumber validates s against the E.164 pattern and returns the
// corresponding value object.
func NewPhoneNumber(s string) (PhoneNumber, error) {
	if s == "" {
		return PhoneNumber{}, errs.NewValueIsRequiredError("phone number")
	}
	if !e164Pattern.MatchString(s) {
		return PhoneNumber{}, errs.NewValueIsInvalidError("phone number is not in E.164 format")
	}

	return PhoneNumber{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the PhoneNumber was properly constructed.
func (p PhoneNumber) Validate() error {
	return p.guard.Validate(ErrPhoneNumberIsNotConstructed)
}

// String returns the E.164 representation.
func (p PhoneNumber) String() string {
	return p.value
}
