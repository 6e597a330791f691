package domain

import (
	"regexp"
	"strings"

	dErrors "backoffice/pkg/domain-errors"
)

// emailPattern validates the normalized (trimmed, lower-cased) form, so it
// only needs lower-case letter classes.
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email is a validated, normalized e-mail address. Raw input is trimmed and
// lower-cased before validation, so two spellings of the same address compare
// equal.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid email format: %q", raw)
	}
	return Email{value: normalized}, nil
}

// MustEmail panics on invalid input. Reserved for tests.
func MustEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) String() string { return e.value }

// IsZero reports whether the value was never constructed through NewEmail.
func (e Email) IsZero() bool { return e.value == "" }

// LocalPart returns everything before the @.
func (e Email) LocalPart() string {
	at := strings.IndexByte(e.value, '@')
	if at < 0 {
		return e.value
	}
	return e.value[:at]
}

// Domain returns everything after the @.
func (e Email) Domain() string {
	at := strings.IndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[at+1:]
}

// HasDomain reports whether the address belongs to the given domain,
// case-insensitively.
func (e Email) HasDomain(domain string) bool {
	return e.Domain() == strings.ToLower(strings.TrimSpace(domain))
}
