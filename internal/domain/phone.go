package domain

import (
	"regexp"
	"strings"

	dErrors "backoffice/pkg/domain-errors"
)

// PhoneRegion distinguishes the two validation regimes.
type PhoneRegion string

const (
	PhoneRegionKorea         PhoneRegion = "KR"
	PhoneRegionInternational PhoneRegion = "INT"
)

var (
	// Korean mobile format: three digits, four digits, four digits.
	koreanPhonePattern = regexp.MustCompile(`^\d{3}-\d{4}-\d{4}$`)
	// E.164-like: optional leading plus, 8 to 15 digits, no leading zero.
	internationalPhonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
)

// PhoneNumber is a validated phone number. The stored value is the trimmed
// input; formatting beyond whitespace trimming is preserved as supplied.
type PhoneNumber struct {
	value  string
	region PhoneRegion
}

// KoreanPhoneNumber validates raw against the DDD-DDDD-DDDD format.
func KoreanPhoneNumber(raw string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PhoneNumber{}, dErrors.New(dErrors.CodeInvalidInput, "phone number is required")
	}
	if !koreanPhonePattern.MatchString(trimmed) {
		return PhoneNumber{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid korean phone number format: %q", raw)
	}
	return PhoneNumber{value: trimmed, region: PhoneRegionKorea}, nil
}

// InternationalPhoneNumber validates raw as digits with an optional leading
// plus.
func InternationalPhoneNumber(raw string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PhoneNumber{}, dErrors.New(dErrors.CodeInvalidInput, "phone number is required")
	}
	if !internationalPhonePattern.MatchString(trimmed) {
		return PhoneNumber{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid international phone number format: %q", raw)
	}
	return PhoneNumber{value: trimmed, region: PhoneRegionInternational}, nil
}

// NewPhoneNumber dispatches on region. Used when rehydrating from storage.
func NewPhoneNumber(raw string, region PhoneRegion) (PhoneNumber, error) {
	switch region {
	case PhoneRegionKorea:
		return KoreanPhoneNumber(raw)
	case PhoneRegionInternational:
		return InternationalPhoneNumber(raw)
	default:
		return PhoneNumber{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown phone region: %q", region)
	}
}

// MustKoreanPhoneNumber panics on invalid input. Reserved for tests.
func MustKoreanPhoneNumber(raw string) PhoneNumber {
	p, err := KoreanPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// MustInternationalPhoneNumber panics on invalid input. Reserved for tests.
func MustInternationalPhoneNumber(raw string) PhoneNumber {
	p, err := InternationalPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p PhoneNumber) String() string      { return p.value }
func (p PhoneNumber) Region() PhoneRegion { return p.region }
func (p PhoneNumber) IsZero() bool        { return p.value == "" }
func (p PhoneNumber) IsKorean() bool      { return p.region == PhoneRegionKorea }

// Formatted returns the number as supplied (trimmed).
func (p PhoneNumber) Formatted() string { return p.value }

// Digits strips everything but digits.
func (p PhoneNumber) Digits() string {
	var b strings.Builder
	for _, r := range p.value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AreaCode returns the leading segment of a Korean number. The second return
// is false for international numbers, which carry no area code view.
func (p PhoneNumber) AreaCode() (string, bool) {
	if p.region != PhoneRegionKorea {
		return "", false
	}
	dash := strings.IndexByte(p.value, '-')
	if dash < 0 {
		return "", false
	}
	return p.value[:dash], true
}
