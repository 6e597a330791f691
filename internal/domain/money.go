package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	dErrors "backoffice/pkg/domain-errors"
)

// currencyFractionDigits maps ISO currency codes to their canonical number of
// fraction digits. Codes not listed here fall back to two digits.
var currencyFractionDigits = map[string]int32{
	"KRW": 0,
	"JPY": 0,
	"USD": 2,
	"EUR": 2,
	"GBP": 2,
}

const defaultFractionDigits int32 = 2

// Money is an immutable amount in a single currency. Amounts are never
// negative and are rounded half-up to the currency's fraction digits at
// construction. Every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and rounds. Negative amounts and empty currency codes
// are rejected.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "currency code is required")
	}
	if amount.IsNegative() {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "amount cannot be negative")
	}
	return Money{amount: amount.Round(fractionDigits(currency)), currency: currency}, nil
}

// MoneyFromString parses a decimal string amount. Used at trust boundaries
// where amounts arrive as JSON strings.
func MoneyFromString(amount, currency string) (Money, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "amount is not a valid decimal")
	}
	return NewMoney(parsed, currency)
}

// MoneyFromInt builds a Money from whole currency units.
func MoneyFromInt(amount int64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount), currency)
}

// MustMoney panics on invalid input. Reserved for constants and tests.
func MustMoney(amount int64, currency string) Money {
	m, err := MoneyFromInt(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney is the additive identity for the given currency.
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: strings.ToUpper(strings.TrimSpace(currency))}
}

func fractionDigits(currency string) int32 {
	if digits, ok := currencyFractionDigits[currency]; ok {
		return digits
	}
	return defaultFractionDigits
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return nil
}

// Add returns m + other. Fails on currency mismatch.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. Fails on currency mismatch and when the result
// would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "subtraction result cannot be negative")
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply scales the amount by factor and rounds to the currency's fraction
// digits. The factor's sign is deliberately unguarded: a negative factor can
// zero or invert magnitude.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{
		amount:   m.amount.Mul(factor).Round(fractionDigits(m.currency)),
		currency: m.currency,
	}
}

// GreaterThan reports m > other. Fails on currency mismatch.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual reports m >= other. Fails on currency mismatch.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// Equals reports value equality. Fails on currency mismatch, same as the
// arithmetic operations.
func (m Money) Equals(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.Equal(other.amount), nil
}

func (m Money) String() string {
	return m.amount.StringFixed(fractionDigits(m.currency)) + " " + m.currency
}
