//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseOrderID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseOrderID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE orders;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseOrderID(input)

		if err == nil {
			roundTrip, err2 := ParseOrderID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}

		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseAllIDs ensures all ID types validate identically: they share one
// underlying parser, so acceptance must never diverge.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errMember := ParseMemberID(input)
		_, errOrder := ParseOrderID(input)
		_, errPayment := ParsePaymentID(input)

		if (errMember == nil) != (errOrder == nil) || (errOrder == nil) != (errPayment == nil) {
			t.Error("inconsistent parsing across ID types")
		}
	})
}
