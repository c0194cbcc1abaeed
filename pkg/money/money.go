// Package money holds monetary amounts as integer cents so that running
// balances folded over many days never accumulate floating-point drift.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents. It may be negative: balance adjustments are
// signed, and a projected running balance can drop below zero.
type Money int64

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a user-entered decimal string to Money. Both dot and comma
// decimal separators are accepted. Anything beyond the second decimal digit
// is rounded half-up. Item and override amounts must be strictly positive,
// so Parse rejects zero, negatives, and explicit signs.
func Parse(s string) (Money, error) {
	m, err := ParseSigned(s)
	if err != nil {
		return 0, err
	}
	if m <= 0 {
		return 0, ErrInvalidAmount
	}
	return m, nil
}

// ParseSigned is Parse for amounts that may legitimately be negative or
// zero, such as balance adjustment pins.
func ParseSigned(s string) (Money, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// iv*100 must leave room for up to 99 fractional cents.
	const maxSafe = (math.MaxInt64 - 99) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return Money(cents), nil
}

// FromDollars converts a decimal dollar value (as carried in the remote
// API's JSON payloads) to cents, rounding half away from zero.
func FromDollars(d float64) Money {
	return Money(math.Round(d * 100))
}

// Dollars returns the decimal dollar value for JSON payloads and display.
func (m Money) Dollars() float64 {
	return float64(m) / 100.0
}

// String renders the amount as dollars with a leading sign for negative
// values, e.g. "$12.34" or "-$150.00".
func (m Money) String() string {
	abs := int64(m)
	sign := ""
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s$%d.%02d", sign, abs/100, abs%100)
}
