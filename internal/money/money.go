package money

import (
	"errors"
	"fmt"
	"strings"
)

// Amounts are stored as integer cents so two-decimal arithmetic stays exact.

var ErrBadAmount = errors.New("invalid amount")

// ParseCents converts a form value like "15", "15.5" or "15.00" into cents.
// At most two decimal places are accepted.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadAmount
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return 0, ErrBadAmount
	}
	var units int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, ErrBadAmount
		}
		units = units*10 + int64(r-'0')
		if units > 1<<40 {
			return 0, ErrBadAmount
		}
	}
	cents := units * 100
	// right-pad to two fractional digits
	for len(frac) < 2 {
		frac += "0"
	}
	mult := int64(10)
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, ErrBadAmount
		}
		cents += int64(r-'0') * mult
		mult /= 10
	}
	return cents, nil
}

// FormatCents renders cents as a plain decimal string, e.g. 1050 -> "10.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
