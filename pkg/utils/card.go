package utils

import (
	"fmt"
	"strings"
)

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatCardNumber groups a card number into blocks of four, matching the
// deposit form's display format. Input may already contain spaces or
// dashes; anything beyond 19 digits is truncated.
func FormatCardNumber(input string) string {
	digits := DigitsOnly(input)
	if len(digits) > 19 {
		digits = digits[:19]
	}

	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatCardExpiry normalizes an expiry entry to MM/YY. Accepts "MMYY",
// "M/YY" and "MM/YY"; a leading single month digit above 1 is zero-padded.
func FormatCardExpiry(input string) string {
	digits := DigitsOnly(input)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 1 && digits[0] >= '2' && digits[0] <= '9' {
		digits = "0" + digits
		if len(digits) > 4 {
			digits = digits[:4]
		}
	}
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// ValidCardNumber reports whether the card number passes the Luhn check
// and has a plausible length.
func ValidCardNumber(input string) bool {
	digits := DigitsOnly(input)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidCardExpiry reports whether an MM/YY expiry has a real month.
func ValidCardExpiry(expiry string) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	var month int
	if _, err := fmt.Sscanf(parts[0], "%2d", &month); err != nil {
		return false
	}
	return month >= 1 && month <= 12
}
