package utils

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatCardNumberExamples(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"4242424242424242", "4242 4242 4242 4242"},
		{"4242 4242 4242 4242", "4242 4242 4242 4242"},
		{"4242-4242-4242-4242", "4242 4242 4242 4242"},
		{"424242", "4242 42"},
		{"", ""},
		{"4111x1111y1111z1111", "4111 1111 1111 1111"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := FormatCardNumber(tc.input); got != tc.expected {
				t.Errorf("FormatCardNumber(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatCardExpiryExamples(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1227", "12/27"},
		{"12/27", "12/27"},
		{"927", "09/27"},
		{"9/27", "09/27"},
		{"1", "1"},
		{"2", "02"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := FormatCardExpiry(tc.input); got != tc.expected {
				t.Errorf("FormatCardExpiry(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestValidCardNumber(t *testing.T) {
	// Standard test card numbers pass Luhn.
	valid := []string{
		"4242 4242 4242 4242",
		"4111111111111111",
		"5500 0000 0000 0004",
	}
	for _, number := range valid {
		if !ValidCardNumber(number) {
			t.Errorf("ValidCardNumber(%q) = false, want true", number)
		}
	}

	invalid := []string{
		"4242 4242 4242 4241",
		"1234",
		"",
		"4111 1111 1111 1112",
	}
	for _, number := range invalid {
		if ValidCardNumber(number) {
			t.Errorf("ValidCardNumber(%q) = true, want false", number)
		}
	}
}

func TestValidCardExpiry(t *testing.T) {
	tests := []struct {
		expiry string
		want   bool
	}{
		{"12/27", true},
		{"01/30", true},
		{"00/27", false},
		{"13/27", false},
		{"127", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := ValidCardExpiry(tc.expiry); got != tc.want {
			t.Errorf("ValidCardExpiry(%q) = %v, want %v", tc.expiry, got, tc.want)
		}
	}
}

// Card formatting normalization properties: grouping preserves digits,
// output is stable under reapplication, and expiry months always land in
// a valid range after zero padding.
func TestCardFormattingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	digitGen := gen.RegexMatch(`[0-9]{1,25}`)

	properties.Property("FormatCardNumber preserves digits up to 19", prop.ForAll(
		func(digits string) bool {
			formatted := FormatCardNumber(digits)
			stripped := DigitsOnly(formatted)
			want := digits
			if len(want) > 19 {
				want = want[:19]
			}
			return stripped == want
		},
		digitGen,
	))

	properties.Property("FormatCardNumber groups by four", prop.ForAll(
		func(digits string) bool {
			formatted := FormatCardNumber(digits)
			for i, group := range strings.Split(formatted, " ") {
				if group == "" && formatted == "" {
					continue
				}
				if len(group) > 4 {
					return false
				}
				// Only the last group may be short.
				if len(group) < 4 && i != strings.Count(formatted, " ") {
					return false
				}
			}
			return true
		},
		digitGen,
	))

	properties.Property("FormatCardNumber is idempotent", prop.ForAll(
		func(digits string) bool {
			once := FormatCardNumber(digits)
			return FormatCardNumber(once) == once
		},
		digitGen,
	))

	properties.Property("FormatCardExpiry yields a real month for MMYY input", prop.ForAll(
		func(month, year int) bool {
			input := twoDigits(month) + twoDigits(year)
			return ValidCardExpiry(FormatCardExpiry(input))
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 99),
	))

	properties.TestingRun(t)
}

func twoDigits(n int) string {
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
