package cli

import (
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatUSDExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{1, "$1.00"},
		{10, "$10.00"},
		{100, "$100.00"},
		{1000, "$1,000.00"},
		{10000, "$10,000.00"},
		{100000, "$100,000.00"},
		{1000000, "$1,000,000.00"},
		{-1234.56, "-$1,234.56"},
		{12345678.90, "$12,345,678.90"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatUSD(tc.amount)
			if result != tc.expected {
				t.Errorf("FormatUSD(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

// For any amount, FormatUSD should carry the $ sign, exactly two decimal
// places, western three-digit grouping, and preserve the value when
// parsed back.
func TestUSDFormattingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatUSD produces valid western format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}
			if math.Abs(amount) > 1e15 {
				return true
			}

			formatted := FormatUSD(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else {
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", amount, formatted)
					return false
				}
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			numPart := strings.TrimPrefix(formatted, "-")
			numPart = strings.TrimPrefix(numPart, "$")
			numPart = strings.Split(numPart, ".")[0]

			westernPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)
			if !westernPattern.MatchString(numPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatUSD preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatUSD(amount)
			parsed := parseUSD(formatted)

			roundedAmount := math.Round(amount*100) / 100
			return math.Abs(parsed-roundedAmount) <= 0.01
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatCompact uses correct units", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatCompact(amount)
			absAmount := math.Abs(amount)

			if absAmount >= 1000000 {
				return strings.HasSuffix(formatted, "M")
			} else if absAmount >= 1000 {
				return strings.HasSuffix(formatted, "K")
			}
			return strings.HasPrefix(formatted, "$") || strings.HasPrefix(formatted, "-$")
		},
		gen.Float64Range(-1e10, 1e10),
	))

	properties.TestingRun(t)
}

// parseUSD parses a formatted dollar string back to float64.
func parseUSD(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	var parsed float64
	for i, c := range s {
		if c == '.' {
			decPart := s[i+1:]
			for j, d := range decPart {
				if d >= '0' && d <= '9' {
					parsed += float64(d-'0') / math.Pow(10, float64(j+1))
				}
			}
			break
		}
		if c >= '0' && c <= '9' {
			parsed = parsed*10 + float64(c-'0')
		}
	}

	if negative {
		parsed = -parsed
	}
	return parsed
}

func TestFormatPercentExamples(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{0, "0.00%"},
		{1.5, "+1.50%"},
		{-2.5, "-2.50%"},
		{100, "+100.00%"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if result := FormatPercent(tc.value); result != tc.expected {
				t.Errorf("FormatPercent(%f) = %s, want %s", tc.value, result, tc.expected)
			}
		})
	}
}

func TestFormatYearMonth(t *testing.T) {
	testCases := []struct {
		year, month int
		expected    string
	}{
		{2026, 1, "Jan 2026"},
		{2025, 12, "Dec 2025"},
		{2026, 0, "-"},
		{2026, 13, "-"},
	}
	for _, tc := range testCases {
		if result := FormatYearMonth(tc.year, tc.month); result != tc.expected {
			t.Errorf("FormatYearMonth(%d, %d) = %s, want %s", tc.year, tc.month, result, tc.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{5*time.Minute + 10*time.Second, "5m 10s"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{49 * time.Hour, "2d 1h"},
	}
	for _, tc := range testCases {
		if result := FormatDuration(tc.d); result != tc.expected {
			t.Errorf("FormatDuration(%v) = %s, want %s", tc.d, result, tc.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("abcdefghij", 8); got != "abcde..." {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("short", 8); got != "short" {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestFormatUnixZeroIsDash(t *testing.T) {
	if got := FormatUnix(0); got != "-" {
		t.Errorf("FormatUnix(0) = %q", got)
	}
}

func TestFormatTimeUsesLocalClock(t *testing.T) {
	local := time.Date(2026, 8, 15, 9, 5, 30, 0, time.Local)
	if got := FormatTime(local); got != "09:05:30" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestPadding(t *testing.T) {
	if got := PadLeft("42", 5); got != "   42" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("42", 5); got != "42   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("toolong", 3); got != "toolong" {
		t.Errorf("PadLeft overflow = %q", got)
	}
}
