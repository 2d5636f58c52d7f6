// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatUSD formats an amount in US dollar notation with thousands
// separators.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatMoney formats an amount in an arbitrary currency code.
func FormatMoney(amount float64, currency string) string {
	if currency == "" || currency == "USD" {
		return FormatUSD(amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats P&L with sign.
func FormatPnL(pnl float64) string {
	formatted := FormatUSD(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatLots formats an MT5 lot size.
func FormatLots(lots float64) string {
	return fmt.Sprintf("%.2f", lots)
}

// FormatCompact formats a dollar amount in compact form (K/M).
func FormatCompact(amount float64) string {
	absAmount := math.Abs(amount)
	if absAmount >= 1000000 {
		return fmt.Sprintf("$%.2fM", amount/1000000)
	} else if absAmount >= 1000 {
		return fmt.Sprintf("$%.2fK", amount/1000)
	}
	return FormatUSD(amount)
}

// FormatPrice formats a quote with enough precision for FX pairs.
func FormatPrice(price float64) string {
	if price >= 10 {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.5f", price)
}

// FormatTime formats a time in the local zone.
func FormatTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Local().Format("02 Jan 2006")
}

// FormatDateTime formats a datetime.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02 Jan 2006 15:04:05")
}

// FormatYearMonth formats a calendar month bucket, e.g. "Jan 2026".
// Out-of-range months render as a dash rather than panicking.
func FormatYearMonth(year, month int) string {
	if month < 1 || month > 12 {
		return "-"
	}
	return time.Month(month).String()[:3] + " " + fmt.Sprintf("%d", year)
}

// FormatUnix formats an MT5 epoch timestamp; zero renders as a dash.
func FormatUnix(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return FormatDateTime(time.Unix(sec, 0))
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// FormatAge renders how long ago a snapshot was taken.
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return FormatDuration(time.Since(t)) + " ago"
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
