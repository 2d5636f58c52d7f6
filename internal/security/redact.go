// Package security provides log redaction for credentials and card data.
package security

import (
	"regexp"
	"strings"
)

// sensitivePatterns matches credential material that must never reach logs.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(access[_-]?token|auth[_-]?token|bearer|password|secret)[=:\s]+["']?([^\s"',}]+)["']?`),
	regexp.MustCompile(`(?i)Authorization:\s*Bearer\s+\S+`),
	// Card PANs: 13-19 digits with optional space/dash separators
	regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`),
}

// Redact masks credential material and card numbers in a string before it
// is logged or printed.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if idx := strings.IndexAny(match, "=: "); idx >= 0 && !strings.ContainsAny(match[:idx], "0123456789") {
				return match[:idx+1] + "***REDACTED***"
			}
			return "***REDACTED***"
		})
	}
	return result
}

// MaskToken returns a loggable form of a bearer token: first and last four
// characters with the middle elided. Short tokens are fully masked.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// MaskCardNumber keeps only the last four digits of a card number.
func MaskCardNumber(pan string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, pan)
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}
