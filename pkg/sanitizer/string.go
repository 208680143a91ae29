package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses
// internal runs of whitespace to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases the address after whitespace cleanup.
func NormalizeEmail(email string) string {
	return strings.ToLower(TrimAndNormalize(email))
}

// NormalizePhone strips spaces, dashes and parentheses so numbers
// submitted as "+65 9123 4567" and "+6591234567" compare equal.
func NormalizePhone(phone string) string {
	var result strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		switch {
		case unicode.IsDigit(r), r == '+':
			result.WriteRune(r)
		}
	}
	return result.String()
}
