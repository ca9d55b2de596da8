// Package identity normalizes and validates the contact identifiers used
// at sign-up: email addresses and phone numbers.
package identity

import (
	"strings"
	"unicode"
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// ValidEmail is a light sanity check: one "@" with something on each side
// and a dot in the domain. Real verification belongs to the provider.
func ValidEmail(email string) bool {
	email = NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// NormalizePhone strips a phone number down to digits. A 10-digit US
// number gets the country code prepended so +1, 1, and bare forms all
// compare equal.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	result := digits.String()
	if len(result) == 10 {
		result = "1" + result
	}
	return result
}

// ValidPhone reports whether the number normalizes to a plausible length.
func ValidPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 15
}
