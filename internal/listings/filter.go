// Package listings holds the listing discovery core: the filter predicate
// evaluator, the reducer-backed listing store, and the reveal controller
// that windows filtered results for display.
package listings

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Criteria is the session-local filter state applied to the listing set.
// The zero value matches everything.
type Criteria struct {
	// Query is free text matched against title and category label,
	// case-insensitive after trimming.
	Query string

	// Category filters by listing category. Empty or CategoryAll matches
	// every category.
	Category models.Category

	// MaxDistance bounds the leading magnitude of the listing's distance
	// text. Zero or negative means unbounded.
	MaxDistance float64

	// MaxHours bounds the hour count parsed from the listing's expiration
	// text. Zero or negative means unbounded.
	MaxHours float64
}

// Matches reports whether the listing passes every filter predicate.
// It is pure: same inputs always produce the same answer.
func Matches(l models.Listing, c Criteria) bool {
	return matchesText(l, c.Query) &&
		matchesCategory(l, c.Category) &&
		matchesDistance(l, c.MaxDistance) &&
		matchesExpiration(l, c.MaxHours)
}

// Filter returns the listings that pass the criteria, preserving order.
func Filter(in []models.Listing, c Criteria) []models.Listing {
	out := make([]models.Listing, 0, len(in))
	for _, l := range in {
		if Matches(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func matchesText(l models.Listing, query string) bool {
	q := fold(query)
	if q == "" {
		return true
	}
	return strings.Contains(fold(l.Title), q) ||
		strings.Contains(fold(string(l.Category)), q)
}

func matchesCategory(l models.Listing, c models.Category) bool {
	if c == "" || c == models.CategoryAll {
		return true
	}
	return strings.EqualFold(string(l.Category), string(c))
}

func matchesDistance(l models.Listing, maxDistance float64) bool {
	if maxDistance <= 0 {
		return true
	}
	// "2.3 miles away" → 2.3. Text that doesn't start with a number
	// carries no comparable magnitude and never matches a bound.
	d, ok := leadingNumber(l.Distance)
	if !ok {
		return false
	}
	return d <= maxDistance
}

func matchesExpiration(l models.Listing, maxHours float64) bool {
	if maxHours <= 0 {
		return true
	}
	// A claimed or otherwise non-numeric descriptor ("Claimed",
	// "tomorrow evening") has no hour count to compare against.
	h, ok := leadingNumber(l.Expires)
	if !ok {
		return false
	}
	return h <= maxHours
}

// fold lowercases and trims a string, NFC-normalizing first so visually
// identical Unicode titles compare equal.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// leadingNumber parses the numeric magnitude at the start of a
// human-readable string such as "2.3 miles away" or "12 hours".
// It reports false for text that does not begin with a number.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if ch == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
