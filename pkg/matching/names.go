package matching

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// LastNamesMatch compares last names case-insensitively after trimming
func LastNamesMatch(a, b string) bool {
	a, b = normalizers.NormalizeName(a), normalizers.NormalizeName(b)
	return a != "" && a == b
}

// FirstNamesMatch compares first names case-insensitively. A name matches its
// shortened form in either direction, so "Josh" matches "Joshua".
func FirstNamesMatch(a, b string) bool {
	a, b = normalizers.NormalizeName(a), normalizers.NormalizeName(b)
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// NameContains reports whether any of names contains the search term, case-insensitively
func NameContains(term string, names ...string) bool {
	term = strings.ToLower(term)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}
