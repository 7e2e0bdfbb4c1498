// Package normalizers provides the field normalization functions used to build match keys
package normalizers

import (
	"strings"
	"unicode"
)

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	Register("lowercase", Lowercase)
	Register("trim", Trim)
	Register("nphone", NormalizePhone)
	Register("naddress", NormalizeAddress)
	Register("nname", NormalizeName)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Get retrieves a normalizer by name
func Get(name string) (Normalizer, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Apply applies a named normalizer to a value.
// Unknown normalizer names leave the value unchanged.
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// Lowercase converts string to lowercase
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizePhone keeps only the ASCII decimal digits of a phone number.
// No length or country code handling is done.
func NormalizePhone(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NormalizeName lowercases a name and collapses whitespace. Used for name
// comparisons in customer and estimate lookups.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeAddress canonicalizes a free-form street address so that equivalent
// spellings compare equal:
//   - lowercase
//   - remove '.', ',' and '#'
//   - expand directionals between other tokens, then a leading directional
//   - expand street types between other tokens and at the end
//   - collapse whitespace and trim
//
// The result is a fixed point: NormalizeAddress(NormalizeAddress(s)) == NormalizeAddress(s).
func NormalizeAddress(s string) string {
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '#':
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	tokens := strings.Fields(s)
	last := len(tokens) - 1

	// mid-string pass
	for i := 1; i < last; i++ {
		if exp, ok := addressTable[tokens[i]]; ok {
			tokens[i] = exp.word
		}
	}

	// start of string: only a directional followed by more tokens
	if last > 0 {
		if exp, ok := addressTable[tokens[0]]; ok && exp.kind == directional {
			tokens[0] = exp.word
		}
	}

	// end of string: street types only
	if last > 0 {
		if exp, ok := addressTable[tokens[last]]; ok && exp.kind == streetType {
			tokens[last] = exp.word
		}
	}

	return strings.Join(tokens, " ")
}
