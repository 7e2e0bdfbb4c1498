package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "formatted us number", input: "(208) 555-1234", expected: "2085551234"},
		{name: "country code kept", input: "+1 208.555.1234", expected: "12085551234"},
		{name: "empty", input: "", expected: ""},
		{name: "no digits", input: "call me", expected: ""},
		{name: "non ascii digits dropped", input: "٢٠٨5551234", expected: "5551234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "directional and street type", input: "123 N. Main St.", expected: "123 north main street"},
		{name: "avenue", input: "456 N Elm Ave", expected: "456 north elm avenue"},
		{name: "punctuation and state code", input: "123 Main St, Boise, ID", expected: "123 main street boise id"},
		{name: "leading directional", input: "N Main St", expected: "north main street"},
		{name: "trailing directional untouched", input: "100 Main St N", expected: "100 main street n"},
		{name: "unit abbreviations", input: "12 Oak Blvd Apt #4", expected: "12 oak boulevard apartment 4"},
		{name: "compound directional", input: "900 SW Pkwy", expected: "900 southwest parkway"},
		{name: "whitespace collapsed", input: "  77   W   River   Rd  ", expected: "77 west river road"},
		{name: "lone directional untouched", input: "N", expected: "n"},
		{name: "abbreviation inside word untouched", input: "12 Stone Drive", expected: "12 stone drive"},
		{name: "only punctuation", input: ".,#", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAddress(tt.input))
		})
	}
}

func TestNormalizeAddressEquivalence(t *testing.T) {
	assert.Equal(t, NormalizeAddress("123 North Main Street"), NormalizeAddress("123 N. Main St."))
	assert.Equal(t, NormalizeAddress("456 n elm avenue"), NormalizeAddress("456 N Elm Ave"))
}

func TestNormalizeAddressIsFixedPoint(t *testing.T) {
	inputs := []string{
		"123 N. Main St.",
		"N Main St",
		"12 Oak Blvd Apt #4",
		"100 Main St N",
		"  77   W   River   Rd  ",
		"900 SW Pkwy, Eagle, ID 83616",
	}

	for _, input := range inputs {
		once := NormalizeAddress(input)
		assert.Equal(t, once, NormalizeAddress(once), input)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jane doe", NormalizeName("  Jane   DOE "))
	assert.Equal(t, "", NormalizeName(""))
}

func TestApply(t *testing.T) {
	t.Run("should apply registered normalizer", func(t *testing.T) {
		assert.Equal(t, "2085551234", Apply("208-555-1234", "nphone"))
		assert.Equal(t, "1 north main street", Apply("1 N Main St", "naddress"))
	})

	t.Run("should return value for unknown normalizer", func(t *testing.T) {
		assert.Equal(t, "Value", Apply("Value", "unknown"))
	})

	t.Run("should apply chain in order", func(t *testing.T) {
		assert.Equal(t, "abc", ApplyChain("  ABC ", "trim", "lowercase"))
	})
}
