// Package extractor reads values out of source record payloads by path
package extractor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Extractor handles extracting values from nested payloads
type Extractor struct{}

// New creates a new Extractor
func New() *Extractor {
	return &Extractor{}
}

// ExtractStrings extracts every scalar value matching path as a string,
// skipping absent, empty and non-scalar values. Type mismatches along the path
// yield no values.
func (e *Extractor) ExtractStrings(data any, path string) []string {
	values, err := e.ExtractAll(data, path)
	if err != nil {
		return nil
	}

	var result []string
	for _, v := range values {
		if s := toString(v); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// ExtractAll extracts all non-nil values for a path, expanding wildcards.
// Supported syntax:
//   - Simple path: "phone", "customer.address"
//   - Array index: "phones[0].number"
//   - Wildcard: "phones[*].number"
func (e *Extractor) ExtractAll(data any, path string) ([]any, error) {
	if path == "" {
		return []any{data}, nil
	}

	parts, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	results := []any{data}
	for _, part := range parts {
		var next []any
		for _, current := range results {
			value, ok := lookupKey(current, part.key)
			if !ok || value == nil {
				continue
			}

			switch {
			case part.isWildcard:
				arr, ok := toArray(value)
				if !ok {
					continue
				}
				for _, item := range arr {
					if item != nil {
						next = append(next, item)
					}
				}
			case part.isArray:
				arr, ok := toArray(value)
				if !ok || part.arrayIndex < 0 || part.arrayIndex >= len(arr) {
					continue
				}
				if arr[part.arrayIndex] != nil {
					next = append(next, arr[part.arrayIndex])
				}
			default:
				next = append(next, value)
			}
		}
		results = next
	}

	return results, nil
}

// pathPart represents a parsed path segment
type pathPart struct {
	key        string
	isArray    bool
	arrayIndex int
	isWildcard bool
}

// parsePath parses a dot-notation path into parts
func parsePath(path string) ([]pathPart, error) {
	var parts []pathPart

	for _, seg := range splitPath(path) {
		part := pathPart{key: seg}

		if idx := strings.Index(seg, "["); idx != -1 {
			if !strings.HasSuffix(seg, "]") {
				return nil, fmt.Errorf("invalid path segment %q", seg)
			}
			part.key = seg[:idx]
			part.isArray = true

			indexPart := seg[idx+1 : len(seg)-1]
			if indexPart == "*" {
				part.isWildcard = true
			} else {
				i, err := strconv.Atoi(indexPart)
				if err != nil {
					return nil, fmt.Errorf("invalid array index in %q", seg)
				}
				part.arrayIndex = i
			}
		}

		parts = append(parts, part)
	}

	return parts, nil
}

// splitPath splits a dot-notation path, respecting array brackets
func splitPath(path string) []string {
	var parts []string
	var current strings.Builder

	inBracket := false
	for _, c := range path {
		switch c {
		case '[':
			inBracket = true
			current.WriteRune(c)
		case ']':
			inBracket = false
			current.WriteRune(c)
		case '.':
			if inBracket {
				current.WriteRune(c)
				continue
			}
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// lookupKey returns the value under key, or data itself for an empty key
func lookupKey(data any, key string) (any, bool) {
	if key == "" {
		return data, true
	}

	switch v := data.(type) {
	case map[string]any:
		val, ok := v[key]
		return val, ok
	case map[string]string:
		val, ok := v[key]
		return val, ok
	}
	return nil, false
}

// toArray converts a value to an array
func toArray(v any) ([]any, bool) {
	switch arr := v.(type) {
	case []any:
		return arr, true
	case []string:
		result := make([]any, len(arr))
		for i, s := range arr {
			result[i] = s
		}
		return result, true
	case []map[string]any:
		result := make([]any, len(arr))
		for i, m := range arr {
			result[i] = m
		}
		return result, true
	}
	return nil, false
}

// toString converts a scalar to a string. Numbers are written without
// exponents so numeric phone fields survive. Objects and arrays are not keys
// and yield "".
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
