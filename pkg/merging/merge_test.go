package merging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]any
		incoming map[string]any
		expected map[string]any
	}{
		{
			name:     "new record takes supplied fields",
			existing: nil,
			incoming: map[string]any{"address": "A"},
			expected: map[string]any{"address": "A"},
		},
		{
			name:     "absent fields are kept",
			existing: map[string]any{"address": "A"},
			incoming: map[string]any{"phone": "555"},
			expected: map[string]any{"address": "A", "phone": "555"},
		},
		{
			name:     "present fields overwrite",
			existing: map[string]any{"address": "A", "phone": "555"},
			incoming: map[string]any{"address": "B"},
			expected: map[string]any{"address": "B", "phone": "555"},
		},
		{
			name:     "explicit null clears",
			existing: map[string]any{"address": "A"},
			incoming: map[string]any{"address": nil},
			expected: map[string]any{"address": nil},
		},
		{
			name:     "nested objects are replaced whole",
			existing: map[string]any{"crew": map[string]any{"lead": "Sam", "size": 3.0}},
			incoming: map[string]any{"crew": map[string]any{"size": 4.0}},
			expected: map[string]any{"crew": map[string]any{"size": 4.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merge(tt.existing, tt.incoming))
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	incoming := map[string]any{"address": "123 Main St"}
	once := Merge(nil, incoming)
	twice := Merge(once, incoming)
	assert.True(t, Equal(once, twice))
}

func TestApplyEventTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	t.Run("should stamp completed_at when completed is true", func(t *testing.T) {
		result := ApplyEventTimestamps(map[string]any{"completed": true}, now)
		assert.Equal(t, "2026-03-14T15:09:26Z", result[FieldCompletedAt])
	})

	t.Run("should clear completed_at when completed is false", func(t *testing.T) {
		result := ApplyEventTimestamps(map[string]any{"completed": false, "completed_at": "stale"}, now)
		v, ok := result[FieldCompletedAt]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("should leave completed_at alone without completed", func(t *testing.T) {
		result := ApplyEventTimestamps(map[string]any{"address": "A"}, now)
		_, ok := result[FieldCompletedAt]
		assert.False(t, ok)
	})

	t.Run("should restamp on every call", func(t *testing.T) {
		first := ApplyEventTimestamps(map[string]any{"completed": true}, now)
		second := ApplyEventTimestamps(map[string]any{"completed": true}, now.Add(time.Minute))
		assert.NotEqual(t, first[FieldCompletedAt], second[FieldCompletedAt])
	})

	t.Run("should not modify the input", func(t *testing.T) {
		fields := map[string]any{"completed": true}
		ApplyEventTimestamps(fields, now)
		assert.Len(t, fields, 1)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(
		map[string]any{"a": []any{1.0, "x"}, "b": map[string]any{"c": nil}},
		map[string]any{"a": []any{1.0, "x"}, "b": map[string]any{"c": nil}},
	))
	assert.False(t, Equal(map[string]any{"a": 1.0}, map[string]any{"a": 2.0}))
	assert.False(t, Equal(map[string]any{"a": nil}, map[string]any{}))
}
