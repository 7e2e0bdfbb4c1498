// Package merging implements the field-level merge rules for canonical records
package merging

import (
	"maps"
	"reflect"
	"time"
)

const (
	// FieldCompleted is the boolean that drives FieldCompletedAt
	FieldCompleted = "completed"
	// FieldCompletedAt is stamped whenever a payload carries FieldCompleted
	FieldCompletedAt = "completed_at"
	// FieldCompletedBy names who completed the job
	FieldCompletedBy = "completed_by"
)

// Merge overlays incoming onto existing and returns a new map. Present fields
// overwrite, absent fields are kept, and an explicit nil stores null.
// This mirrors the Postgres jsonb || operator used by the canonical store.
func Merge(existing, incoming map[string]any) map[string]any {
	result := make(map[string]any, len(existing)+len(incoming))
	maps.Copy(result, existing)
	maps.Copy(result, incoming)
	return result
}

// ApplyEventTimestamps returns a copy of fields with event timestamps derived
// from their triggering fields. completed_at is recomputed on every call that
// carries completed: true stamps now, anything else clears it.
func ApplyEventTimestamps(fields map[string]any, now time.Time) map[string]any {
	result := maps.Clone(fields)
	if result == nil {
		result = map[string]any{}
	}

	completed, ok := fields[FieldCompleted]
	if !ok {
		return result
	}

	if b, _ := completed.(bool); b {
		result[FieldCompletedAt] = now.UTC().Format(time.RFC3339Nano)
	} else {
		result[FieldCompletedAt] = nil
	}
	return result
}

// Equal reports whether two field maps hold the same values after a JSON round trip
func Equal(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && Equal(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
