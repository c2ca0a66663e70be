// Package sanitize bounds the size of arbitrary values before they are
// embedded into retry reports, so that logging or serializing a report can
// never explode or fail on caller-supplied data.
package sanitize

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aponysus/reprise/internal"
)

// DefaultThreshold is the serialized-size limit applied when a policy does
// not set one.
const DefaultThreshold = 500

// Unstringifiable replaces values that cannot be serialized at all
// (cyclic structures, func or chan fields, and so on).
const Unstringifiable = "Unstringifiable Object"

// fallbackTypeName is used when the value's type has no name (maps, slices,
// anonymous structs).
const fallbackTypeName = "Object"

// Value returns v unchanged when it is small enough to embed safely, or a
// short placeholder string otherwise.
//
// Scalars, strings and nils (including typed nils) always pass through.
// Record-like values (structs, maps, slices, arrays, and pointers to them)
// are serialized to JSON to measure their size: at most threshold bytes the
// original value is returned, above it a "Large <Type>: <N> chars"
// placeholder, and on serialization failure the fixed Unstringifiable
// placeholder. When enabled is false v is always returned as-is.
func Value(v any, enabled bool, threshold int) any {
	if !enabled || internal.IsTypedNil(v) {
		return v
	}
	if !isRecord(v) {
		return v
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Unstringifiable
	}
	if len(data) <= threshold {
		return v
	}
	return fmt.Sprintf("Large %s: %d chars", typeName(v), len(data))
}

func isRecord(v any) bool {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return fallbackTypeName
}
