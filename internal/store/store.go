// Package store provides persistence for goryl variable bindings.
package store

import (
	"fmt"
	"strconv"

	"nickandperla.net/goryl/internal/value"
)

// Store is the interface for binding persistence.
type Store interface {
	// Get retrieves a value by name. ok is false if the name is not stored.
	Get(name string) (v value.Value, ok bool, err error)
	// Put stores a value by name, overwriting if it exists.
	Put(name string, v value.Value) error
	// Delete removes a binding by name.
	Delete(name string) error
	// Names lists every stored name in ascending order.
	Names() ([]string, error)
	// Close releases resources.
	Close() error
}

// Encode splits v into the kind tag and text stored in a row.
func Encode(v value.Value) (kind, text string) {
	switch v.Kind() {
	case value.StringKind:
		s, _ := v.Str()
		return "string", s
	case value.NumberKind:
		n, _ := v.Num()
		return "number", strconv.FormatFloat(n, 'g', -1, 64)
	case value.BoolKind:
		b, _ := v.Boolean()
		return "bool", strconv.FormatBool(b)
	}
	return "none", ""
}

// Decode rebuilds a value from its stored kind tag and text.
func Decode(kind, text string) (value.Value, error) {
	switch kind {
	case "string":
		return value.String(text), nil
	case "number":
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.None, fmt.Errorf("store: decode number %q: %w", text, err)
		}
		return value.Number(n), nil
	case "bool":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return value.None, fmt.Errorf("store: decode bool %q: %w", text, err)
		}
		return value.Bool(b), nil
	case "none":
		return value.None, nil
	}
	return value.None, fmt.Errorf("store: unknown value kind %q", kind)
}
