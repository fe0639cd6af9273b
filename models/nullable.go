package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field that tells "absent" apart from "null".
// Set is true when the key was present; Valid is true when it was not null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NullableOf returns a set, non-null value
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a set, null value
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It only runs for present keys.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Any returns the value for binding to SQL: nil when null
func (n Nullable[T]) Any() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// Ptr returns a pointer to the value, or nil when null
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// IsNull reports whether the key was present with a null value
func (n Nullable[T]) IsNull() bool {
	return n.Set && !n.Valid
}
