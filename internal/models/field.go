package models

import "encoding/json"

// Field carries one member of a partial update. A zero Field was not supplied,
// Null reports an explicit JSON null, otherwise Value holds the new value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Present is true when the field was supplied with a non-null value.
func (f Field[T]) Present() bool { return f.Set && !f.Null }

func Some[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

func Null[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

// Ptr returns nil for unset or null fields.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}
