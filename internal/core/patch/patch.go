// Package patch holds the presence-aware slot used by partial updates.
package patch

// Field distinguishes "omitted" from "provided". For pointer types a provided
// nil clears the field.
type Field[T any] struct {
	Value T
	Set   bool
}

// Provide returns a Field carrying v.
func Provide[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Clear returns a provided Field holding the zero value, which clears a
// pointer field.
func Clear[T any]() Field[T] {
	return Field[T]{Set: true}
}
