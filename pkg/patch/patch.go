package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state JSON value for sparse updates. A key in an update
// payload can be absent (keep the stored value), explicitly null (clear a
// nullable column), or present with a value (overwrite). encoding/json only
// invokes UnmarshalJSON for keys present in the payload, which is what lets
// Field tell "absent" apart from "null".
type Field[T any] struct {
	set   bool
	valid bool
	value T
}

// Set returns a Field holding v, as if the key were present in the payload.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, valid: true, value: v}
}

// Null returns a Field representing an explicit JSON null.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// IsSet reports whether the key was present in the payload at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the key was present as an explicit null.
func (f Field[T]) IsNull() bool { return f.set && !f.valid }

// Get returns the value and whether the key was present with a non-null value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && f.valid
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if bytes.Equal(b, []byte("null")) {
		var zero T
		f.value = zero
		f.valid = false
		return nil
	}
	if err := json.Unmarshal(b, &f.value); err != nil {
		return err
	}
	f.valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
