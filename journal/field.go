package journal

import "encoding/json"

// Field carries one attribute of a partial update. Set is false when the
// caller never mentioned the attribute; a Set field with a nil Value is an
// explicit request to clear it.
type Field[T any] struct {
	Set   bool
	Value T
}

// Change returns a field that replaces the stored value with v.
func Change[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as Set whenever its key is present, including
// an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Set = true
	f.Value = v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// apply writes the value into dst when the field was set.
func (f Field[T]) apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
