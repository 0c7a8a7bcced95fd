package domain

// Optional holds a value that may be absent. The zero value is absent, so a
// Patch literal only carries the fields it names.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v, even when v is a zero value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, present: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// Present reports whether a value was supplied.
func (o Optional[T]) Present() bool { return o.present }
