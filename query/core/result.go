package core

// Result represents the outcome of advancing a cursor by one step.
// It exists in one of three states:
//   - Value: the next element of the sequence (IsValue() returns true)
//   - Error: a fault raised while producing one element (IsError() returns true)
//   - Sentinel: a control signal, normally end-of-sequence (IsSentinel() returns true)
//
// An error describes a single element. The cursor that returned it may be
// advanced again and continues with the following element, unless the
// operator documents that it stops at the first fault.
type Result[T any] struct {
	value      T
	err        error
	isSentinel bool
}

// Ok creates a successful Result containing the given value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates an error Result carrying a fault for the current element.
func Err[T any](err error) Result[T] {
	var zero T
	return Result[T]{value: zero, err: err}
}

// EndOfSequence creates the sentinel Result reported by an exhausted cursor.
func EndOfSequence[T any]() Result[T] {
	var zero T
	return Result[T]{value: zero, err: ErrEndOfSequence, isSentinel: true}
}

// IsValue returns true if this Result contains an element.
func (r Result[T]) IsValue() bool {
	return r.err == nil && !r.isSentinel
}

// IsSentinel returns true if this Result is a sentinel (control signal).
func (r Result[T]) IsSentinel() bool {
	return r.isSentinel
}

// IsError returns true if this Result carries an element fault.
func (r Result[T]) IsError() bool {
	return r.err != nil && !r.isSentinel
}

// Value returns the contained element. Only meaningful when IsValue() is true.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the fault if this is an error Result, nil otherwise.
func (r Result[T]) Error() error {
	if r.isSentinel {
		return nil
	}
	return r.err
}

// Sentinel returns the sentinel's context error if this is a sentinel Result.
func (r Result[T]) Sentinel() error {
	if !r.isSentinel {
		return nil
	}
	return r.err
}

// Unwrap returns the value and error together.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Retype converts a non-value Result to another element type, keeping the
// error and sentinel state. Value results convert to the zero value.
func Retype[OUT, IN any](r Result[IN]) Result[OUT] {
	var zero OUT
	return Result[OUT]{value: zero, err: r.err, isSentinel: r.isSentinel}
}
