package core

import "errors"

var (
	// ErrEndOfSequence is the sentinel error carried by the result of an
	// exhausted cursor.
	ErrEndOfSequence = errors.New("end of sequence")

	// ErrEmptySequence is returned by operations that need at least one
	// element (First, Last, Single, Aggregate without a seed, Min, Max,
	// Average) when the source has none.
	ErrEmptySequence = errors.New("sequence contains no elements")

	// ErrMultipleMatch is returned by the Single family when more than one
	// element satisfies the criterion.
	ErrMultipleMatch = errors.New("sequence contains more than one matching element")

	// ErrIndexOutOfRange is returned by positional access beyond the
	// sequence's bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)
