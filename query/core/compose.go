package core

// Transformer turns a Sequence of IN into a Sequence of OUT without
// traversing it. Transformers compose into reusable query fragments.
// They answer the question: "What is done to the sequence's elements?".
type Transformer[IN, OUT any] interface {
	Apply(Sequence[IN]) Sequence[OUT]
}

// Transform is a function that implements Transformer.
type Transform[IN, OUT any] func(Sequence[IN]) Sequence[OUT]

// Apply implements Transformer.
func (t Transform[IN, OUT]) Apply(seq Sequence[IN]) Sequence[OUT] {
	return t(seq)
}

// Through chains two transformers, applying t1 and then t2.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return Transform[IN, OUT](func(seq Sequence[IN]) Sequence[OUT] {
		return t2.Apply(t1.Apply(seq))
	})
}

// Chain composes transformers of the same type, applied left to right.
// With no transformers it is the identity.
func Chain[T any](transformers ...Transformer[T, T]) Transformer[T, T] {
	return Transform[T, T](func(seq Sequence[T]) Sequence[T] {
		return Pipe(seq, transformers...)
	})
}

// Pipe applies transformers to seq in order and returns the final sequence.
func Pipe[T any](seq Sequence[T], transformers ...Transformer[T, T]) Sequence[T] {
	result := seq
	for _, t := range transformers {
		result = t.Apply(result)
	}
	return result
}
