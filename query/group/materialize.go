package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/lguimbarda/min-query/query/core"
)

// ErrDuplicateKey is returned by ToMap when two elements share a key.
var ErrDuplicateKey = errors.New("duplicate key")

// ToMap materializes source into a key-unique map.
func ToMap[T any, K comparable, V any](ctx context.Context, source core.Sequence[T], key func(T) K, value func(T) V) (map[K]V, error) {
	cur := core.Open(ctx, source)
	defer cur.Close()

	out := make(map[K]V)
	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return out, nil
		case res.IsError():
			return nil, res.Error()
		}
		k := key(res.Value())
		if _, ok := out[k]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, k)
		}
		out[k] = value(res.Value())
	}
}

// ToSet materializes source into a deduplicating set.
func ToSet[T comparable](ctx context.Context, source core.Sequence[T]) (map[T]struct{}, error) {
	cur := core.Open(ctx, source)
	defer cur.Close()

	out := make(map[T]struct{})
	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return out, nil
		case res.IsError():
			return nil, res.Error()
		}
		out[res.Value()] = struct{}{}
	}
}
