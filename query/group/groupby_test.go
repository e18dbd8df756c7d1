package group_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/group"
)

func TestGroupBy(t *testing.T) {
	ctx := context.Background()
	groups, err := core.ToSlice(ctx, group.GroupBy(core.Of(3, 1, 3, 2, 1), ident))
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, 3, groups[0].Key())
	assert.Equal(t, []int{3, 3}, groups[0].Elements())
	assert.Equal(t, 1, groups[1].Key())
	assert.Equal(t, []int{1, 1}, groups[1].Elements())
	assert.Equal(t, 2, groups[2].Key())
	assert.Equal(t, []int{2}, groups[2].Elements())
}

func TestGroupBy_IsDeferred(t *testing.T) {
	traversals := 0
	source := core.Defer(func() core.Sequence[int] {
		traversals++
		return core.Of(1, 2)
	})

	seq := group.GroupBy(source, ident)
	assert.Equal(t, 0, traversals)

	ctx := context.Background()
	_, err := core.ToSlice(ctx, seq)
	require.NoError(t, err)
	_, err = core.ToSlice(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, 2, traversals, "each traversal rebuilds the store")
}

func TestGroupBy_FaultIsSingle(t *testing.T) {
	boom := errors.New("boom")
	results := core.Collect(context.Background(), group.GroupBy(core.FromError[int](boom), ident))
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Error(), boom)
}

func TestGroupByElementsAndResult(t *testing.T) {
	ctx := context.Background()
	words := core.Of("apple", "avocado", "banana", "blueberry", "cherry")
	initial := func(s string) byte { return s[0] }

	lens, err := core.ToSlice(ctx, group.GroupByElements(words, initial, func(s string) int { return len(s) }))
	require.NoError(t, err)
	require.Len(t, lens, 3)
	assert.Equal(t, []int{5, 7}, lens[0].Elements())

	summary, err := core.ToSlice(ctx, group.GroupByResult(words, initial, func(k byte, g core.Sequence[string]) string {
		n, _ := core.Count(ctx, g)
		return fmt.Sprintf("%c=%d", k, n)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a=2", "b=2", "c=1"}, summary)
}

func TestGroupByHashed(t *testing.T) {
	ctx := context.Background()
	groups, err := core.ToSlice(ctx, group.GroupByHashed(core.Of("Go", "GO", "zig", "go"),
		func(s string) string { return s }, group.FoldedStringHasher{}))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"Go", "GO", "go"}, groups[0].Elements())
}

func TestToLookup(t *testing.T) {
	l, err := group.ToLookup(context.Background(), core.Of(1, 2, 3, 4), func(v int) int { return v % 2 })
	require.NoError(t, err)
	assert.Equal(t, 2, l.Count())
	assert.True(t, l.Contains(0))
}
