package more_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/filter"
	"github.com/lguimbarda/min-query/query/more"
)

var errBoom = errors.New("boom")

type node struct {
	name string
	kids []*node
}

func tree() *node {
	return &node{name: "root", kids: []*node{
		{name: "a", kids: []*node{{name: "a1"}, {name: "a2"}}},
		{name: "b", kids: []*node{{name: "b1"}}},
	}}
}

func kidsOf(n *node) core.Sequence[*node] {
	return core.FromSlice(n.kids)
}

func names(t *testing.T, seq core.Sequence[*node]) []string {
	t.Helper()
	nodes, err := core.ToSlice(context.Background(), seq)
	require.NoError(t, err)
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.name
	}
	return out
}

func TestTraverseBreadthFirst(t *testing.T) {
	got := names(t, more.TraverseBreadthFirst(tree(), kidsOf))
	assert.Equal(t, []string{"root", "a", "b", "a1", "a2", "b1"}, got)
}

func TestTraverseDepthFirst(t *testing.T) {
	got := names(t, more.TraverseDepthFirst(tree(), kidsOf))
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "b1"}, got)
}

func TestTraverse_InfiniteTreeIsLazy(t *testing.T) {
	ctx := context.Background()
	expanded := 0
	binary := func(v int) core.Sequence[int] {
		expanded++
		return core.Of(2*v, 2*v+1)
	}

	bfs, err := core.ToSlice(ctx, filter.Take[int](7).Apply(more.TraverseBreadthFirst(1, binary)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, bfs)
	assert.Equal(t, 6, expanded, "children are requested only when advancing past an element")

	dfs, err := core.ToSlice(ctx, filter.Take[int](4).Apply(more.TraverseDepthFirst(1, binary)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 8}, dfs)
}

func TestTraverse_ChildFaultKeepsGoing(t *testing.T) {
	selector := func(v int) core.Sequence[int] {
		switch v {
		case 0:
			return core.Of(1, 2)
		case 1:
			return core.FromError[int](errBoom)
		}
		return nil
	}

	results := core.Collect(context.Background(), more.TraverseBreadthFirst(0, selector))
	require.Len(t, results, 4)
	assert.Equal(t, 0, results[0].Value())
	assert.Equal(t, 1, results[1].Value())
	assert.ErrorIs(t, results[2].Error(), errBoom)
	assert.Equal(t, 2, results[3].Value())
}

func TestFlattenFunc(t *testing.T) {
	// Numbers above 9 expand into their digits, recursively.
	digits := func(v int) core.Sequence[int] {
		if v < 10 {
			return nil
		}
		return core.Of(v/10, v%10)
	}

	got, err := core.ToSlice(context.Background(), more.FlattenFunc(digits).Apply(core.Of(7, 123, 45)))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 1, 2, 3, 4, 5}, got)
}

func TestFlatten(t *testing.T) {
	src := core.Of[any](
		1,
		[]any{2, []any{3, 4}},
		core.Of[any](5, []any{6}),
		"seven",
	)

	got, err := core.ToSlice(context.Background(), more.Flatten(nil).Apply(src))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3, 4, 5, 6, "seven"}, got)
}

func TestFlatten_Predicate(t *testing.T) {
	shallow := func(v any) bool {
		s, ok := v.([]any)
		return ok && len(s) > 1
	}
	src := core.Of[any]([]any{1, 2}, []any{3})

	got, err := core.ToSlice(context.Background(), more.Flatten(shallow).Apply(src))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 2, got[1])
	assert.Equal(t, []any{3}, got[2])
}

func TestInterleave(t *testing.T) {
	tests := []struct {
		name string
		seqs []core.Sequence[int]
		want []int
	}{
		{"even lengths", []core.Sequence[int]{core.Of(1, 4), core.Of(2, 5), core.Of(3, 6)}, []int{1, 2, 3, 4, 5, 6}},
		{"uneven lengths", []core.Sequence[int]{core.Of(1), core.Of(2, 4, 5), core.Of(3)}, []int{1, 2, 3, 4, 5}},
		{"with empty", []core.Sequence[int]{core.Empty[int](), core.Of(1, 2)}, []int{1, 2}},
		{"none", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ToSlice(context.Background(), more.Interleave(tt.seqs...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForEach(t *testing.T) {
	ctx := context.Background()

	var seen []int
	err := more.ForEach(ctx, core.Range(0, 3), func(v int) error {
		seen = append(seen, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)

	var positions []int
	err = more.ForEachIndexed(ctx, core.Of("a", "b"), func(_ string, i int) error {
		positions = append(positions, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, positions)
}

func TestForEach_StopsOnError(t *testing.T) {
	calls := 0
	err := more.ForEach(context.Background(), core.Range(0, 10), func(v int) error {
		calls++
		if v == 2 {
			return errBoom
		}
		return nil
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, calls)

	err = more.ForEach(context.Background(), core.FromError[int](errBoom), func(int) error { return nil })
	assert.ErrorIs(t, err, errBoom)
}
