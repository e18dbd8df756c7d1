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

type person struct {
	id   int
	name string
}

type pet struct {
	owner int
	name  string
}

var (
	people = []person{{1, "ann"}, {2, "bob"}, {3, "cid"}}
	pets   = []pet{{3, "rex"}, {1, "tom"}, {3, "max"}, {9, "stray"}}
)

func TestJoin(t *testing.T) {
	seq := group.Join(core.FromSlice(people), core.FromSlice(pets),
		func(p person) int { return p.id },
		func(p pet) int { return p.owner },
		func(o person, i pet) string { return o.name + ":" + i.name },
	)

	got, err := core.ToSlice(context.Background(), seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann:tom", "cid:rex", "cid:max"}, got)
}

func TestJoin_InnerGroupedOncePerTraversal(t *testing.T) {
	innerTraversals := 0
	inner := core.Defer(func() core.Sequence[pet] {
		innerTraversals++
		return core.FromSlice(pets)
	})

	seq := group.Join(core.FromSlice(people), inner,
		func(p person) int { return p.id },
		func(p pet) int { return p.owner },
		func(o person, i pet) string { return i.name },
	)
	assert.Equal(t, 0, innerTraversals)

	_, err := core.ToSlice(context.Background(), seq)
	require.NoError(t, err)
	assert.Equal(t, 1, innerTraversals)
}

func TestJoin_Faults(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	innerFault := group.Join(core.FromSlice(people), core.FromError[pet](boom),
		func(p person) int { return p.id },
		func(p pet) int { return p.owner },
		func(o person, i pet) string { return i.name },
	)
	results := core.Collect(ctx, innerFault)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Error(), boom)

	outer := core.Map(func(p person) (person, error) {
		if p.id == 2 {
			return p, boom
		}
		return p, nil
	}).Apply(core.FromSlice(people))
	outerFault := group.Join(outer, core.FromSlice(pets),
		func(p person) int { return p.id },
		func(p pet) int { return p.owner },
		func(o person, i pet) string { return i.name },
	)
	results = core.Collect(ctx, outerFault)
	require.Len(t, results, 4)
	assert.Equal(t, "tom", results[0].Value())
	assert.ErrorIs(t, results[1].Error(), boom)
	assert.Equal(t, "rex", results[2].Value())
	assert.Equal(t, "max", results[3].Value())
}

func TestGroupJoin(t *testing.T) {
	ctx := context.Background()
	seq := group.GroupJoin(core.FromSlice(people), core.FromSlice(pets),
		func(p person) int { return p.id },
		func(p pet) int { return p.owner },
		func(o person, owned core.Sequence[pet]) string {
			n, _ := core.Count(ctx, owned)
			return fmt.Sprintf("%s=%d", o.name, n)
		},
	)

	got, err := core.ToSlice(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann=1", "bob=0", "cid=2"}, got)
}
