package query_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/lguimbarda/min-query/query"
	"github.com/lguimbarda/min-query/query/core"
)

type pair struct {
	k int
	v string
}

func TestEnumerable_Chain(t *testing.T) {
	ctx := context.Background()

	got, err := query.Range(0, 20).
		Where(func(v int) bool { return v%3 == 0 }).
		Skip(1).
		Take(4).
		Append(100).
		Prepend(-1).
		Reverse().
		ToSlice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{100, 12, 9, 6, 3, -1}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnumerable_RepeatTraversal(t *testing.T) {
	ctx := context.Background()
	seq := query.Of(5, 1, 4).Where(func(v int) bool { return v > 1 })

	first, _ := seq.Count(ctx)
	second, _ := seq.Count(ctx)
	if first != 2 || second != 2 {
		t.Errorf("counts = %d, %d, want 2, 2", first, second)
	}
}

func TestEnumerable_Deferred(t *testing.T) {
	ctx := context.Background()
	calls := 0
	seq := query.Select(query.Range(0, 3), func(v int) int {
		calls++
		return v
	}).Where(func(int) bool { return true })

	if calls != 0 {
		t.Fatalf("calls = %d before traversal", calls)
	}
	if _, err := seq.ToSlice(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestOrderBy_Stable(t *testing.T) {
	ctx := context.Background()
	src := query.Of(pair{1, "a"}, pair{1, "b"}, pair{2, "c"})

	got, err := query.OrderBy(src, func(p pair) int { return p.k }).Sorted(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []pair{{1, "a"}, {1, "b"}, {2, "c"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOrderBy_ThenBy(t *testing.T) {
	ctx := context.Background()
	src := query.Of([2]int{1, 2}, [2]int{1, 1}, [2]int{0, 5})

	ordered := query.ThenBy(
		query.OrderBy(src, func(p [2]int) int { return p[0] }),
		func(p [2]int) int { return p[1] },
	)
	got, err := query.From[[2]int](ordered).ToSlice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 5}, {1, 1}, {1, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	desc, _ := query.From[[2]int](query.ThenByDescending(
		query.OrderByDescending(src, func(p [2]int) int { return p[0] }),
		func(p [2]int) int { return p[1] },
	)).ToSlice(ctx)
	wantDesc := [][2]int{{1, 2}, {1, 1}, {0, 5}}
	if !slices.Equal(desc, wantDesc) {
		t.Errorf("descending got %v, want %v", desc, wantDesc)
	}
}

func TestGroupBy_FirstAppearanceOrder(t *testing.T) {
	ctx := context.Background()
	groups, err := query.GroupBy(query.Of(3, 1, 3, 2, 1), func(v int) int { return v }).ToSlice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var keys []int
	for _, g := range groups {
		keys = append(keys, g.Key())
	}
	if !slices.Equal(keys, []int{3, 1, 2}) {
		t.Errorf("keys = %v, want [3 1 2]", keys)
	}
	if groups[0].Len() != 2 {
		t.Errorf("group 3 has %d elements, want 2", groups[0].Len())
	}
}

func TestCached_PullsOncePerPosition(t *testing.T) {
	ctx := context.Background()
	var pulls atomic.Int64
	src := query.SelectErr(query.Range(0, 5), func(v int) (int, error) {
		pulls.Add(1)
		return v, nil
	}).Cached()

	for range 3 {
		got, err := src.ToSlice(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 5 {
			t.Fatalf("len = %d", len(got))
		}
	}
	if pulls.Load() != 5 {
		t.Errorf("pulls = %d, want 5", pulls.Load())
	}
}

func TestTerminals(t *testing.T) {
	ctx := context.Background()

	if _, err := query.Empty[int]().First(ctx); !errors.Is(err, query.ErrEmptySequence) {
		t.Errorf("First(empty) error = %v", err)
	}
	if v, err := query.Empty[int]().FirstOrDefault(ctx, 7); err != nil || v != 7 {
		t.Errorf("FirstOrDefault(empty) = %v, %v", v, err)
	}
	if _, err := query.Of(1, 2).Single(ctx); !errors.Is(err, query.ErrMultipleMatch) {
		t.Errorf("Single error = %v", err)
	}
	if _, err := query.Of(1).ElementAt(ctx, 3); !errors.Is(err, query.ErrIndexOutOfRange) {
		t.Errorf("ElementAt error = %v", err)
	}
	if v, _ := query.Of(1, 2, 3).Aggregate(ctx, func(a, b int) int { return a * b }); v != 6 {
		t.Errorf("Aggregate = %v", v)
	}
	if ok, _ := query.Of(2, 4).AllMatch(ctx, func(v int) bool { return v%2 == 0 }); !ok {
		t.Error("AllMatch = false")
	}
	if s, _ := query.Sum(ctx, query.Range(1, 5)); s != 10 {
		t.Errorf("Sum = %v", s)
	}
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	people := query.Of(pair{1, "ann"}, pair{2, "bob"}, pair{3, "cid"})
	pets := query.Of(pair{1, "rex"}, pair{3, "tom"}, pair{1, "fig"})

	got, err := query.Join(people, pets,
		func(p pair) int { return p.k },
		func(p pair) int { return p.k },
		func(o, i pair) string { return o.v + ":" + i.v },
	).ToSlice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ann:rex", "ann:fig", "cid:tom"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	counts, err := query.GroupJoin(people, pets,
		func(p pair) int { return p.k },
		func(p pair) int { return p.k },
		func(o pair, inner core.Sequence[pair]) int {
			n, _ := core.Count(ctx, inner)
			return n
		},
	).ToSlice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(counts, []int{2, 0, 1}) {
		t.Errorf("group join counts = %v", counts)
	}
}

func TestWithTraversalConfig(t *testing.T) {
	if _, err := query.WithTraversalConfig(context.Background(), query.TraversalConfig{MaxBuffered: -1}); err == nil {
		t.Fatal("negative MaxBuffered accepted")
	}

	ctx, err := query.WithTraversalConfig(context.Background(), query.TraversalConfig{CheckContext: true, MaxBuffered: 2})
	if err != nil {
		t.Fatal(err)
	}
	_, err = query.Range(0, 5).Reverse().ToSlice(ctx)
	if !errors.Is(err, query.ErrBufferLimit) {
		t.Errorf("error = %v, want ErrBufferLimit", err)
	}
}

func TestFrom_Idempotent(t *testing.T) {
	e := query.Of(1)
	if query.From[int](e) != e {
		t.Error("From re-wrapped an Enumerable")
	}
}

func Example() {
	ctx := context.Background()
	words := query.Of("pear", "fig", "apple", "kiwi", "plum", "date")

	byLength := query.ThenBy(
		query.OrderBy(words, func(w string) int { return len(w) }),
		func(w string) string { return w },
	)
	for w, err := range query.From[string](byLength).Take(4).All(ctx) {
		if err != nil {
			panic(err)
		}
		fmt.Println(w)
	}
	// Output:
	// fig
	// date
	// kiwi
	// pear
}
