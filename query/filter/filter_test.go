package filter

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/lguimbarda/min-query/query/core"
)

func TestFilters(t *testing.T) {
	isEven := func(v int) bool { return v%2 == 0 }
	small := func(v int) bool { return v < 3 }

	tests := []struct {
		name   string
		t      core.Transformer[int, int]
		source core.Sequence[int]
		want   []int
	}{
		{"where", Where(isEven), core.Range(0, 7), []int{0, 2, 4, 6}},
		{"where indexed", WhereIndexed(func(v, i int) bool { return i%3 == 0 }), core.Of(9, 8, 7, 6, 5), []int{9, 6}},
		{"exclude", Exclude(isEven), core.Range(0, 5), []int{1, 3}},
		{"take", Take[int](2), core.Range(0, 5), []int{0, 1}},
		{"take more than available", Take[int](9), core.Range(0, 2), []int{0, 1}},
		{"take zero", Take[int](0), core.Range(0, 5), []int{}},
		{"take infinite", Take[int](3), core.Repeat(1, -1), []int{1, 1, 1}},
		{"take while", TakeWhile(small), core.Of(1, 2, 3, 1), []int{1, 2}},
		{"skip", Skip[int](3), core.Range(0, 5), []int{3, 4}},
		{"skip all", Skip[int](10), core.Range(0, 5), []int{}},
		{"skip while", SkipWhile(small), core.Of(1, 2, 3, 1), []int{3, 1}},
		{"take last", TakeLast[int](2), core.Range(0, 5), []int{3, 4}},
		{"take last short", TakeLast[int](4), core.Range(0, 2), []int{0, 1}},
		{"take last zero", TakeLast[int](0), core.Range(0, 2), []int{}},
		{"skip last", SkipLast[int](2), core.Range(0, 5), []int{0, 1, 2}},
		{"skip last zero", SkipLast[int](0), core.Range(0, 2), []int{0, 1}},
		{"skip last all", SkipLast[int](5), core.Range(0, 3), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ToSlice(context.Background(), tt.t.Apply(tt.source))
			if err != nil {
				t.Fatalf("ToSlice() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTake_DoesNotOverPull(t *testing.T) {
	pulled := 0
	src := core.Map(func(v int) (int, error) {
		pulled++
		return v, nil
	}).Apply(core.Range(0, 100))

	if _, err := core.ToSlice(context.Background(), Take[int](3).Apply(src)); err != nil {
		t.Fatal(err)
	}
	if pulled != 3 {
		t.Errorf("pulled = %d, want 3", pulled)
	}
}

func TestFaultsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	src := core.Map(func(v int) (int, error) {
		if v == 1 {
			return 0, boom
		}
		return v, nil
	}).Apply(core.Range(0, 4))

	tests := []struct {
		name       string
		t          core.Transformer[int, int]
		wantValues []int
	}{
		{"where", Where(func(int) bool { return true }), []int{0, 2, 3}},
		{"take counts values only", Take[int](2), []int{0, 2}},
		{"skip counts values only", Skip[int](1), []int{2, 3}},
		{"skip last", SkipLast[int](1), []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values []int
			faults := 0
			for _, r := range core.Collect(context.Background(), tt.t.Apply(src)) {
				if r.IsError() {
					faults++
					continue
				}
				values = append(values, r.Value())
			}
			if faults != 1 {
				t.Errorf("faults = %d, want 1", faults)
			}
			if !slices.Equal(values, tt.wantValues) {
				t.Errorf("values = %v, want %v", values, tt.wantValues)
			}
		})
	}
}

func TestTakeLast_Fault(t *testing.T) {
	boom := errors.New("boom")
	_, err := core.ToSlice(context.Background(), TakeLast[int](1).Apply(core.FromError[int](boom)))
	if err != boom {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestOfType(t *testing.T) {
	src := core.Of[any](1, "two", 3, 4.0, "five")
	got, err := core.ToSlice(context.Background(), OfType[string, any]().Apply(src))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"two", "five"}) {
		t.Errorf("got %v", got)
	}
}
