package benchmarks

import (
	"testing"

	"github.com/ahmetb/go-linq/v3"
	"github.com/destel/rill"
	"github.com/samber/lo"

	"github.com/lguimbarda/min-query/query"
)

// =============================================================================
// Map Benchmarks
// =============================================================================

func BenchmarkMap_MinQuery_Small(b *testing.B)  { benchmarkMapMinQuery(b, SmallSize) }
func BenchmarkMap_MinQuery_Medium(b *testing.B) { benchmarkMapMinQuery(b, MediumSize) }
func BenchmarkMap_MinQuery_Large(b *testing.B)  { benchmarkMapMinQuery(b, LargeSize) }

func benchmarkMapMinQuery(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = query.Select(query.FromSlice(data), square).ToSlice(ctx)
	}
}

func BenchmarkMap_GoLinq_Small(b *testing.B)  { benchmarkMapGoLinq(b, SmallSize) }
func BenchmarkMap_GoLinq_Medium(b *testing.B) { benchmarkMapGoLinq(b, MediumSize) }
func BenchmarkMap_GoLinq_Large(b *testing.B)  { benchmarkMapGoLinq(b, LargeSize) }

func benchmarkMapGoLinq(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var out []int
		linq.From(data).Select(func(x interface{}) interface{} {
			return square(x.(int))
		}).ToSlice(&out)
	}
}

func BenchmarkMap_Lo_Small(b *testing.B)  { benchmarkMapLo(b, SmallSize) }
func BenchmarkMap_Lo_Medium(b *testing.B) { benchmarkMapLo(b, MediumSize) }
func BenchmarkMap_Lo_Large(b *testing.B)  { benchmarkMapLo(b, LargeSize) }

func benchmarkMapLo(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = lo.Map(data, func(x int, _ int) int {
			return square(x)
		})
	}
}

func BenchmarkMap_Rill_Small(b *testing.B)  { benchmarkMapRill(b, SmallSize) }
func BenchmarkMap_Rill_Medium(b *testing.B) { benchmarkMapRill(b, MediumSize) }
func BenchmarkMap_Rill_Large(b *testing.B)  { benchmarkMapRill(b, LargeSize) }

func benchmarkMapRill(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		stream := rill.FromSlice(data, nil)
		mapped := rill.Map(stream, 1, func(x int) (int, error) {
			return square(x), nil
		})
		_, _ = rill.ToSlice(mapped)
	}
}

// =============================================================================
// Filter + Map Benchmarks
// =============================================================================

func BenchmarkFilterMap_MinQuery_Medium(b *testing.B) { benchmarkFilterMapMinQuery(b, MediumSize) }
func BenchmarkFilterMap_MinQuery_Large(b *testing.B)  { benchmarkFilterMapMinQuery(b, LargeSize) }

func benchmarkFilterMapMinQuery(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		evens := query.FromSlice(data).Where(isEven)
		_, _ = query.Select(evens, square).ToSlice(ctx)
	}
}

func BenchmarkFilterMap_GoLinq_Medium(b *testing.B) { benchmarkFilterMapGoLinq(b, MediumSize) }
func BenchmarkFilterMap_GoLinq_Large(b *testing.B)  { benchmarkFilterMapGoLinq(b, LargeSize) }

func benchmarkFilterMapGoLinq(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var out []int
		linq.From(data).
			Where(func(x interface{}) bool { return isEven(x.(int)) }).
			Select(func(x interface{}) interface{} { return square(x.(int)) }).
			ToSlice(&out)
	}
}

func BenchmarkFilterMap_Lo_Medium(b *testing.B) { benchmarkFilterMapLo(b, MediumSize) }
func BenchmarkFilterMap_Lo_Large(b *testing.B)  { benchmarkFilterMapLo(b, LargeSize) }

func benchmarkFilterMapLo(b *testing.B, size int) {
	data := generateInts(size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = lo.FilterMap(data, func(x int, _ int) (int, bool) {
			return square(x), isEven(x)
		})
	}
}

// =============================================================================
// Early termination: only the first few elements are pulled
// =============================================================================

func BenchmarkFirstFive_MinQuery(b *testing.B) {
	data := generateInts(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = query.Select(query.FromSlice(data), square).Where(isEven).Take(5).ToSlice(ctx)
	}
}

func BenchmarkFirstFive_GoLinq(b *testing.B) {
	data := generateInts(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var out []int
		linq.From(data).
			Select(func(x interface{}) interface{} { return square(x.(int)) }).
			Where(func(x interface{}) bool { return isEven(x.(int)) }).
			Take(5).
			ToSlice(&out)
	}
}
