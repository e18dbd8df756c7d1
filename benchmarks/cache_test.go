package benchmarks

import (
	"sync"
	"testing"

	"github.com/lguimbarda/min-query/query"
)

// =============================================================================
// Cached vs. repeated traversal of an expensive pipeline
// =============================================================================

func expensive(data []int) query.Enumerable[int] {
	return query.Select(query.FromSlice(data), func(x int) int {
		for range 32 {
			x = (x*31 + 7) % 1_000_003
		}
		return x
	}).Where(isEven)
}

func BenchmarkRepeat_Uncached(b *testing.B) {
	seq := expensive(generateInts(MediumSize))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for range 8 {
			_, _ = seq.Count(ctx)
		}
	}
}

func BenchmarkRepeat_Cached(b *testing.B) {
	data := generateInts(MediumSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		seq := expensive(data).Cached()
		for range 8 {
			_, _ = seq.Count(ctx)
		}
	}
}

func BenchmarkRepeat_CachedConcurrent(b *testing.B) {
	data := generateInts(MediumSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		seq := expensive(data).Cached()
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = seq.Count(ctx)
			}()
		}
		wg.Wait()
	}
}
