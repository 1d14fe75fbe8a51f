package sort

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
)

// Generate random data for benchmarks
func generateUint64(n int) []uint64 {
	rng := rand.New(rand.NewSource(42))
	return randomUint64(rng, n, 1_000_000_007)
}

func BenchmarkSort(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	for _, n := range []int{1_000, 100_000, 1_000_000} {
		src := generateUint64(n)
		data := make([]uint64, n)

		b.Run(fmt.Sprintf("Stdlib/%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(data, src)
				slices.Sort(data)
			}
		})

		for _, mode := range allModes {
			for _, scratch := range []bool{false, true} {
				s := NewSorter(WithMode(mode), WithPool(pool), WithScratch(scratch), WithThreshold(256))
				b.Run(fmt.Sprintf("%s/scratch=%v/%d", mode, scratch, n), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						copy(data, src)
						SortWith(s, data)
					}
				})
			}
		}
	}
}

// BenchmarkThreshold measures the default reference granularity against
// coarser leaves.
func BenchmarkThreshold(b *testing.B) {
	const n = 100_000
	src := generateUint64(n)
	data := make([]uint64, n)
	for _, threshold := range []int{GranularityThreshold, 64, 1024, 16384} {
		s := NewSorter(WithMode(fj.ModeSpawn), WithThreshold(threshold), WithScratch(true))
		b.Run(fmt.Sprintf("threshold=%d", threshold), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(data, src)
				SortWith(s, data)
			}
		})
	}
}
