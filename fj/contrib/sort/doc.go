// Package sort provides a fork-join parallel merge sort with a bounded task
// granularity and an in-place ordered merge.
//
// # Algorithm
//
// A task owns a contiguous sub-slice of the buffer. If the sub-slice holds at
// most the granularity threshold (GranularityThreshold by default) elements
// it is sorted sequentially. Otherwise it is split at its midpoint, both
// halves are handed to two concurrent child tasks, the parent blocks until
// both have joined, and the two sorted halves are merged in place.
//
// Children only ever receive their own sub-slice, so sibling tasks cannot
// alias each other's memory and no locking is needed. The merge reads across
// the split point only after the join.
//
// # Execution Modes
//
// The fork step follows the mode selected with WithMode (default
// fj.CurrentMode()):
//   - fj.ModeSpawn: two fresh goroutines per split in a scoped errgroup
//   - fj.ModePool: halves are offered to a bounded workerpool.Pool and run
//     inline when the pool is busy
//   - fj.ModeSequential: same recursion and merges on the caller
//
// WithMaxDepth bounds how many levels fork at all; deeper levels recurse
// sequentially. Every mode produces the same output.
//
// # Merging
//
// Merge uses the SymMerge rotation scheme and needs no extra memory. With
// WithScratch the sorter allocates one scratch buffer per call and merges
// in linear time instead; each task then also owns the matching scratch
// sub-slice.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-forkjoin/fj/contrib/sort"
//
//	func Top(data []uint64, k int) ([]uint64, error) {
//	    sort.Sort(data)
//	    return sort.Sample(data, k)
//	}
package sort
