// Copyright 2025 go-forkjoin Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sort

import "github.com/ajroetker/go-forkjoin/fj"

// Thresholds for the sequential leaf sort.
const (
	// sortInsertionThreshold: use insertion sort for ranges this size or smaller.
	sortInsertionThreshold = 24

	// pivotSampleThreshold: use a 5-point sample instead of median-of-3 above this size.
	pivotSampleThreshold = 64
)

// sortSequential sorts data in place on the calling goroutine. It is an
// introsort: insertion sort for short ranges, 3-way quicksort otherwise, and
// heapsort once the recursion gets too deep.
func sortSequential[T fj.Keys](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Max recursion depth: 2 * floor(log2(n))
	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	maxDepth *= 2

	introSort(data, maxDepth)
}

func introSort[T fj.Keys](data []T, depthLimit int) {
	for {
		n := len(data)
		if n <= sortInsertionThreshold {
			sortInsertion(data)
			return
		}

		if depthLimit == 0 {
			sortHeap(data)
			return
		}
		depthLimit--

		lt, gt := partition3Way(data, pivot(data))

		// Recurse into the smaller side, loop on the larger.
		if lt < n-gt {
			introSort(data[:lt], depthLimit)
			data = data[gt:]
		} else {
			introSort(data[gt:], depthLimit)
			data = data[:lt]
		}
	}
}

// sortInsertion sorts short runs. Values no smaller than data[0] shift
// right without a bounds check, since data[0] stops the scan.
func sortInsertion[T fj.Keys](data []T) {
	for i := 1; i < len(data); i++ {
		v := data[i]
		if v < data[0] {
			copy(data[1:i+1], data[:i])
			data[0] = v
			continue
		}
		j := i
		for ; data[j-1] > v; j-- {
			data[j] = data[j-1]
		}
		data[j] = v
	}
}

// sortHeap is the introsort fallback once the partition depth budget runs
// out. It heapifies data as a max-heap and then pops the root into the
// shrinking tail.
func sortHeap[T fj.Keys](data []T) {
	for root := len(data)/2 - 1; root >= 0; root-- {
		siftDown(data, root)
	}
	for end := len(data) - 1; end > 0; end-- {
		data[0], data[end] = data[end], data[0]
		siftDown(data[:end], 0)
	}
}

// siftDown restores the max-heap property of heap below root.
func siftDown[T fj.Keys](heap []T, root int) {
	v := heap[root]
	for {
		child := 2*root + 1
		if child >= len(heap) {
			break
		}
		if r := child + 1; r < len(heap) && heap[r] > heap[child] {
			child = r
		}
		if heap[child] <= v {
			break
		}
		heap[root] = heap[child]
		root = child
	}
	heap[root] = v
}

// pivot selects a pivot value: median of 3 for short ranges, median of 5
// evenly spaced samples for longer ones.
func pivot[T fj.Keys](data []T) T {
	n := len(data)
	if n <= pivotSampleThreshold {
		return median3(data[0], data[n/2], data[n-1])
	}

	samples := [5]T{
		data[0],
		data[n/4],
		data[n/2],
		data[3*n/4],
		data[n-1],
	}
	sortInsertion(samples[:])
	return samples[2]
}

func median3[T fj.Keys](a, b, c T) T {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
		if a > b {
			b = a
		}
	}
	return b
}

// partition3Way performs 3-way partitioning (Dutch National Flag).
// On return data[:lt] < pivot, data[lt:gt] == pivot and data[gt:] > pivot.
func partition3Way[T fj.Keys](data []T, pivot T) (int, int) {
	lt := 0
	gt := len(data)
	i := 0

	for i < gt {
		if data[i] < pivot {
			data[lt], data[i] = data[i], data[lt]
			lt++
			i++
		} else if data[i] > pivot {
			gt--
			data[i], data[gt] = data[gt], data[i]
		} else {
			i++
		}
	}

	return lt, gt
}
