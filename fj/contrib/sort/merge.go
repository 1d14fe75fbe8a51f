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

import (
	"slices"

	"github.com/ajroetker/go-forkjoin/fj"
)

// Merge merges the ascending runs data[:m] and data[m:] into one ascending
// run in place, using no extra memory. m outside (0, len(data)) is a no-op.
func Merge[T fj.Keys](data []T, m int) {
	n := len(data)
	if m <= 0 || m >= n {
		return
	}
	// Runs already in order.
	if data[m-1] <= data[m] {
		return
	}
	symMerge(data, 0, m, n)
}

// symMerge merges data[a:m] and data[m:b] by splitting both runs around a
// common median, rotating the middle block into place and recursing on the
// two independent sub-merges. O(n log n) moves, O(log n) stack.
func symMerge[T fj.Keys](data []T, a, m, b int) {
	// Single element on the left: binary-search its slot on the right.
	if m-a == 1 {
		i, j := m, b
		for i < j {
			h := int(uint(i+j) >> 1)
			if data[h] < data[a] {
				i = h + 1
			} else {
				j = h
			}
		}
		for k := a; k < i-1; k++ {
			data[k], data[k+1] = data[k+1], data[k]
		}
		return
	}

	// Single element on the right.
	if b-m == 1 {
		i, j := a, m
		for i < j {
			h := int(uint(i+j) >> 1)
			if !(data[m] < data[h]) {
				i = h + 1
			} else {
				j = h
			}
		}
		for k := m; k > i; k-- {
			data[k], data[k-1] = data[k-1], data[k]
		}
		return
	}

	mid := int(uint(a+b) >> 1)
	n := mid + m
	var start, r int
	if m > mid {
		start, r = n-b, mid
	} else {
		start, r = a, m
	}
	p := n - 1
	for start < r {
		c := int(uint(start+r) >> 1)
		if !(data[p-c] < data[c]) {
			start = c + 1
		} else {
			r = c
		}
	}

	end := n - start
	if start < m && m < end {
		rotate(data[start:end], m-start)
	}
	if a < start && start < mid {
		symMerge(data, a, start, mid)
	}
	if mid < end && end < b {
		symMerge(data, mid, end, b)
	}
}

// rotate moves data[k:] in front of data[:k] with three reversals.
func rotate[T fj.Keys](data []T, k int) {
	slices.Reverse(data[:k])
	slices.Reverse(data[k:])
	slices.Reverse(data)
}

// MergeBuffered merges the ascending runs data[:m] and data[m:] in linear
// time, using scratch[:m] as temporary storage. scratch must be at least m
// long. The result is written back into data.
func MergeBuffered[T fj.Keys](data []T, m int, scratch []T) {
	n := len(data)
	if m <= 0 || m >= n {
		return
	}
	if data[m-1] <= data[m] {
		return
	}

	left := scratch[:m]
	copy(left, data[:m])

	// The write index k never passes the read index j of the right run.
	i, j, k := 0, m, 0
	for i < m && j < n {
		if data[j] < left[i] {
			data[k] = data[j]
			j++
		} else {
			data[k] = left[i]
			i++
		}
		k++
	}
	copy(data[k:], left[i:])
}
