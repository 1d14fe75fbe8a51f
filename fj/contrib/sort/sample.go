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
	"fmt"
	"sync/atomic"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
)

// Sample returns every k-th element of data: the elements at 1-indexed
// positions k, 2k, 3k, ... in index order. If k exceeds len(data) the result
// is empty. It fails with fj.ErrInvalidInput if k <= 0.
func Sample[T any](data []T, k int) ([]T, error) {
	if k <= 0 {
		return nil, fmt.Errorf("stride %d must be positive: %w", k, fj.ErrInvalidInput)
	}
	return AppendSample(make([]T, 0, len(data)/k), data, k)
}

// AppendSample appends every k-th element of data to dst, as Sample does,
// and returns the extended slice.
func AppendSample[T any](dst, data []T, k int) ([]T, error) {
	if k <= 0 {
		return dst, fmt.Errorf("stride %d must be positive: %w", k, fj.ErrInvalidInput)
	}
	for i := k - 1; i < len(data); i += k {
		dst = append(dst, data[i])
	}
	return dst, nil
}

// IsSorted reports whether data is in ascending order.
func IsSorted[T fj.Keys](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// IsSortedParallel reports whether data is in ascending order, checking
// contiguous chunks on pool. With a nil pool it checks on the caller.
func IsSortedParallel[T fj.Keys](pool *workerpool.Pool, data []T) bool {
	if pool == nil || len(data) < 2 {
		return IsSorted(data)
	}
	var unsorted atomic.Bool
	// Chunk [start, end) owns the pairs (i, i+1) for i in [start, end).
	pool.ParallelFor(len(data)-1, func(start, end int) {
		if unsorted.Load() {
			return
		}
		if !IsSorted(data[start : end+1]) {
			unsorted.Store(true)
		}
	})
	return !unsorted.Load()
}
