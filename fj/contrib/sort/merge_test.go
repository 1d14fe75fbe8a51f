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
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sortedRuns builds two ascending runs of lengths m and n-m.
func sortedRuns(rng *rand.Rand, n, m int, limit int64) []uint64 {
	data := randomUint64(rng, n, limit)
	slices.Sort(data[:m])
	slices.Sort(data[m:])
	return data
}

func TestMerge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{2, 3, 5, 10, 11, 64, 257, 1000} {
		for _, m := range []int{1, n / 3, n / 2, n - 1} {
			if m <= 0 || m >= n {
				continue
			}
			for _, limit := range []int64{3, 1 << 32} {
				data := sortedRuns(rng, n, m, limit)
				want := slices.Clone(data)
				slices.Sort(want)

				inPlace := slices.Clone(data)
				Merge(inPlace, m)
				if diff := cmp.Diff(want, inPlace); diff != "" {
					t.Errorf("Merge(n=%d, m=%d) mismatch (-want +got):\n%s", n, m, diff)
				}

				buffered := slices.Clone(data)
				MergeBuffered(buffered, m, make([]uint64, n))
				if diff := cmp.Diff(want, buffered); diff != "" {
					t.Errorf("MergeBuffered(n=%d, m=%d) mismatch (-want +got):\n%s", n, m, diff)
				}
			}
		}
	}
}

func TestMergeDisjointRuns(t *testing.T) {
	// Right run entirely below the left run: the full rotation case.
	data := []uint64{10, 11, 12, 13, 1, 2, 3}
	Merge(data, 4)
	if diff := cmp.Diff([]uint64{1, 2, 3, 10, 11, 12, 13}, data); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}

	// Already ordered: untouched.
	data = []uint64{1, 2, 3, 10, 11}
	Merge(data, 3)
	if diff := cmp.Diff([]uint64{1, 2, 3, 10, 11}, data); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNoop(t *testing.T) {
	data := []uint64{3, 1, 2}
	Merge(data, 0)
	Merge(data, 3)
	MergeBuffered(data, 0, nil)
	MergeBuffered(data, 3, nil)
	if diff := cmp.Diff([]uint64{3, 1, 2}, data); diff != "" {
		t.Errorf("out-of-range split modified data:\n%s", diff)
	}
}

func TestRotate(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7}
	rotate(data, 3)
	if diff := cmp.Diff([]int{4, 5, 6, 7, 1, 2, 3}, data); diff != "" {
		t.Errorf("rotate mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkMerge(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	const n = 1 << 16
	src := sortedRuns(rng, n, n/2, 1<<40)
	data := make([]uint64, n)
	scratch := make([]uint64, n)

	b.Run("InPlace", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			copy(data, src)
			Merge(data, n/2)
		}
	})
	b.Run("Buffered", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			copy(data, src)
			MergeBuffered(data, n/2, scratch)
		}
	})
}
