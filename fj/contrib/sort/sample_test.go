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
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
)

func TestSample(t *testing.T) {
	data := []uint64{2, 5, 5, 9, 11, 20}
	tests := []struct {
		k    int
		want []uint64
	}{
		{1, []uint64{2, 5, 5, 9, 11, 20}},
		{2, []uint64{5, 9, 20}},
		{3, []uint64{5, 20}},
		{4, []uint64{9}},
		{6, []uint64{20}},
		{7, []uint64{}},
		{1 << 40, []uint64{}},
	}
	for _, tt := range tests {
		got, err := Sample(data, tt.k)
		if err != nil {
			t.Fatalf("Sample(k=%d): %v", tt.k, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Sample(k=%d) mismatch (-want +got):\n%s", tt.k, diff)
		}
	}
}

func TestSampleSingle(t *testing.T) {
	data := []uint64{42}
	got, _ := Sample(data, 1)
	if diff := cmp.Diff([]uint64{42}, got); diff != "" {
		t.Errorf("Sample(k=1) mismatch:\n%s", diff)
	}
	got, _ = Sample(data, 2)
	if len(got) != 0 {
		t.Errorf("Sample(k=2) = %v, want empty", got)
	}
}

func TestSampleInvalid(t *testing.T) {
	for _, k := range []int{0, -1, -100} {
		if _, err := Sample([]uint64{1, 2, 3}, k); !errors.Is(err, fj.ErrInvalidInput) {
			t.Errorf("Sample(k=%d) error = %v, want ErrInvalidInput", k, err)
		}
		if _, err := AppendSample(nil, []uint64{1, 2, 3}, k); !errors.Is(err, fj.ErrInvalidInput) {
			t.Errorf("AppendSample(k=%d) error = %v, want ErrInvalidInput", k, err)
		}
	}
}

func TestAppendSample(t *testing.T) {
	dst := []string{"head"}
	got, err := AppendSample(dst, []string{"a", "b", "c", "d"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"head", "b", "d"}, got); diff != "" {
		t.Errorf("AppendSample mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSorted(t *testing.T) {
	if !IsSorted([]uint64{}) || !IsSorted([]uint64{1}) || !IsSorted([]uint64{1, 1, 2}) {
		t.Error("IsSorted rejected an ascending slice")
	}
	if IsSorted([]uint64{2, 1}) {
		t.Error("IsSorted accepted a descending slice")
	}
}

func TestIsSortedParallel(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, n := range []int{0, 1, 2, 3, 5, 100, 10007} {
		data := make([]uint64, n)
		for i := range data {
			data[i] = uint64(i / 3)
		}
		if !IsSortedParallel(pool, data) {
			t.Errorf("n=%d: ascending data reported unsorted", n)
		}
		if !IsSortedParallel(nil, data) {
			t.Errorf("n=%d: nil pool reported ascending data unsorted", n)
		}

		// A single inversion anywhere, including at chunk edges, is found.
		for i := 1; i < n; i++ {
			if n > 100 && i%97 != 0 && i%2002 > 1 && i != n-1 {
				continue
			}
			broken := slices.Clone(data)
			broken[i-1], broken[i] = broken[i]+1, broken[i-1]
			if IsSortedParallel(pool, broken) {
				t.Errorf("n=%d: inversion at %d not detected", n, i)
			}
		}
	}
}
