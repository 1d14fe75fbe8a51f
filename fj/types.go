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

// Package fj provides the shared runtime for fork-join kernels: element
// constraints, execution mode detection and the error taxonomy used by the
// contrib packages.
//
// Basic usage:
//
//	import (
//		"github.com/ajroetker/go-forkjoin/fj"
//		"github.com/ajroetker/go-forkjoin/fj/contrib/sort"
//	)
//
//	fmt.Println(fj.CurrentMode(), fj.DefaultWorkers())
//	sort.Sort(data)
package fj

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Keys is a constraint for all element types the fork-join sorter accepts.
// Elements are compared as plain values; equal keys carry no identity.
type Keys interface {
	SignedInts | UnsignedInts
}

// Range is a half-open interval [Lo, Hi) of indices into a buffer.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices covered by r.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Split cuts r at its midpoint into two disjoint, contiguous halves whose
// union is r.
func (r Range) Split() (Range, Range) {
	m := r.Lo + (r.Hi-r.Lo)/2
	return Range{Lo: r.Lo, Hi: m}, Range{Lo: m, Hi: r.Hi}
}

// Overlaps reports whether r and o share at least one index.
func (r Range) Overlaps(o Range) bool {
	return r.Lo < o.Hi && o.Lo < r.Hi
}
