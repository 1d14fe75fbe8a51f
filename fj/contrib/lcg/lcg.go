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

package lcg

import (
	"fmt"
	"math/bits"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
)

// minParallelChunk is the smallest chunk handed to a pool worker.
// Each chunk pays one O(log n) jump to find its first element.
const minParallelChunk = 1 << 14

// Params describes a compact array: Length elements where element 0 is
// Multiplier mod Modulus and every later element is
// (prev*Multiplier + Increment) mod Modulus.
type Params struct {
	Length     int
	Multiplier uint64
	Increment  uint64
	Modulus    uint64
}

// Validate reports ErrInvalidInput for a non-positive length or a zero
// modulus.
func (p Params) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("length %d must be positive: %w", p.Length, fj.ErrInvalidInput)
	}
	if p.Modulus == 0 {
		return fmt.Errorf("modulus must be non-zero: %w", fj.ErrInvalidInput)
	}
	return nil
}

// Step returns the affine map applied between consecutive elements.
func (p Params) Step() Affine {
	return Affine{Mul: p.Multiplier % p.Modulus, Add: p.Increment % p.Modulus}
}

// First returns element 0.
func (p Params) First() uint64 {
	return p.Multiplier % p.Modulus
}

// Affine is the map x -> Mul*x + Add (mod some modulus).
type Affine struct {
	Mul, Add uint64
}

// Apply evaluates f at x modulo m. x must already be reduced.
func (f Affine) Apply(x, m uint64) uint64 {
	return addMod(mulMod(f.Mul, x, m), f.Add, m)
}

// Then returns the composition g(f(x)) modulo m.
func (f Affine) Then(g Affine, m uint64) Affine {
	return Affine{
		Mul: mulMod(g.Mul, f.Mul, m),
		Add: addMod(mulMod(g.Mul, f.Add, m), g.Add, m),
	}
}

// Jump returns f composed with itself s times modulo m, by repeated squaring.
// Jump(f, 0, m) is the identity map.
func Jump(f Affine, s uint64, m uint64) Affine {
	result := Affine{Mul: 1 % m, Add: 0}
	base := Affine{Mul: f.Mul % m, Add: f.Add % m}
	for s > 0 {
		if s&1 == 1 {
			result = result.Then(base, m)
		}
		base = base.Then(base, m)
		s >>= 1
	}
	return result
}

// Generate produces the array described by p sequentially.
func Generate(p Params) ([]uint64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]uint64, p.Length)
	fill(out, p.First(), p.Step(), p.Modulus)
	return out, nil
}

// GenerateParallel produces the same array as Generate, filling contiguous
// chunks on pool. Each chunk jumps straight to its first element.
func GenerateParallel(pool *workerpool.Pool, p Params) ([]uint64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]uint64, p.Length)
	step := p.Step()
	first := p.First()
	if pool == nil || p.Length < 2*minParallelChunk {
		fill(out, first, step, p.Modulus)
		return out, nil
	}

	pool.ParallelForAtomicBatched(p.Length, minParallelChunk, func(start, end int) {
		x := Jump(step, uint64(start), p.Modulus).Apply(first, p.Modulus)
		fill(out[start:end], x, step, p.Modulus)
	})
	return out, nil
}

// fill writes x, f(x), f(f(x)), ... into dst.
func fill(dst []uint64, x uint64, f Affine, m uint64) {
	for i := range dst {
		dst[i] = x
		x = f.Apply(x, m)
	}
}

// mulMod returns a*b mod m using the full 128-bit product.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// addMod returns a+b mod m for a, b < m.
func addMod(a, b, m uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= m {
		s -= m
	}
	return s
}
