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

package fj

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports malformed or out-of-range parameters given to a
	// generator or sampler (non-positive length, stride or modulus).
	ErrInvalidInput = errors.New("invalid input")

	// ErrPrecondition reports a caller bug: an empty buffer, or a range
	// outside the buffer or with l > r. Kernels never produce it on valid input.
	ErrPrecondition = errors.New("precondition violation")
)

// CheckRange validates that [l, r) lies within a non-empty buffer of
// length n.
func CheckRange(n, l, r int) error {
	switch {
	case n == 0:
		return fmt.Errorf("range [%d, %d) of an empty buffer: %w", l, r, ErrPrecondition)
	case l < 0:
		return fmt.Errorf("range [%d, %d) starts before 0: %w", l, r, ErrPrecondition)
	case l > r:
		return fmt.Errorf("range [%d, %d) has l > r: %w", l, r, ErrPrecondition)
	case r > n:
		return fmt.Errorf("range [%d, %d) exceeds length %d: %w", l, r, n, ErrPrecondition)
	}
	return nil
}
