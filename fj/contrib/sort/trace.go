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

// Phase identifies the part of a task that touches buffer memory.
type Phase int

const (
	// PhaseSort is the sequential sort of a range at or below the threshold.
	PhaseSort Phase = iota

	// PhaseMerge is the merge of two sorted sibling ranges after they joined.
	PhaseMerge
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSort:
		return "sort"
	case PhaseMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Tracer observes the phases in which tasks read and write the buffer.
// Ranges are absolute indices into the buffer passed to the sort. Enter and
// Leave are called from the goroutine running the task, possibly from many
// goroutines at once.
type Tracer interface {
	Enter(p Phase, r fj.Range)
	Leave(p Phase, r fj.Range)
}
