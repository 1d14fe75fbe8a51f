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
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
)

// GranularityThreshold is the default range length at or below which a task
// sorts sequentially instead of splitting.
const GranularityThreshold = 10

// Sorter holds the configuration of a fork-join sort. Create one with
// NewSorter. A Sorter may be shared by concurrent callers as long as they
// sort disjoint buffers.
type Sorter struct {
	mode      fj.Mode
	threshold int
	maxDepth  int
	pool      *workerpool.Pool
	tracer    Tracer
	scratch   bool
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithMode selects how splits are executed.
func WithMode(m fj.Mode) Option {
	return func(s *Sorter) { s.mode = m }
}

// WithThreshold sets the granularity threshold. Values below 1 are clamped
// to 1.
func WithThreshold(n int) Option {
	return func(s *Sorter) { s.threshold = max(n, 1) }
}

// WithMaxDepth limits forking to the top depth levels of the recursion.
// Zero or a negative value means no limit.
func WithMaxDepth(depth int) Option {
	return func(s *Sorter) { s.maxDepth = max(depth, 0) }
}

// WithPool makes fj.ModePool sorts run on pool. Without it, each call in
// pool mode creates and closes a pool of fj.DefaultWorkers workers.
func WithPool(pool *workerpool.Pool) Option {
	return func(s *Sorter) { s.pool = pool }
}

// WithTracer installs a hook that observes every sequential-sort and merge
// phase.
func WithTracer(t Tracer) Option {
	return func(s *Sorter) { s.tracer = t }
}

// WithScratch makes merges use a scratch buffer of the input's size instead
// of merging without extra memory.
func WithScratch(enabled bool) Option {
	return func(s *Sorter) { s.scratch = enabled }
}

// NewSorter returns a Sorter using fj.CurrentMode and GranularityThreshold
// unless overridden by opts.
func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{
		mode:      fj.CurrentMode(),
		threshold: GranularityThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the execution mode of s.
func (s *Sorter) Mode() fj.Mode {
	return s.mode
}

// Threshold returns the granularity threshold of s.
func (s *Sorter) Threshold() int {
	return s.threshold
}

// MaxDepth returns the fork depth limit of s, 0 meaning unlimited.
func (s *Sorter) MaxDepth() int {
	return s.maxDepth
}

// Sort sorts data ascending in place.
func Sort[T fj.Keys](data []T) {
	SortWith(NewSorter(), data)
}

// SortWith sorts data ascending in place with s. It returns once every task
// spawned for data has joined.
func SortWith[T fj.Keys](s *Sorter, data []T) {
	run(s, data, 0)
}

// SortRange sorts data[l:r] ascending in place, leaving the rest of data
// untouched. It fails with fj.ErrPrecondition if data is empty or [l, r)
// does not lie within data.
func SortRange[T fj.Keys](data []T, l, r int, opts ...Option) error {
	if err := fj.CheckRange(len(data), l, r); err != nil {
		return err
	}
	run(NewSorter(opts...), data[l:r:r], l)
	return nil
}

// job is the per-call state shared by every task of one sort.
type job struct {
	*Sorter
	pool *workerpool.Pool
}

// run sets up the per-call pool and scratch space, then runs the root task.
// base is the absolute index of data[0], reported to the tracer.
func run[T fj.Keys](s *Sorter, data []T, base int) {
	if len(data) <= 1 {
		return
	}

	j := &job{Sorter: s, pool: s.pool}
	if s.mode == fj.ModePool && j.pool == nil && len(data) > s.threshold {
		j.pool = workerpool.New(fj.DefaultWorkers())
		defer j.pool.Close()
	}

	var scratch []T
	if s.scratch {
		scratch = make([]T, len(data))
	}
	sortTask(j, data, scratch, base, 0)
}

// sortTask sorts data, which starts at absolute index base. On return data
// is ascending. scratch, if non-nil, has the same length as data and is
// owned by this task.
func sortTask[T fj.Keys](j *job, data, scratch []T, base, depth int) {
	n := len(data)
	if n <= j.threshold {
		j.enter(PhaseSort, base, n)
		sortSequential(data)
		j.leave(PhaseSort, base, n)
		return
	}

	lr, rr := fj.Range{Lo: base, Hi: base + n}.Split()
	m := lr.Len()
	left, right := data[:m:m], data[m:]
	var lscratch, rscratch []T
	if scratch != nil {
		lscratch, rscratch = scratch[:m:m], scratch[m:]
	}

	j.fork(depth,
		func() { sortTask(j, left, lscratch, lr.Lo, depth+1) },
		func() { sortTask(j, right, rscratch, rr.Lo, depth+1) },
	)

	j.enter(PhaseMerge, base, n)
	if scratch != nil {
		MergeBuffered(data, m, scratch)
	} else {
		Merge(data, m)
	}
	j.leave(PhaseMerge, base, n)
}

// fork runs left and right, concurrently when the mode and depth allow it,
// and returns after both have completed.
func (j *job) fork(depth int, left, right func()) {
	if j.mode == fj.ModeSequential || (j.maxDepth > 0 && depth >= j.maxDepth) {
		left()
		right()
		return
	}

	if j.mode == fj.ModePool && j.pool != nil {
		j.pool.Do(left, right)
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		left()
		return nil
	})
	g.Go(func() error {
		right()
		return nil
	})
	_ = g.Wait()
}

func (j *job) enter(p Phase, base, n int) {
	if j.tracer != nil {
		j.tracer.Enter(p, fj.Range{Lo: base, Hi: base + n})
	}
}

func (j *job) leave(p Phase, base, n int) {
	if j.tracer != nil {
		j.tracer.Leave(p, fj.Range{Lo: base, Hi: base + n})
	}
}
