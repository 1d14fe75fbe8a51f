// Copyright 2025 The go-forkjoin Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// fork-join computation. A Pool is created once and reused across many
// operations, so recursive kernels do not pay a goroutine spawn per split and
// total concurrency stays bounded by the worker count.
//
// Work is only handed to a worker that is idle at the moment of the hand-off;
// otherwise the caller runs it inline. A task that blocks waiting for its
// children therefore never waits on work queued behind itself, which makes
// nested Do calls from inside pool workers safe.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.Do(
//	    func() { sortRange(left) },
//	    func() { sortRange(right) },
//	)
//	mergeHalves()
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	_ cpu.CacheLinePad
	// idle counts workers parked on workC with no reservation against them.
	idle atomic.Int64
	_    cpu.CacheLinePad
}

// workItem represents a single task handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Never more items in flight than reserved idle workers.
		workC: make(chan workItem, numWorkers),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for {
		p.idle.Add(1)
		item, ok := <-p.workC
		if !ok {
			return
		}
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe. Close must not race with operations
// still submitting work.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// reserve claims one idle worker, reporting false if none is idle.
func (p *Pool) reserve() bool {
	for {
		n := p.idle.Load()
		if n <= 0 {
			return false
		}
		if p.idle.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// TryGo hands fn to an idle worker and registers it on wg. It reports false,
// without running fn, if the pool is closed or every worker is busy; the
// caller is then expected to run fn itself. TryGo never blocks.
func (p *Pool) TryGo(fn func(), wg *sync.WaitGroup) bool {
	if p.closed.Load() || !p.reserve() {
		return false
	}
	wg.Add(1)
	p.workC <- workItem{fn: fn, barrier: wg}
	return true
}

// Do runs every fn and returns once all of them have completed. All but the
// last function are offered to idle workers; the last one, and any that
// could not be handed off, run on the calling goroutine.
func (p *Pool) Do(fns ...func()) {
	switch len(fns) {
	case 0:
		return
	case 1:
		fns[0]()
		return
	}

	var wg sync.WaitGroup
	last := len(fns) - 1
	for _, fn := range fns[:last] {
		if !p.TryGo(fn, &wg) {
			fn()
		}
	}
	fns[last]()
	wg.Wait()
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each task processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Caller participates, so it counts as one more worker.
	workers := min(p.numWorkers+1, n)

	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	fns := make([]func(), 0, workers)
	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			break
		}
		fns = append(fns, func() { fn(start, end) })
	}

	p.Do(fns...)
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes.
//
// fn receives the index to process.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	p.ParallelForAtomicBatched(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers+1, numBatches)

	if workers == 1 {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int64
	steal := func() {
		for {
			batch := int(nextBatch.Add(1)) - 1
			start := batch * batchSize
			if start >= n {
				return
			}
			end := min(start+batchSize, n)
			fn(start, end)
		}
	}

	fns := make([]func(), workers)
	for i := range fns {
		fns[i] = steal
	}
	p.Do(fns...)
}
