// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// hwThreadsCount caches the result of the first MaxHWThreads call, a
// query-once-reuse-forever approach, so repeated calls from every
// algorithm's chunk-count formula stay O(1).
var (
	hwThreadsOnce  sync.Once
	hwThreadsCount int
)

// MaxHWThreads returns the number of hardware threads the fabric will
// spread work across. It is safe to call from multiple goroutines and is
// O(1) after the first call.
func MaxHWThreads() int {
	hwThreadsOnce.Do(func() {
		n := runtime.NumCPU()
		if n < 1 {
			n = 1
		}
		hwThreadsCount = n
	})
	return hwThreadsCount
}

// injectAllocFailure lets tests force ErrParallelismUnavailable at a named
// allocation site, so that injecting an allocation failure at
// every site inside a parallel path can be checked to still produce the
// correct serial result, without actually starving the process of memory
// or goroutines.
var injectAllocFailure func(site string) bool

func allocFailureAt(site string) bool {
	return injectAllocFailure != nil && injectAllocFailure(site)
}

// tryMake allocates a slice of length n, reporting ErrParallelismUnavailable
// instead of letting an out-of-memory condition crash the caller. Per-chunk
// result buffers, scan prefixes, stable-sort scratch and flags,
// ForwardPartition tables and deque growth are allocated through this
// helper; Sort and Merge allocate their initial deques and done-counters
// with plain make.
func tryMake[T any](site string, n int) (out []T, err error) {
	if allocFailureAt(site) {
		return nil, ErrParallelismUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = ErrParallelismUnavailable
		}
	}()
	out = make([]T, n)
	return out, nil
}

// WorkerPool holds a worker count and a pair of activeJobs/totalJobs
// counters. ParallelFor and TaskGroup do not create or update a
// WorkerPool, so its counters stay at zero unless a caller sets them.
type WorkerPool struct {
	workers    int
	activeJobs atomic.Int64
	totalJobs  atomic.Int64
}

// Stats reports a snapshot of worker pool activity, useful for callers who
// want visibility without the library exposing a logging surface.
type Stats struct {
	Workers    int
	ActiveJobs int64
	TotalJobs  int64
}

func (wp *WorkerPool) Stats() Stats {
	return Stats{
		Workers:    wp.workers,
		ActiveJobs: wp.activeJobs.Load(),
		TotalJobs:  wp.totalJobs.Load(),
	}
}

// ParallelFor invokes fn(i) for every i in [0, n), with unspecified
// ordering, returning only once every invocation has completed. It may
// run work on the calling goroutine. Ordering across i is unspecified;
// fn must not assume it runs on any particular goroutine.
//
// If a panic escapes fn on any iteration, every other iteration still
// runs; ParallelFor joins every in-flight invocation and then re-raises
// the first panic on the calling goroutine.
func ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := MaxHWThreads()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		var panicVal any
		for i := 0; i < n; i++ {
			func() {
				defer func() {
					if r := recover(); r != nil && panicVal == nil {
						panicVal = r
					}
				}()
				fn(i)
			}()
		}
		if panicVal != nil {
			panic(panicVal)
		}
		return
	}

	var wg sync.WaitGroup
	var panicOnce sync.Once
	var panicVal any
	next := atomic.Int64{}

	worker := func() {
		defer wg.Done()
		for {
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			func() {
				defer func() {
					if r := recover(); r != nil {
						panicOnce.Do(func() { panicVal = r })
					}
				}()
				fn(i)
			}()
		}
	}

	wg.Add(workers)
	for w := 1; w < workers; w++ {
		go worker()
	}
	worker() // run one share on the calling goroutine
	wg.Wait()

	if panicVal != nil {
		panic(panicVal)
	}
}

// DispatchAsync submits fn for asynchronous execution with no completion
// signal. Callers that need to know when fn finishes should use a
// TaskGroup instead.
func DispatchAsync(fn func()) {
	go fn()
}

// TaskGroup is a scoped set of asynchronously dispatched tasks. Dispatch
// may be called any number of times before Wait; Wait blocks until every
// dispatched task has returned, and re-raises the first panic observed
// across all of them only after every task has joined.
type TaskGroup struct {
	wg        sync.WaitGroup
	panicOnce sync.Once
	panicVal  any
}

// NewTaskGroup returns a ready-to-use TaskGroup.
func NewTaskGroup() *TaskGroup {
	return &TaskGroup{}
}

// Dispatch submits fn for asynchronous execution tagged to this group.
func (g *TaskGroup) Dispatch(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.panicOnce.Do(func() { g.panicVal = r })
			}
		}()
		fn()
	}()
}

// Wait blocks until all tasks dispatched to this group have completed, then
// re-raises the first panic any of them produced, if any.
func (g *TaskGroup) Wait() {
	g.wg.Wait()
	if g.panicVal != nil {
		panic(g.panicVal)
	}
}
