// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pstld is a drop-in parallel replacement for the standard
// library's sequence algorithms: reductions, scans, element-wise
// transforms, predicate searches, sorting and merging, built on top of a
// small parallel execution fabric.
//
// # Overview
//
// Every exported algorithm has the same signature shape as its serial
// counterpart (a range plus callables) and the same result. Internally each
// one measures the range length, decides whether going parallel is worth
// it, and if so partitions the range into chunks, submits per-chunk work to
// the fabric, and folds the per-chunk results back together. If the fabric
// cannot acquire the memory it needs, the algorithm silently
// falls back to its serial equivalent and still returns the correct answer
// — ErrParallelismUnavailable never escapes a public call.
//
// The fabric ([MaxHWThreads], [ParallelFor], [DispatchAsync], [TaskGroup])
// and the work-stealing deque backing [Sort] and [Merge] are exported, but
// the algorithms drive them internally and a caller of the algorithm-level
// API never needs to touch them.
package pstld
