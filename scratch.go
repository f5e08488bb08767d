// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"sync"
	"sync/atomic"
)

// paddedCounter is a per-worker done accumulator, padded out to a cache
// line so that two workers incrementing adjacent counters never
// false-share. Only the owning worker ever adds to v; every worker may
// concurrently read it while polling the termination sum, hence the
// atomic.
type paddedCounter struct {
	v    atomic.Int64
	_pad [cacheLinePad - 8]byte
}

// countersPool reuses []paddedCounter backing arrays across Sort/
// Merge calls: a single reusable-buffer pool for the done-counter arrays
// each work-stealing driver needs one of per call.
var countersPool = sync.Pool{
	New: func() any {
		s := make([]paddedCounter, 0, 64)
		return &s
	},
}

// getCounters returns a zeroed []paddedCounter of length n, reusing a
// pooled backing array when large enough.
func getCounters(n int) []paddedCounter {
	sp := countersPool.Get().(*[]paddedCounter)
	s := *sp
	if cap(s) < n {
		s = make([]paddedCounter, n)
		return s
	}
	s = s[:n]
	for i := range s {
		s[i].v.Store(0)
	}
	return s
}

// putCounters returns a counters slice to the pool. Oversized arrays are
// dropped rather than pooled, since they're unlikely to get reused at that
// size.
func putCounters(s []paddedCounter) {
	if cap(s) > 4096 {
		return
	}
	countersPool.Put(&s)
}

// sumCounters totals every worker's done counter: the termination test a
// sort/merge driver polls, where each worker exits once the aggregate
// done count equals N.
func sumCounters(s []paddedCounter) int64 {
	var total int64
	for i := range s {
		total += s[i].v.Load()
	}
	return total
}
