// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// Policy constants fixed across the library. These are package vars rather
// than consts, so tests can override them to exercise small-N code paths
// deterministically.
var (
	// chunksPerCPU is the oversubscription factor used by most algorithms.
	// On amd64 CPUs with AVX2, simsys_amd64.go's init lowers it to 6.
	chunksPerCPU = 8

	// insertionSortLimit is the length below which sort/stable_sort fall
	// back to serial insertion sort inside a worker task.
	insertionSortLimit = 32

	// mergeParallelLimit is the combined input length below which a merge
	// sub-problem is completed serially rather than bisected further.
	mergeParallelLimit = 8192
)

// cacheLinePad matches hardware_destructive_interference_size: the
// byte alignment used to pad shared per-worker atomics so that
// adjacent workers' done-counters don't false-share a cache line. It is a
// const, not a var, because it sizes the padding array in paddedCounter.
const cacheLinePad = 128

// chunksMinFraction1 returns min(hwThreads*chunksPerCPU, n): the chunk
// count used when per-chunk overhead is low and a chunk may legitimately
// hold a single element.
func chunksMinFraction1(n int) int {
	c := MaxHWThreads() * chunksPerCPU
	if n < c {
		return n
	}
	return c
}

// chunksMinFraction2 returns min(hwThreads*chunksPerCPU, n/2): the chunk
// count used when each chunk must hold at least two elements, e.g.
// reductions without an identity element or a min/max scan.
func chunksMinFraction2(n int) int {
	c := MaxHWThreads() * chunksPerCPU
	half := n / 2
	if half < c {
		return half
	}
	return c
}
