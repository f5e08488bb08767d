// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"math/bits"
	"sync/atomic"
)

// StableSort sorts s in place under less, preserving the relative order
// of elements that compare equal, using a bottom-up parallel mergesort.
func StableSort[T any](s []T, less func(a, b T) bool) {
	n := len(s)
	if n <= 4*insertionSortLimit {
		stableSortSerial(s, 0, n, less, make([]T, n))
		return
	}

	workers := MaxHWThreads()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		stableSortSerial(s, 0, n, less, make([]T, n))
		return
	}

	h := treeHeight(n, workers)
	leafCount := 1 << h

	scratch, err := tryMake[T]("stable_sort.scratch", n)
	if err != nil {
		stableSortSerial(s, 0, n, less, make([]T, n))
		return
	}
	flags, err := tryMake[atomic.Bool]("stable_sort.flags", leafCount-1)
	if err != nil {
		stableSortSerial(s, 0, n, less, make([]T, n))
		return
	}

	var nextLeaf atomic.Int64
	driver := &stableSortDriver[T]{
		src: s, scratch: scratch, less: less,
		n: n, height: h, leafCount: leafCount,
		leaves:   NewPartition(n, leafCount),
		flags:    flags,
		nextLeaf: &nextLeaf,
	}

	if workers > leafCount {
		workers = leafCount
	}
	tg := NewTaskGroup()
	for w := 0; w < workers; w++ {
		tg.Dispatch(driver.workerLoop)
	}
	tg.Wait()
}

// treeHeight computes h = min(floor(log2(n/insertionSortLimit)),
// floor(log2(workers*chunksPerCPU))), rounded down to an even number.
func treeHeight(n, workers int) int {
	h1 := bits.Len(uint(n/insertionSortLimit)) - 1
	h2 := bits.Len(uint(workers*chunksPerCPU)) - 1
	h := h1
	if h2 < h {
		h = h2
	}
	if h < 0 {
		h = 0
	}
	if h%2 != 0 {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// stableSortDriver holds the shared state of one StableSort call: the
// leaf partition, the leaf-claiming counter, the per-level merge
// ownership flags, and the ping-pong buffers workers read from and write
// into.
type stableSortDriver[T any] struct {
	src, scratch []T
	less         func(a, b T) bool
	n            int
	height       int
	leafCount    int
	leaves       Partition
	flags        []atomic.Bool
	nextLeaf     *atomic.Int64
}

func (d *stableSortDriver[T]) workerLoop() {
	for {
		leaf := int(d.nextLeaf.Add(1)) - 1
		if leaf >= d.leafCount {
			return
		}
		d.sortLeaf(leaf)
		d.climb(leaf)
	}
}

// leafStart returns the position at which leaf begins, or n when leaf is
// the one-past-the-end sentinel (d.leafCount).
func (d *stableSortDriver[T]) leafStart(leaf int) int {
	if leaf >= d.leafCount {
		return d.n
	}
	first, _ := d.leaves.At(leaf)
	return first
}

// sortLeaf stable-sorts one leaf range, landing the result in the source
// array if the full tree height is even (so the final merge writes into
// src) and in scratch otherwise, per the level-parity ping-pong rule.
func (d *stableSortDriver[T]) sortLeaf(leaf int) {
	first, last := d.leaves.At(leaf)
	if d.height%2 == 0 {
		stableSortSerial(d.src, first, last, d.less, d.scratch)
	} else {
		copy(d.scratch[first:last], d.src[first:last])
		stableSortSerial(d.scratch, first, last, d.less, d.src)
	}
}

// flagIndex returns this leaf's merge-ownership flag at the given level
// (0 = the level that merges adjacent leaf pairs) and the index of the
// first leaf in its sibling group.
func (d *stableSortDriver[T]) flagIndex(leaf, level int) (flagIdx, groupStart int) {
	offset := d.leafCount - (d.leafCount >> uint(level))
	group := leaf >> uint(level+1)
	return offset + group, group << uint(level+1)
}

// climb walks from a freshly finished leaf up toward the root, merging
// sibling subtrees exactly once each: the worker that arrives second at a
// given level (observing the flag already true) performs that level's
// merge and continues climbing; the worker that arrives first abandons
// the level and returns to claiming leaves.
func (d *stableSortDriver[T]) climb(leaf int) {
	for level := 0; level < d.height; level++ {
		flagIdx, groupStart := d.flagIndex(leaf, level)
		if !d.flags[flagIdx].CompareAndSwap(false, true) {
			d.mergeLevel(groupStart, 1<<uint(level), level)
			continue
		}
		return
	}
}

// mergeLevel merges the groupSize-leaf run starting at leaf groupStart
// with the groupSize-leaf run immediately after it, reading from
// whichever buffer holds that level's inputs (by parity) and writing into
// the other.
func (d *stableSortDriver[T]) mergeLevel(groupStart, groupSize, level int) {
	first := d.leafStart(groupStart)
	mid := d.leafStart(groupStart + groupSize)
	last := d.leafStart(groupStart + 2*groupSize)

	fromSrc := d.height%2 == 0
	if level%2 != 0 {
		fromSrc = !fromSrc
	}
	if fromSrc {
		stableMergeInto(d.src, first, mid, last, d.scratch, d.less)
	} else {
		stableMergeInto(d.scratch, first, mid, last, d.src, d.less)
	}
}

// stableMergeInto merges the two sorted runs src[first:mid] and
// src[mid:last] into dst[first:last], preferring the left run on ties to
// preserve stability.
func stableMergeInto[T any](src []T, first, mid, last int, dst []T, less func(a, b T) bool) {
	i, j, k := first, mid, first
	for i < mid && j < last {
		if less(src[j], src[i]) {
			dst[k] = src[j]
			j++
		} else {
			dst[k] = src[i]
			i++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < last {
		dst[k] = src[j]
		j++
		k++
	}
}

// stableSortSerial is the fallback and leaf-level algorithm: insertion
// sort below insertionSortLimit, otherwise recursive halving with a merge
// step. scratch must be globally aligned with s (valid at the same
// absolute indices, length >= last) since stableMergeInto addresses both
// by absolute position; only the final copy is re-sliced to [first, last).
func stableSortSerial[T any](s []T, first, last int, less func(a, b T) bool, scratch []T) {
	n := last - first
	if n <= insertionSortLimit {
		insertionSort(s, first, last, less)
		return
	}
	mid := first + n/2
	stableSortSerial(s, first, mid, less, scratch)
	stableSortSerial(s, mid, last, less, scratch)
	stableMergeInto(s, first, mid, last, scratch, less)
	copy(s[first:last], scratch[first:last])
}
