// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"math/bits"
	"runtime"
)

// sortTask describes one pending quicksort subrange: the half-open bounds
// [first, last) into the shared slice, and the recursion-depth budget
// left before falling back to heapsort.
type sortTask struct {
	first, last, depth int
}

// Sort sorts s in place under less, using an introspective parallel
// quicksort on work-stealing deques. It is not stable; use StableSort
// when equal elements must keep their relative order.
func Sort[T any](s []T, less func(a, b T) bool) {
	n := len(s)
	if n <= insertionSortLimit {
		insertionSort(s, 0, n, less)
		return
	}

	workers := MaxHWThreads()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		sortSerial(s, less)
		return
	}

	deques := make([]*Deque[sortTask], workers)
	for i := range deques {
		deques[i] = NewDeque[sortTask](64)
	}
	counters := getCounters(workers)
	defer putCounters(counters)

	depth := 2 * bitLen(n)
	deques[0].PushBottom(sortTask{0, n, depth})

	runSortWorkers(s, less, deques, counters, int64(n))
}

// runSortWorkers drives the work-stealing loop shared by Sort: each
// worker pops from its own deque, steals from others in rotation when its
// own is empty, and exits once the aggregate done count reaches total.
func runSortWorkers[T any](s []T, less func(a, b T) bool, deques []*Deque[sortTask], counters []paddedCounter, total int64) {
	workers := len(deques)
	tg := NewTaskGroup()
	for w := 0; w < workers; w++ {
		w := w
		tg.Dispatch(func() {
			sortWorkerLoop(s, less, deques, counters, w, total)
		})
	}
	tg.Wait()
}

func sortWorkerLoop[T any](s []T, less func(a, b T) bool, deques []*Deque[sortTask], counters []paddedCounter, me int, total int64) {
	own := deques[me]
	workers := len(deques)
	for {
		task, ok := own.PopBottom()
		if !ok {
			for step := 1; step < workers; step++ {
				victim := (me + step) % workers
				task, ok = deques[victim].StealTop()
				if ok {
					break
				}
			}
		}
		if !ok {
			if sumCounters(counters) >= total {
				return
			}
			runtime.Gosched()
			continue
		}
		sortStep(s, less, own, &counters[me], task)
	}
}

// sortStep processes one subrange task, crediting finished elements to
// counter and pushing the larger unsorted side back onto own for a thief
// (or this same worker) to pick up, continuing locally on the smaller
// side via a tight loop rather than recursion.
func sortStep[T any](s []T, less func(a, b T) bool, own *Deque[sortTask], counter *paddedCounter, task sortTask) {
	for {
		first, last, depth := task.first, task.last, task.depth
		n := last - first

		if n <= insertionSortLimit {
			insertionSort(s, first, last, less)
			counter.v.Add(int64(n))
			return
		}
		if depth == 0 {
			heapSort(s, first, last, less)
			counter.v.Add(int64(n))
			return
		}

		pfirst, plast := threeWayPartition(s, first, last, less)
		counter.v.Add(int64(plast - pfirst))

		leftLen := pfirst - first
		rightLen := last - plast
		nextDepth := depth - 1

		var big, small sortTask
		if leftLen >= rightLen {
			big = sortTask{first, pfirst, nextDepth}
			small = sortTask{plast, last, nextDepth}
		} else {
			big = sortTask{plast, last, nextDepth}
			small = sortTask{first, pfirst, nextDepth}
		}

		if big.last > big.first {
			if err := own.PushBottom(big); err != nil {
				// No room for a second deque entry: the larger side is
				// sorted serially in place of forking it out.
				bFirst, bLast, bDepth := big.first, big.last, big.depth
				sortStep(s, less, own, counter, sortTask{bFirst, bLast, bDepth})
			}
		}

		if small.last <= small.first {
			return
		}
		task = small
	}
}

func sortSerial[T any](s []T, less func(a, b T) bool) {
	n := len(s)
	introsort(s, 0, n, less, 2*bitLen(n))
}

func introsort[T any](s []T, first, last int, less func(a, b T) bool, depth int) {
	for {
		n := last - first
		if n <= insertionSortLimit {
			insertionSort(s, first, last, less)
			return
		}
		if depth == 0 {
			heapSort(s, first, last, less)
			return
		}
		pfirst, plast := threeWayPartition(s, first, last, less)
		depth--
		leftLen := pfirst - first
		rightLen := last - plast
		if leftLen < rightLen {
			introsort(s, first, pfirst, less, depth)
			first = plast
		} else {
			introsort(s, plast, last, less, depth)
			last = pfirst
		}
	}
}

func bitLen(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

func insertionSort[T any](s []T, first, last int, less func(a, b T) bool) {
	for i := first + 1; i < last; i++ {
		for j := i; j > first && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// heapSort is the introsort depth-exhaustion fallback: make_heap followed
// by sort_heap, both in place over s[first:last].
func heapSort[T any](s []T, first, last int, less func(a, b T) bool) {
	n := last - first
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(s, first, i, n, less)
	}
	for end := n - 1; end > 0; end-- {
		s[first], s[first+end] = s[first+end], s[first]
		siftDown(s, first, 0, end, less)
	}
}

func siftDown[T any](s []T, base, root, n int, less func(a, b T) bool) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && less(s[base+child], s[base+child+1]) {
			child++
		}
		if !less(s[base+root], s[base+child]) {
			return
		}
		s[base+root], s[base+child] = s[base+child], s[base+root]
		root = child
	}
}

// medianOfThree returns the index (among a, b, c) holding the median
// value under less.
func medianOfThree[T any](s []T, a, b, c int, less func(x, y T) bool) int {
	if less(s[a], s[b]) {
		if less(s[b], s[c]) {
			return b
		}
		if less(s[a], s[c]) {
			return c
		}
		return a
	}
	if less(s[a], s[c]) {
		return a
	}
	if less(s[b], s[c]) {
		return c
	}
	return b
}

// ninther picks a pivot index for long ranges: the median of three
// medians-of-three, each sampled from a different third of the range.
func ninther[T any](s []T, first, last int, less func(a, b T) bool) int {
	n := last - first
	step := n / 8
	m1 := medianOfThree(s, first, first+step, first+2*step, less)
	mid := first + n/2
	m2 := medianOfThree(s, mid-step, mid, mid+step, less)
	m3 := medianOfThree(s, last-1-2*step, last-1-step, last-1, less)
	return medianOfThree(s, m1, m2, m3, less)
}

// threeWayPartition performs a Bentley-McIlroy three-way partition of
// s[first:last] under less, returning the bounds [pfirst, plast) of the
// run of elements equal to the chosen pivot. Elements less than the pivot
// end up before pfirst, elements greater end up from plast onward.
func threeWayPartition[T any](s []T, first, last int, less func(a, b T) bool) (pfirst, plast int) {
	n := last - first
	var pivotIdx int
	if n >= 128 {
		pivotIdx = ninther(s, first, last, less)
	} else {
		pivotIdx = medianOfThree(s, first, first+n/2, last-1, less)
	}
	s[first], s[pivotIdx] = s[pivotIdx], s[first]
	pivot := s[first]

	lt := first
	gt := last - 1
	i := first + 1
	for i <= gt {
		switch {
		case less(s[i], pivot):
			s[lt], s[i] = s[i], s[lt]
			lt++
			i++
		case less(pivot, s[i]):
			s[i], s[gt] = s[gt], s[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt + 1
}
