// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import "runtime"

// mergeTask describes one pending merge sub-problem: the bounds [a1, a2)
// into the first input, [b1, b2) into the second, and the position in
// the output where their merged result begins.
type mergeTask struct {
	a1, a2, b1, b2, out int
}

func (t mergeTask) len() int { return (t.a2 - t.a1) + (t.b2 - t.b1) }

// Merge merges the two sorted inputs a and b under less into dst (which
// must be at least len(a)+len(b) long), using a parallel k-way merge
// that bisects the larger input and binary-searches its midpoint in the
// other. Equal elements from a are placed before equal elements from b,
// so Merge is a stable merge.
func Merge[T any](a, b []T, dst []T, less func(x, y T) bool) {
	n1, n2 := len(a), len(b)
	total := n1 + n2
	if total == 0 {
		return
	}
	if total <= mergeParallelLimit {
		serialMerge(a, b, dst, less)
		return
	}

	workers := MaxHWThreads()
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		serialMerge(a, b, dst, less)
		return
	}

	deques := make([]*Deque[mergeTask], workers)
	for i := range deques {
		deques[i] = NewDeque[mergeTask](64)
	}
	counters := getCounters(workers)
	defer putCounters(counters)

	deques[0].PushBottom(mergeTask{0, n1, 0, n2, 0})

	tg := NewTaskGroup()
	for w := 0; w < workers; w++ {
		w := w
		tg.Dispatch(func() {
			mergeWorkerLoop(a, b, dst, less, deques, counters, w, int64(total))
		})
	}
	tg.Wait()
}

func mergeWorkerLoop[T any](a, b, dst []T, less func(x, y T) bool, deques []*Deque[mergeTask], counters []paddedCounter, me int, total int64) {
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
		mergeStep(a, b, dst, less, own, &counters[me], task)
	}
}

// mergeStep bisects task until it is small enough for a serial merge,
// forking the right half out onto own and continuing locally on the left
// half.
func mergeStep[T any](a, b, dst []T, less func(x, y T) bool, own *Deque[mergeTask], counter *paddedCounter, task mergeTask) {
	for task.len() > mergeParallelLimit {
		aLen := task.a2 - task.a1
		bLen := task.b2 - task.b1

		// Picking the pivot from the larger input and locating its
		// partner in the other keeps equal elements from a ahead of
		// equal elements from b in the eventual output: a's pivot
		// claims every b element equal to it for its own (right) half,
		// while a elements equal to a b-pivot stay in the left half.
		var left, right mergeTask
		if aLen >= bLen {
			aMid := task.a1 + aLen/2
			pivot := a[aMid]
			bMid := lowerBound(b, task.b1, task.b2, pivot, less)
			outMid := task.out + (aMid - task.a1) + (bMid - task.b1)
			left = mergeTask{task.a1, aMid, task.b1, bMid, task.out}
			right = mergeTask{aMid, task.a2, bMid, task.b2, outMid}
		} else {
			bMid := task.b1 + bLen/2
			pivot := b[bMid]
			aMid := upperBoundStrict(a, task.a1, task.a2, pivot, less)
			outMid := task.out + (aMid - task.a1) + (bMid - task.b1)
			left = mergeTask{task.a1, aMid, task.b1, bMid, task.out}
			right = mergeTask{aMid, task.a2, bMid, task.b2, outMid}
		}

		if right.len() > 0 {
			if err := own.PushBottom(right); err != nil {
				mergeStep(a, b, dst, less, own, counter, right)
			}
		}
		if left.len() == 0 {
			return
		}
		task = left
	}

	serialMergeInto(a, task.a1, task.a2, b, task.b1, task.b2, dst, task.out, less)
	counter.v.Add(int64(task.len()))
}

// lowerBound returns the index of the first element in a[first:last] not
// less than pivot.
func lowerBound[T any](a []T, first, last int, pivot T, less func(x, y T) bool) int {
	for first < last {
		mid := first + (last-first)/2
		if less(a[mid], pivot) {
			first = mid + 1
		} else {
			last = mid
		}
	}
	return first
}

// upperBoundStrict returns the index of the first element in a[first:last]
// for which pivot is strictly less, i.e. the first element strictly
// greater than pivot under less.
func upperBoundStrict[T any](a []T, first, last int, pivot T, less func(x, y T) bool) int {
	for first < last {
		mid := first + (last-first)/2
		if less(pivot, a[mid]) {
			last = mid
		} else {
			first = mid + 1
		}
	}
	return first
}

func serialMerge[T any](a, b, dst []T, less func(x, y T) bool) {
	serialMergeInto(a, 0, len(a), b, 0, len(b), dst, 0, less)
}

func serialMergeInto[T any](a []T, a1, a2 int, b []T, b1, b2 int, dst []T, out int, less func(x, y T) bool) {
	i, j, k := a1, b1, out
	for i < a2 && j < b2 {
		if less(b[j], a[i]) {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	for i < a2 {
		dst[k] = a[i]
		i++
		k++
	}
	for j < b2 {
		dst[k] = b[j]
		j++
		k++
	}
}
