// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"iter"
	"sync/atomic"
)

// AllOf reports whether pred holds for every element of s.
func AllOf[T any](s []T, pred func(T) bool) bool {
	return !AnyOf(s, func(v T) bool { return !pred(v) })
}

// NoneOf reports whether pred holds for no element of s.
func NoneOf[T any](s []T, pred func(T) bool) bool {
	return !AnyOf(s, pred)
}

// AnyOf reports whether pred holds for at least one element of s. The
// first chunk to find an element satisfying pred sets a shared done flag and
// every other chunk checks it on entry to short-circuit.
func AnyOf[T any](s []T, pred func(T) bool) bool {
	n := len(s)
	if n == 0 {
		return false
	}
	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		for _, v := range s {
			if pred(v) {
				return true
			}
		}
		return false
	}

	var done atomic.Bool
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if done.Load() {
			return
		}
		first, last := p.At(i)
		for _, v := range s[first:last] {
			if done.Load() {
				return
			}
			if pred(v) {
				done.Store(true)
				return
			}
		}
	})
	return done.Load()
}

// Count returns the number of elements of s equal to target.
func Count[T comparable](s []T, target T) int {
	return CountIf(s, func(v T) bool { return v == target })
}

// CountIf returns the number of elements of s for which pred holds. Each
// chunk counts locally into a shared atomic accumulator; there is no
// ordering constraint on the summation.
func CountIf[T any](s []T, pred func(T) bool) int {
	n := len(s)
	if n == 0 {
		return 0
	}
	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		count := 0
		for _, v := range s {
			if pred(v) {
				count++
			}
		}
		return count
	}

	var total atomic.Int64
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		local := int64(0)
		for _, v := range s[first:last] {
			if pred(v) {
				local++
			}
		}
		total.Add(local)
	})
	return int(total.Load())
}

// FindIf returns the index of the first element for which pred holds, or
// -1 if none does. Chunks publish their first match to a Min tracker
// keyed by chunk index; a chunk already beaten by a lower chunk skips
// work.
func FindIf[T any](s []T, pred func(T) bool) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		for i, v := range s {
			if pred(v) {
				return i
			}
		}
		return -1
	}

	tracker := newMinIndexTracker()
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if tracker.Beaten(i) {
				return
			}
			if pred(s[j]) {
				tracker.Report(i, j)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return -1
	}
	return idx
}

// ForwardFindIf is FindIf's forward-only counterpart: it scans a seq that
// can only be pulled once, start to end, known to yield exactly n values.
// Since a forward range has no notion of an index, it returns the matching
// value itself rather than a position. seq is first bucketed into chunks
// contiguous groups by NewForwardPartition; each chunk then runs the same
// first-match-wins scan as FindIf, reporting to a cursorTracker (there is
// no index to track, only which chunk answered and its value) keyed on
// chunk order, so the leftmost chunk with a match always wins regardless
// of completion order.
func ForwardFindIf[T any](seq iter.Seq[T], n, chunks int, pred func(T) bool) (T, bool) {
	var zero T
	if n == 0 {
		return zero, false
	}
	if chunks <= 1 {
		for v := range seq {
			if pred(v) {
				return v, true
			}
		}
		return zero, false
	}

	fp, err := NewForwardPartition(seq, n, chunks)
	if err != nil {
		for v := range seq {
			if pred(v) {
				return v, true
			}
		}
		return zero, false
	}

	tracker := newMinCursorTracker[T]()
	ParallelFor(fp.Chunks(), func(i int) {
		if tracker.Beaten(int64(i)) {
			return
		}
		for _, v := range fp.At(i) {
			if tracker.Beaten(int64(i)) {
				return
			}
			if pred(v) {
				tracker.Report(int64(i), v)
				return
			}
		}
	})
	return tracker.Result()
}

// Find returns the index of the first element equal to target, or -1.
func Find[T comparable](s []T, target T) int {
	return FindIf(s, func(v T) bool { return v == target })
}

// FindIfNot returns the index of the first element for which pred does
// not hold, or -1.
func FindIfNot[T any](s []T, pred func(T) bool) int {
	return FindIf(s, func(v T) bool { return !pred(v) })
}

// FindFirstOf returns the index of the first element of s that is equal
// (under eq) to any element of targets, or -1.
func FindFirstOf[T any](s, targets []T, eq func(T, T) bool) int {
	return FindIf(s, func(v T) bool {
		for _, t := range targets {
			if eq(v, t) {
				return true
			}
		}
		return false
	})
}

// FindEnd returns the starting index of the last occurrence of pattern
// within s (under eq), or -1 if pattern does not occur. Chunks publish to
// a Max tracker; a chunk keeps only the last match found within itself
// before publishing, which is correct because chunk partitioning is
// contiguous and non-overlapping.
func FindEnd[T any](s, pattern []T, eq func(T, T) bool) int {
	n, m := len(s), len(pattern)
	if m == 0 {
		return n
	}
	if m > n {
		return -1
	}
	starts := n - m + 1

	matchAt := func(start int) bool {
		for k := 0; k < m; k++ {
			if !eq(s[start+k], pattern[k]) {
				return false
			}
		}
		return true
	}

	chunks := chunksMinFraction1(starts)
	if chunks <= 1 {
		for i := starts - 1; i >= 0; i-- {
			if matchAt(i) {
				return i
			}
		}
		return -1
	}

	tracker := newMaxIndexTracker()
	p := NewPartition(starts, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := last - 1; j >= first; j-- {
			if matchAt(j) {
				tracker.Report(i, j)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return -1
	}
	return idx
}

// ForwardFindEnd is FindEnd's forward-only counterpart. A single-pass
// iterator can't look backward or ahead to test a candidate window without
// first materializing the range, so seq (known to yield exactly n values)
// is pulled once into a plain slice and handed to FindEnd: the one-time
// O(N) pull pays for the random access that window matching needs, and
// avoids the separate bug class of a pattern straddling a chunk boundary
// that chunk-local buffering (as in ForwardFindIf) would invite here.
func ForwardFindEnd[T any](seq iter.Seq[T], n int, pattern []T, eq func(T, T) bool) int {
	buf, err := tryMake[T]("forward_find_end.buf", n)
	if err != nil {
		buf = make([]T, 0, n)
		for v := range seq {
			buf = append(buf, v)
		}
		return FindEnd(buf, pattern, eq)
	}
	i := 0
	for v := range seq {
		buf[i] = v
		i++
	}
	return FindEnd(buf, pattern, eq)
}

// Search returns the starting index of the first occurrence of pattern
// within s (under eq), or -1. A sliding-window predicate search over
// len(s)-len(pattern)+1 start positions, partitioned and tracked with a
// Min tracker, with early-out once a lower chunk has already won.
func Search[T any](s, pattern []T, eq func(T, T) bool) int {
	n, m := len(s), len(pattern)
	if m == 0 {
		return 0
	}
	if m > n {
		return -1
	}
	starts := n - m + 1

	matchAt := func(start int) bool {
		for k := 0; k < m; k++ {
			if !eq(s[start+k], pattern[k]) {
				return false
			}
		}
		return true
	}

	chunks := chunksMinFraction1(starts)
	if chunks <= 1 {
		for i := 0; i < starts; i++ {
			if matchAt(i) {
				return i
			}
		}
		return -1
	}

	tracker := newMinIndexTracker()
	p := NewPartition(starts, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if tracker.Beaten(i) {
				return
			}
			if matchAt(j) {
				tracker.Report(i, j)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return -1
	}
	return idx
}

// SearchN returns the starting index of the first run of count
// consecutive elements all equal (under eq) to target, or -1.
func SearchN[T any](s []T, count int, target T, eq func(T, T) bool) int {
	if count <= 0 {
		return 0
	}
	n := len(s)
	if count > n {
		return -1
	}
	starts := n - count + 1

	matchAt := func(start int) bool {
		for k := 0; k < count; k++ {
			if !eq(s[start+k], target) {
				return false
			}
		}
		return true
	}

	chunks := chunksMinFraction1(starts)
	if chunks <= 1 {
		for i := 0; i < starts; i++ {
			if matchAt(i) {
				return i
			}
		}
		return -1
	}

	tracker := newMinIndexTracker()
	p := NewPartition(starts, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if tracker.Beaten(i) {
				return
			}
			if matchAt(j) {
				tracker.Report(i, j)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return -1
	}
	return idx
}

// AdjacentFind returns the index i of the first pair (s[i], s[i+1]) for
// which eq holds, or -1. Partitions the N-1 adjacent pairs; Min tracker
// as with Find.
func AdjacentFind[T any](s []T, eq func(a, b T) bool) int {
	n := len(s)
	if n < 2 {
		return -1
	}
	pairs := n - 1

	chunks := chunksMinFraction1(pairs)
	if chunks <= 1 {
		for i := 0; i < pairs; i++ {
			if eq(s[i], s[i+1]) {
				return i
			}
		}
		return -1
	}

	tracker := newMinIndexTracker()
	p := NewPartition(pairs, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if tracker.Beaten(i) {
				return
			}
			if eq(s[j], s[j+1]) {
				tracker.Report(i, j)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return -1
	}
	return idx
}

// Equal reports whether a and b have the same length and eq(a[i], b[i])
// holds for every i. Uses a shared done-flag short circuit, same as AnyOf.
func Equal[T any](a, b []T, eq func(T, T) bool) bool {
	n := len(a)
	if len(b) != n {
		return false
	}
	if n == 0 {
		return true
	}

	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		for i := range a {
			if !eq(a[i], b[i]) {
				return false
			}
		}
		return true
	}

	var mismatchFound atomic.Bool
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if mismatchFound.Load() {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if mismatchFound.Load() {
				return
			}
			if !eq(a[j], b[j]) {
				mismatchFound.Store(true)
				return
			}
		}
	})
	return !mismatchFound.Load()
}

// Mismatch returns the index of the first position where a and b differ
// (under eq), or the length of the shorter range if no mismatch is found
// before it ends. Two Min trackers are updated together across a matched
// two-range partition; since both track the same position, one would
// suffice, but the pair keeps the shape symmetric with a possible future
// divergent-index variant.
func Mismatch[T any](a, b []T, eq func(T, T) bool) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		for i := 0; i < n; i++ {
			if !eq(a[i], b[i]) {
				return i
			}
		}
		return n
	}

	trackerA := newMinIndexTracker()
	trackerB := newMinIndexTracker()
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if trackerA.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if trackerA.Beaten(i) {
				return
			}
			if !eq(a[j], b[j]) {
				trackerA.Report(i, j)
				trackerB.Report(i, j)
				return
			}
		}
	})
	idx, ok := trackerA.Result()
	if !ok {
		return n
	}
	return idx
}

// IsSorted reports whether s is sorted under less (no element strictly
// precedes its predecessor). It delegates to IsSortedUntil, so it uses the
// same Min tracker over the N-1 adjacent pairs; there is no separate
// done-flag path.
func IsSorted[T any](s []T, less func(a, b T) bool) bool {
	return IsSortedUntil(s, less) == len(s)
}

// IsSortedUntil returns the index of the first element that breaks
// sortedness (i.e. the length of the longest sorted prefix), or len(s) if
// s is entirely sorted. Uses a Min tracker over the N-1 adjacent pairs.
func IsSortedUntil[T any](s []T, less func(a, b T) bool) int {
	n := len(s)
	if n < 2 {
		return n
	}
	pairs := n - 1

	chunks := chunksMinFraction1(pairs)
	if chunks <= 1 {
		for i := 0; i < pairs; i++ {
			if less(s[i+1], s[i]) {
				return i + 1
			}
		}
		return n
	}

	tracker := newMinIndexTracker()
	p := NewPartition(pairs, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		if tracker.Beaten(i) {
			return
		}
		first, last := p.At(i)
		for j := first; j < last; j++ {
			if tracker.Beaten(i) {
				return
			}
			if less(s[j+1], s[j]) {
				tracker.Report(i, j+1)
				return
			}
		}
	})
	idx, ok := tracker.Result()
	if !ok {
		return n
	}
	return idx
}

// partitionVerdict is one chunk's report to IsPartitioned.
type partitionVerdict int

const (
	verdictAllTrue partitionVerdict = iota
	verdictAllFalse
	verdictTrueThenFalse
	verdictBroken // contains a true after a false
)

func classifyChunk[T any](s []T, pred func(T) bool) partitionVerdict {
	sawFalse := false
	sawTrueAfterFalse := false
	allTrue := true
	allFalse := true
	for _, v := range s {
		if pred(v) {
			allFalse = false
			if sawFalse {
				sawTrueAfterFalse = true
			}
		} else {
			allTrue = false
			sawFalse = true
		}
	}
	if sawTrueAfterFalse {
		return verdictBroken
	}
	if allTrue {
		return verdictAllTrue
	}
	if allFalse {
		return verdictAllFalse
	}
	return verdictTrueThenFalse
}

// isPartitionedInfinity is the sentinel used for a broken verdict:
// rightTrue is forced to it, but leftFalse is left bounded below it, so
// the final rightTrue≤leftFalse test deliberately fails.
const isPartitionedInfinity = int64(1) << 32

// IsPartitioned reports whether s is partitioned by pred: every element
// for which pred holds appears before every element for which it doesn't.
// Each chunk reports one of four verdicts; two atomics are updated
// monotonically and the partition holds iff rightTrue ≤ leftFalse once
// every chunk has reported.
func IsPartitioned[T any](s []T, pred func(T) bool) bool {
	n := len(s)
	if n == 0 {
		return true
	}

	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		return classifyChunk(s, pred) != verdictBroken
	}

	var rightTrue atomic.Int64  // highest chunk index containing a true element
	var leftFalse atomic.Int64  // lowest chunk index containing a false element
	rightTrue.Store(-1)
	leftFalse.Store(isPartitionedInfinity - 1)

	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		switch classifyChunk(s[first:last], pred) {
		case verdictAllTrue:
			for {
				cur := rightTrue.Load()
				if cur >= int64(i) || rightTrue.CompareAndSwap(cur, int64(i)) {
					break
				}
			}
		case verdictAllFalse:
			for {
				cur := leftFalse.Load()
				if cur <= int64(i) || leftFalse.CompareAndSwap(cur, int64(i)) {
					break
				}
			}
		case verdictTrueThenFalse:
			for {
				cur := rightTrue.Load()
				if cur >= int64(i) || rightTrue.CompareAndSwap(cur, int64(i)) {
					break
				}
			}
			for {
				cur := leftFalse.Load()
				if cur <= int64(i) || leftFalse.CompareAndSwap(cur, int64(i)) {
					break
				}
			}
		case verdictBroken:
			rightTrue.Store(isPartitionedInfinity)
		}
	})

	return rightTrue.Load() <= leftFalse.Load()
}

// MinElement returns the index of the smallest element of s under less.
// On ties, the first occurrence wins (matches the serial standard). Each
// chunk runs the serial equivalent and writes its winning index into a
// per-chunk slot; the final fold applies the tie-break rule.
func MinElement[T any](s []T, less func(a, b T) bool) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	chunks := chunksMinFraction2(n)
	if chunks <= 1 {
		return minElementSerial(s, 0, n, less)
	}

	p := NewPartition(n, chunks)
	winners, err := tryMake[int]("min_element.winners", p.Chunks())
	if err != nil {
		return minElementSerial(s, 0, n, less)
	}
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		winners[i] = minElementSerial(s, first, last, less)
	})

	best := winners[0]
	for _, w := range winners[1:] {
		if less(s[w], s[best]) {
			best = w
		}
	}
	return best
}

func minElementSerial[T any](s []T, first, last int, less func(a, b T) bool) int {
	best := first
	for i := first + 1; i < last; i++ {
		if less(s[i], s[best]) {
			best = i
		}
	}
	return best
}

// MaxElement returns the index of the largest element of s under less. On
// ties, the first occurrence wins (dual of MinElement).
func MaxElement[T any](s []T, less func(a, b T) bool) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	chunks := chunksMinFraction2(n)
	if chunks <= 1 {
		return maxElementSerial(s, 0, n, less)
	}

	p := NewPartition(n, chunks)
	winners, err := tryMake[int]("max_element.winners", p.Chunks())
	if err != nil {
		return maxElementSerial(s, 0, n, less)
	}
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		winners[i] = maxElementSerial(s, first, last, less)
	})

	best := winners[0]
	for _, w := range winners[1:] {
		if less(s[best], s[w]) {
			best = w
		}
	}
	return best
}

func maxElementSerial[T any](s []T, first, last int, less func(a, b T) bool) int {
	best := first
	for i := first + 1; i < last; i++ {
		if less(s[best], s[i]) {
			best = i
		}
	}
	return best
}

// MinMaxElement returns the indices of the smallest and largest elements
// of s under less. On ties, the first occurrence wins for min and the
// last occurrence wins for max, matching the serial standard.
func MinMaxElement[T any](s []T, less func(a, b T) bool) (minIdx, maxIdx int) {
	n := len(s)
	if n == 0 {
		return -1, -1
	}
	chunks := chunksMinFraction2(n)
	if chunks <= 1 {
		return minMaxElementSerial(s, 0, n, less)
	}

	p := NewPartition(n, chunks)
	minWinners, err := tryMake[int]("minmax_element.min_winners", p.Chunks())
	if err != nil {
		return minMaxElementSerial(s, 0, n, less)
	}
	maxWinners, err := tryMake[int]("minmax_element.max_winners", p.Chunks())
	if err != nil {
		return minMaxElementSerial(s, 0, n, less)
	}
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		minWinners[i], maxWinners[i] = minMaxElementSerial(s, first, last, less)
	})

	minIdx, maxIdx = minWinners[0], maxWinners[0]
	for i := 1; i < len(minWinners); i++ {
		if less(s[minWinners[i]], s[minIdx]) {
			minIdx = minWinners[i]
		}
		if !less(s[maxWinners[i]], s[maxIdx]) {
			maxIdx = maxWinners[i]
		}
	}
	return minIdx, maxIdx
}

func minMaxElementSerial[T any](s []T, first, last int, less func(a, b T) bool) (minIdx, maxIdx int) {
	minIdx, maxIdx = first, first
	for i := first + 1; i < last; i++ {
		if less(s[i], s[minIdx]) {
			minIdx = i
		}
		if !less(s[i], s[maxIdx]) {
			maxIdx = i
		}
	}
	return
}

// LexicographicalCompare reports whether a compares less than b under
// less, using standard lexicographical ordering. A two-range partition
// covers the common prefix length; each chunk finds the first position
// where the two sequences differ under cmp, reported via a Min tracker;
// if none is found, relative lengths decide.
func LexicographicalCompare[T any](a, b []T, less func(x, y T) bool) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	firstDiff := n
	if n > 0 {
		chunks := chunksMinFraction1(n)
		if chunks <= 1 {
			for i := 0; i < n; i++ {
				if less(a[i], b[i]) || less(b[i], a[i]) {
					firstDiff = i
					break
				}
			}
		} else {
			tracker := newMinIndexTracker()
			p := NewPartition(n, chunks)
			ParallelFor(p.Chunks(), func(i int) {
				if tracker.Beaten(i) {
					return
				}
				first, last := p.At(i)
				for j := first; j < last; j++ {
					if tracker.Beaten(i) {
						return
					}
					if less(a[j], b[j]) || less(b[j], a[j]) {
						tracker.Report(i, j)
						return
					}
				}
			})
			if idx, ok := tracker.Result(); ok {
				firstDiff = idx
			}
		}
	}

	if firstDiff < n {
		return less(a[firstDiff], b[firstDiff])
	}
	return len(a) < len(b)
}
