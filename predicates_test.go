// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"iter"
	"testing"
)

// sliceSeq turns s into a forward-only, single-pass iter.Seq[T] for
// exercising the ForwardFindIf/ForwardFindEnd entry points.
func sliceSeq[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func TestAllNoneAnyOf(t *testing.T) {
	s := []int{2, 4, 6, 8, 10}
	if !AllOf(s, func(v int) bool { return v%2 == 0 }) {
		t.Fatal("AllOf even = false, want true")
	}
	if AnyOf(s, func(v int) bool { return v%2 != 0 }) {
		t.Fatal("AnyOf odd = true, want false")
	}
	if !NoneOf(s, func(v int) bool { return v > 100 }) {
		t.Fatal("NoneOf >100 = false, want true")
	}
}

func TestCountIf(t *testing.T) {
	n := 10000
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	got := CountIf(s, func(v int) bool { return v%3 == 0 })
	want := 0
	for _, v := range s {
		if v%3 == 0 {
			want++
		}
	}
	if got != want {
		t.Fatalf("CountIf = %d, want %d", got, want)
	}
}

func TestFindExample(t *testing.T) {
	n := 2000
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	s[777] = 777
	// Duplicate the target later in the slice; the first occurrence must
	// still be the one returned, regardless of how many workers run.
	s[1500] = 777
	for workers := 1; workers <= 8; workers++ {
		old := chunksPerCPU
		chunksPerCPU = workers
		idx := Find(s, 777)
		chunksPerCPU = old
		if idx != 777 {
			t.Fatalf("Find(777) with chunksPerCPU=%d = %d, want 777", workers, idx)
		}
	}
}

func TestForwardFindIf(t *testing.T) {
	n := 2000
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	s[777] = -1
	s[1500] = -1
	for chunks := 1; chunks <= 8; chunks++ {
		v, ok := ForwardFindIf(sliceSeq(s), n, chunks, func(v int) bool { return v < 0 })
		if !ok || v != -1 {
			t.Fatalf("ForwardFindIf with chunks=%d = (%d, %v), want (-1, true)", chunks, v, ok)
		}
	}

	v, ok := ForwardFindIf(sliceSeq([]int{1, 2, 3}), 3, 4, func(v int) bool { return v > 100 })
	if ok {
		t.Fatalf("ForwardFindIf not-found = (%d, true), want ok=false", v)
	}

	v, ok = ForwardFindIf(sliceSeq([]int{}), 0, 4, func(v int) bool { return true })
	if ok {
		t.Fatalf("ForwardFindIf on empty seq = (%d, true), want ok=false", v)
	}
}

func TestForwardFindEnd(t *testing.T) {
	s := []int{1, 2, 3, 9, 9, 5, 9, 9, 7}
	pattern := []int{9, 9}
	eq := func(a, b int) bool { return a == b }

	if got := ForwardFindEnd(sliceSeq(s), len(s), pattern, eq); got != 6 {
		t.Fatalf("ForwardFindEnd = %d, want 6", got)
	}

	// A pattern straddling where chunk boundaries would fall under
	// ForwardPartition's per-chunk buffering must still be found, since
	// ForwardFindEnd materializes the whole range before searching.
	big := make([]int, 5000)
	for i := range big {
		big[i] = i % 7
	}
	copy(big[2499:2503], []int{100, 101, 102, 103})
	got := ForwardFindEnd(sliceSeq(big), len(big), []int{100, 101, 102, 103}, eq)
	if got != 2499 {
		t.Fatalf("ForwardFindEnd across a chunk boundary = %d, want 2499", got)
	}
}

func TestFindIfNotFound(t *testing.T) {
	s := []int{1, 2, 3}
	if idx := FindIf(s, func(v int) bool { return v > 100 }); idx != -1 {
		t.Fatalf("FindIf = %d, want -1", idx)
	}
}

func TestFindEndAndSearch(t *testing.T) {
	s := []int{1, 2, 3, 9, 9, 5, 9, 9, 7}
	pattern := []int{9, 9}
	eq := func(a, b int) bool { return a == b }

	if got := Search(s, pattern, eq); got != 3 {
		t.Fatalf("Search = %d, want 3", got)
	}
	if got := FindEnd(s, pattern, eq); got != 6 {
		t.Fatalf("FindEnd = %d, want 6", got)
	}
}

func TestSearchN(t *testing.T) {
	s := []int{1, 1, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if got := SearchN(s, 3, 0, func(a, b int) bool { return a == b }); got != 2 {
		t.Fatalf("SearchN = %d, want 2", got)
	}
}

func TestAdjacentFind(t *testing.T) {
	s := []int{1, 2, 3, 3, 4}
	if got := AdjacentFind(s, func(a, b int) bool { return a == b }); got != 2 {
		t.Fatalf("AdjacentFind = %d, want 2", got)
	}
}

func TestEqualAndMismatch(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := []int{1, 2, 3, 4, 5}
	eq := func(x, y int) bool { return x == y }
	if !Equal(a, b, eq) {
		t.Fatal("Equal = false, want true")
	}
	c := []int{1, 2, 9, 4, 5}
	if Equal(a, c, eq) {
		t.Fatal("Equal = true, want false")
	}
	if got := Mismatch(a, c, eq); got != 2 {
		t.Fatalf("Mismatch = %d, want 2", got)
	}
}

func TestIsSorted(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	if !IsSorted([]int{1, 2, 3, 4}, less) {
		t.Fatal("IsSorted ascending = false, want true")
	}
	if IsSorted([]int{1, 3, 2, 4}, less) {
		t.Fatal("IsSorted with a break = true, want false")
	}
	if got := IsSortedUntil([]int{1, 3, 2, 4}, less); got != 2 {
		t.Fatalf("IsSortedUntil = %d, want 2", got)
	}
}

func TestIsPartitionedExamples(t *testing.T) {
	id := func(v bool) bool { return v }
	if !IsPartitioned([]bool{true, true, true, false, false, false}, id) {
		t.Fatal("IsPartitioned(TTTFFF) = false, want true")
	}
	if IsPartitioned([]bool{true, false, true, false, false}, id) {
		t.Fatal("IsPartitioned(TFTFF) = true, want false")
	}
}

func TestMinMaxElement(t *testing.T) {
	s := []int{5, 3, 8, 3, 1, 8, 2}
	less := func(a, b int) bool { return a < b }
	if got := MinElement(s, less); got != 4 {
		t.Fatalf("MinElement = %d, want 4", got)
	}
	if got := MaxElement(s, less); got != 2 {
		t.Fatalf("MaxElement = %d, want 2", got)
	}
	minI, maxI := MinMaxElement(s, less)
	if minI != 4 || maxI != 5 {
		t.Fatalf("MinMaxElement = (%d, %d), want (4, 5)", minI, maxI)
	}
}

func TestLexicographicalCompare(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	if !LexicographicalCompare([]int{1, 2, 3}, []int{1, 2, 4}, less) {
		t.Fatal("LexicographicalCompare([1,2,3],[1,2,4]) = false, want true")
	}
	if LexicographicalCompare([]int{1, 2, 4}, []int{1, 2, 3}, less) {
		t.Fatal("LexicographicalCompare([1,2,4],[1,2,3]) = true, want false")
	}
	if !LexicographicalCompare([]int{1, 2}, []int{1, 2, 3}, less) {
		t.Fatal("LexicographicalCompare([1,2],[1,2,3]) = false, want true (shorter prefix)")
	}
}
