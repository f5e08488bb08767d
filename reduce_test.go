// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import "testing"

func TestSumOneToTen(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := Sum(s); got != 55 {
		t.Fatalf("Sum = %d, want 55", got)
	}
	if got := TransformReduce(s, 0, func(a, b int) int { return a + b }, func(v int) int { return v }); got != 55 {
		t.Fatalf("TransformReduce = %d, want 55", got)
	}
}

func TestReduceLargeMatchesSerial(t *testing.T) {
	n := 100000
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	want := 0
	for _, v := range s {
		want += v
	}
	if got := Sum(s); got != want {
		t.Fatalf("Sum = %d, want %d", got, want)
	}
}

func TestTransformReduceNonCommutative(t *testing.T) {
	// String concatenation is associative but not commutative: a
	// left-fold reduction must match the parallel result exactly.
	n := 500
	words := make([]string, n)
	for i := range words {
		words[i] = string(rune('a' + i%26))
	}
	want := ""
	for _, w := range words {
		want += w
	}
	got := TransformReduce(words, "", func(a, b string) string { return a + b }, func(v string) string { return v })
	if got != want {
		t.Fatalf("TransformReduce concatenation mismatch: got len %d, want len %d", len(got), len(want))
	}
}

func TestTransformReduce2(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{10, 20, 30, 40}
	got := TransformReduce2(a, b, 0, func(x, y int) int { return x + y }, func(x, y int) int { return x * y })
	want := 1*10 + 2*20 + 3*30 + 4*40
	if got != want {
		t.Fatalf("TransformReduce2 = %d, want %d", got, want)
	}
}

func TestReduceEmpty(t *testing.T) {
	if got := Sum([]int{}); got != 0 {
		t.Fatalf("Sum(empty) = %d, want 0", got)
	}
}
