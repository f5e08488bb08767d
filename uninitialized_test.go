// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"sync/atomic"
	"testing"
)

func TestUninitializedDefaultConstruct(t *testing.T) {
	dst := make([]int, 1000)
	var counter atomic.Int64
	UninitializedDefaultConstruct(dst, func() int { return int(counter.Add(1)) })
	seen := make(map[int]bool)
	for _, v := range dst {
		if v < 1 || v > 1000 {
			t.Fatalf("value %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 1000 {
		t.Fatalf("got %d distinct values, want 1000", len(seen))
	}
}

func TestUninitializedValueConstruct(t *testing.T) {
	dst := make([]int, 50)
	for i := range dst {
		dst[i] = 99
	}
	UninitializedValueConstruct(dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("dst[%d] = %d, want 0", i, v)
		}
	}
}

func TestUninitializedCopyMove(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	dst := make([]int, 5)
	UninitializedCopy(src, dst)
	for i, v := range dst {
		if v != src[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, v, src[i])
		}
	}
}

func TestDestroyInvokesAndZeroes(t *testing.T) {
	type resource struct {
		closed bool
		val    int
	}
	s := make([]resource, 10)
	for i := range s {
		s[i] = resource{val: i + 1}
	}
	var destroyed atomic.Int64
	Destroy(s, func(r *resource) {
		r.closed = true
		destroyed.Add(1)
	})
	if destroyed.Load() != 10 {
		t.Fatalf("destroyed %d elements, want 10", destroyed.Load())
	}
	for i, r := range s {
		if r != (resource{}) {
			t.Fatalf("s[%d] = %+v, want zero value after Destroy", i, r)
		}
	}
}

func TestDestroyN(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	var calls atomic.Int64
	DestroyN(s, 3, func(v *int) { calls.Add(1) })
	if calls.Load() != 3 {
		t.Fatalf("DestroyN invoked destroy %d times, want 3", calls.Load())
	}
	want := []int{0, 0, 0, 4, 5}
	for i, v := range s {
		if v != want[i] {
			t.Fatalf("s[%d] = %d, want %d", i, v, want[i])
		}
	}
}
