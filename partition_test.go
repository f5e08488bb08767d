// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import "testing"

func TestPartitionCoverage(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for k := 1; k <= n; k++ {
			p := NewPartition(n, k)
			seen := make([]bool, n)
			prevLast := 0
			for i := 0; i < p.Chunks(); i++ {
				first, last := p.At(i)
				if first != prevLast {
					t.Fatalf("n=%d k=%d chunk %d: expected first=%d, got %d", n, k, i, prevLast, first)
				}
				for j := first; j < last; j++ {
					if seen[j] {
						t.Fatalf("n=%d k=%d: position %d covered twice", n, k, j)
					}
					seen[j] = true
				}
				prevLast = last
			}
			if prevLast != n {
				t.Fatalf("n=%d k=%d: coverage ended at %d, want %d", n, k, prevLast, n)
			}
			for j, s := range seen {
				if !s {
					t.Fatalf("n=%d k=%d: position %d never covered", n, k, j)
				}
			}
		}
	}
}

func TestPartitionClampsChunks(t *testing.T) {
	p := NewPartition(5, 100)
	if p.Chunks() != 5 {
		t.Fatalf("Chunks() = %d, want 5", p.Chunks())
	}
	p = NewPartition(5, 0)
	if p.Chunks() != 1 {
		t.Fatalf("Chunks() = %d, want 1", p.Chunks())
	}
}

func TestPartitionAtReverse(t *testing.T) {
	p := NewPartition(10, 4)
	for i := 0; i < p.Chunks(); i++ {
		rf, rl := p.AtReverse(i)
		f, l := p.At(p.Chunks() - 1 - i)
		if rf != f || rl != l {
			t.Fatalf("AtReverse(%d) = (%d,%d), want (%d,%d)", i, rf, rl, f, l)
		}
	}
}

func TestForwardPartitionMatchesPartitionLengths(t *testing.T) {
	n, chunks := 23, 5
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	seq := func(yield func(int) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}

	fp, err := NewForwardPartition[int](seq, n, chunks)
	if err != nil {
		t.Fatalf("NewForwardPartition: %v", err)
	}
	p := NewPartition(n, chunks)
	if fp.Chunks() != p.Chunks() {
		t.Fatalf("Chunks() = %d, want %d", fp.Chunks(), p.Chunks())
	}

	var flat []int
	for i := 0; i < fp.Chunks(); i++ {
		first, last := p.At(i)
		want := last - first
		got := fp.At(i)
		if len(got) != want {
			t.Fatalf("chunk %d length = %d, want %d", i, len(got), want)
		}
		flat = append(flat, got...)
	}
	for i, v := range flat {
		if v != data[i] {
			t.Fatalf("flattened[%d] = %d, want %d", i, v, data[i])
		}
	}
}
