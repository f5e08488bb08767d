// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// Partition splits a random-access range of `count` elements into `chunks`
// contiguous sub-ranges. It stores only the two numbers and computes each
// chunk's bounds in O(1) by arithmetic, with no allocation.
//
// Length rule: fraction = count/chunks, leftover = count%chunks. The first
// leftover chunks have length fraction+1; the rest have length fraction.
type Partition struct {
	count    int
	chunks   int
	fraction int
	leftover int
}

// NewPartition builds a Partition over [0, count) split into chunks
// sub-ranges. If chunks is less than 1 it is treated as 1; if chunks
// exceeds count it is clamped to count (an empty chunk would violate the
// "sub-range i precedes sub-range i+1" invariant trivially but serves no
// purpose and every call site already clamps chunk counts before
// construction via chunksMinFraction1/2).
func NewPartition(count, chunks int) Partition {
	if chunks < 1 {
		chunks = 1
	}
	if chunks > count {
		chunks = count
		if chunks < 1 {
			chunks = 1
		}
	}
	return Partition{
		count:    count,
		chunks:   chunks,
		fraction: count / chunks,
		leftover: count % chunks,
	}
}

// Chunks returns the number of sub-ranges in the partition.
func (p Partition) Chunks() int { return p.chunks }

// Len returns the total number of elements covered, i.e. End().
func (p Partition) Len() int { return p.count }

// At returns the half-open bounds [first, last) of chunk i, relative to
// the start of the original range. Chunk 0 begins at 0; concatenating
// At(0)..At(Chunks()-1) covers [0, count) exactly once.
func (p Partition) At(i int) (first, last int) {
	if i < p.leftover {
		first = i * (p.fraction + 1)
		last = first + p.fraction + 1
		return
	}
	first = p.leftover*(p.fraction+1) + (i-p.leftover)*p.fraction
	last = first + p.fraction
	return
}

// End returns the index one past the last element covered by the
// partition, always equal to count.
func (p Partition) End() int { return p.count }

// AtReverse returns the half-open bounds of chunk i when the range is
// walked from the end backward: chunk 0 is the last fraction/fraction+1
// elements of the range, chunk Chunks()-1 is the first. AtReverse(i)
// covers the same elements as At(Chunks()-1-i).
func (p Partition) AtReverse(i int) (first, last int) {
	return p.At(p.chunks - 1 - i)
}
