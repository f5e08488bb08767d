// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import "iter"

// ForwardPartition splits a forward-only range (an iter.Seq[T] that can
// only be walked once, start to end) into chunks sub-ranges. Unlike
// Partition, construction is O(N): it must be fully walked once to bucket
// its elements, and it allocates a chunks-sized table of per-chunk
// buffers.
type ForwardPartition[T any] struct {
	buf [][]T
}

// NewForwardPartition buffers seq (known to yield exactly n values) into
// chunks contiguous groups following the same fraction/leftover length
// rule as Partition. It returns ErrParallelismUnavailable, recoverable by
// the caller's serial fallback, if any of its allocations fail.
func NewForwardPartition[T any](seq iter.Seq[T], n, chunks int) (*ForwardPartition[T], error) {
	p := NewPartition(n, chunks)

	buf, err := tryMake[[]T]("forward_partition.table", p.chunks)
	if err != nil {
		return nil, err
	}
	for i := range buf {
		first, last := p.At(i)
		chunk, err := tryMake[T]("forward_partition.chunk", 0)
		if err != nil {
			return nil, err
		}
		if cap(chunk) < last-first {
			// tryMake with length 0 yields a non-nil empty slice; grow it
			// to the chunk's known length in one shot to avoid repeated
			// append-driven reallocation during the walk below.
			grown, err := tryMake[T]("forward_partition.chunk_grow", last-first)
			if err != nil {
				return nil, err
			}
			chunk = grown[:0]
		}
		buf[i] = chunk
	}

	chunkIdx := 0
	_, chunkEnd := p.At(0)
	seen := 0
	for v := range seq {
		for chunkIdx < p.chunks-1 && seen >= chunkEnd {
			chunkIdx++
			_, chunkEnd = p.At(chunkIdx)
		}
		buf[chunkIdx] = append(buf[chunkIdx], v)
		seen++
	}

	return &ForwardPartition[T]{buf: buf}, nil
}

// Chunks returns the number of sub-ranges.
func (fp *ForwardPartition[T]) Chunks() int { return len(fp.buf) }

// At returns the buffered elements of chunk i, in original order.
func (fp *ForwardPartition[T]) At(i int) []T { return fp.buf[i] }
