// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// scanCore implements the shared three-phase scan algorithm used by the
// inclusive and exclusive entry points. dst may alias src. init is always
// supplied by the caller at this layer (InclusiveScan's no-init
// convenience form peels off the first element before calling in).
func scanCore[S, T any](src []S, dst []T, transform func(S) T, op func(T, T) T, init T, inclusive bool) {
	n := len(src)
	if n == 0 {
		return
	}

	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		scanSerial(src, dst, transform, op, init, inclusive)
		return
	}

	p := NewPartition(n, chunks)
	locals, err := tryMake[T]("scan.locals", p.Chunks())
	if err != nil {
		scanSerial(src, dst, transform, op, init, inclusive)
		return
	}

	// Phase 1 (parallel): each chunk's local reduction over transformed
	// inputs, independent of init and of every other chunk.
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		acc := transform(src[first])
		for j := first + 1; j < last; j++ {
			acc = op(acc, transform(src[j]))
		}
		locals[i] = acc
	})

	// Phase 2 (serial): turn per-chunk totals into running prefix sums,
	// folding init in at the front. prefix[k] is the combined value of
	// init and every chunk before k.
	prefix, err := tryMake[T]("scan.prefix", p.Chunks())
	if err != nil {
		scanSerial(src, dst, transform, op, init, inclusive)
		return
	}
	prefix[0] = init
	for k := 1; k < p.Chunks(); k++ {
		prefix[k] = op(prefix[k-1], locals[k-1])
	}

	// Phase 3 (parallel): each chunk writes its output positions,
	// strictly left to right within the chunk, seeded from prefix[k].
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		running := prefix[i]
		for j := first; j < last; j++ {
			if inclusive {
				running = op(running, transform(src[j]))
				dst[j] = running
			} else {
				dst[j] = running
				running = op(running, transform(src[j]))
			}
		}
	})
}

func scanSerial[S, T any](src []S, dst []T, transform func(S) T, op func(T, T) T, init T, inclusive bool) {
	running := init
	for i, v := range src {
		if inclusive {
			running = op(running, transform(v))
			dst[i] = running
		} else {
			dst[i] = running
			running = op(running, transform(v))
		}
	}
}

// TransformInclusiveScan writes transform(src[0]) op transform(src[1]) op
// ... into dst, seeded by init, for every prefix of src.
func TransformInclusiveScan[S, T any](src []S, dst []T, transform func(S) T, op func(T, T) T, init T) {
	scanCore(src, dst, transform, op, init, true)
}

// InclusiveScan is TransformInclusiveScan with an identity transform and
// no explicit init: when N≥1 and no init is given, the first output is
// src[0] itself, and the parallel machinery runs only on the remaining
// N-1 elements.
func InclusiveScan[T any](src, dst []T, op func(T, T) T) {
	n := len(src)
	if n == 0 {
		return
	}
	dst[0] = src[0]
	if n == 1 {
		return
	}
	scanCore(src[1:], dst[1:], func(v T) T { return v }, op, dst[0], true)
}

// TransformExclusiveScan writes, into dst[i], the fold of init with
// transform(src[0])..transform(src[i-1]) — i.e. the running value BEFORE
// src[i] is included.
func TransformExclusiveScan[S, T any](src []S, dst []T, transform func(S) T, op func(T, T) T, init T) {
	scanCore(src, dst, transform, op, init, false)
}

// ExclusiveScan is TransformExclusiveScan with an identity transform.
func ExclusiveScan[T any](src, dst []T, init T, op func(T, T) T) {
	scanCore(src, dst, func(v T) T { return v }, op, init, false)
}
